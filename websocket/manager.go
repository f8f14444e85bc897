package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"homiefinder/middleware"

	"github.com/gorilla/websocket"
)

// Manager is the hub behind the live chat feed. Clients subscribe to a
// chat and receive the full ordered thread immediately, then typed events
// as they happen. A client is torn down when its connection closes; the
// caller owns that lifecycle.
type Manager struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	// snapshot loads the full ordered message list for a chat. Injected
	// from main so the hub stays free of storage imports.
	snapshot func(chatID string) (interface{}, error)
}

type Client struct {
	conn    *websocket.Conn
	userID  string
	send    chan []byte
	manager *Manager
}

func NewManager(snapshot func(chatID string) (interface{}, error)) *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		snapshot:   snapshot,
	}
}

func (m *Manager) Start() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			total := len(m.clients)
			m.mu.Unlock()
			log.Printf("✅ WebSocket client registered. Total clients: %d", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
			}
			total := len(m.clients)
			m.mu.Unlock()
			log.Printf("❌ WebSocket client unregistered. Total clients: %d", total)

		case message := <-m.broadcast:
			// Full lock: stalled clients are evicted and their send
			// channels closed here, which must not interleave with
			// SendToUser's iteration.
			m.mu.Lock()
			for client := range m.clients {
				select {
				case client.send <- message:
				default:
					delete(m.clients, client)
					close(client.send)
				}
			}
			m.mu.Unlock()
		}
	}
}

func envelope(eventType string, payload interface{}) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	})
}

func (m *Manager) broadcastEvent(eventType string, payload interface{}) {
	msg, err := envelope(eventType, payload)
	if err != nil {
		log.Printf("❌ Error marshaling WebSocket message: %v", err)
		return
	}
	m.broadcast <- msg
}

func (m *Manager) BroadcastNewMessage(message map[string]interface{}) {
	log.Printf("📢 Broadcasting new message to %d clients", m.GetConnectedUsers())
	m.broadcastEvent("new_message", message)
}

func (m *Manager) BroadcastChatCreated(chatData map[string]interface{}) {
	log.Printf("📢 Broadcasting chat created to %d clients", m.GetConnectedUsers())
	m.broadcastEvent("chat_created", chatData)
}

func (m *Manager) BroadcastMatchCreated(matchData map[string]interface{}) {
	log.Printf("📢 Broadcasting match created to %d clients", m.GetConnectedUsers())
	m.broadcastEvent("match_created", matchData)
}

func (m *Manager) BroadcastMessageRead(payload map[string]interface{}) {
	m.broadcastEvent("message_read", payload)
}

// SendToUser delivers an event to every connection of one user.
func (m *Manager) SendToUser(userID, eventType string, payload interface{}) {
	msg, err := envelope(eventType, payload)
	if err != nil {
		log.Printf("❌ Error marshaling WebSocket message: %v", err)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for client := range m.clients {
		if client.userID != userID {
			continue
		}
		select {
		case client.send <- msg:
		default:
		}
	}
}

func (m *Manager) GetConnectedUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func WebSocketHandler(manager *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			log.Printf("❌ WebSocket connection rejected: no token provided")
			http.Error(w, "Token required", http.StatusUnauthorized)
			return
		}

		userID, err := middleware.ParseToken(token)
		if err != nil {
			log.Printf("❌ WebSocket connection rejected: invalid token: %v", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			conn:    conn,
			userID:  userID,
			send:    make(chan []byte, 256),
			manager: manager,
		}

		manager.register <- client

		// Send connection success message
		msg, _ := envelope("connected", map[string]interface{}{
			"userId": userID,
			"time":   time.Now().Unix(),
		})
		client.send <- msg

		// Start goroutines for this client
		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ WebSocket read error: %v", err)
			}
			break
		}

		var data map[string]interface{}
		if err := json.Unmarshal(message, &data); err != nil {
			log.Printf("❌ WebSocket message unmarshal error: %v", err)
			continue
		}

		// Handle different message types
		switch data["type"] {
		case "subscribe_chat":
			c.handleSubscribeChat(data)
		case "typing_start":
			c.relayTyping("typing_start", data)
		case "typing_end":
			c.relayTyping("typing_end", data)
		case "message_read":
			c.handleMessageRead(data)
		case "ping":
			c.sendPong()
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleSubscribeChat answers with the full ordered thread, mirroring a
// document-store live query: the subscriber always starts from the
// complete current result set.
func (c *Client) handleSubscribeChat(data map[string]interface{}) {
	payload, ok := data["payload"].(map[string]interface{})
	if !ok {
		return
	}

	chatID, ok := payload["chatId"].(string)
	if !ok {
		return
	}

	response := map[string]interface{}{
		"chatId": chatID,
		"userId": c.userID,
	}

	if c.manager.snapshot != nil {
		messages, err := c.manager.snapshot(chatID)
		if err != nil {
			log.Printf("❌ Chat snapshot failed for %s: %v", chatID, err)
		} else {
			response["messages"] = messages
		}
	}

	msg, err := envelope("chat_subscribed", response)
	if err != nil {
		log.Printf("❌ Error marshaling chat subscription response: %v", err)
		return
	}

	c.send <- msg
}

func (c *Client) relayTyping(eventType string, data map[string]interface{}) {
	payload, ok := data["payload"].(map[string]interface{})
	if !ok {
		return
	}

	c.manager.broadcastEvent(eventType, map[string]interface{}{
		"chatId":    payload["chatId"],
		"userId":    c.userID,
		"timestamp": time.Now().Unix(),
	})
}

func (c *Client) handleMessageRead(data map[string]interface{}) {
	payload, ok := data["payload"].(map[string]interface{})
	if !ok {
		return
	}

	c.manager.broadcastEvent("message_read", map[string]interface{}{
		"chatId":     payload["chatId"],
		"userId":     c.userID,
		"messageIds": payload["messageIds"],
		"timestamp":  time.Now().Unix(),
	})
}

func (c *Client) sendPong() {
	msg, err := envelope("pong", map[string]interface{}{
		"time": time.Now().Unix(),
	})
	if err != nil {
		return
	}
	c.send <- msg
}
