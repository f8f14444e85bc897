package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"homiefinder/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetMessages returns the full thread, ordered ascending by timestamp,
// with sender display data attached.
func GetMessages(c *gin.Context) {
	chatID := c.Param("chatId")
	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// First, verify user is in the chat
	chat, err := st.Chats.Get(ctx, chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify chat access"})
		return
	}
	if chat == nil || !chat.HasParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to chat"})
		return
	}

	msgs, err := st.Messages.List(ctx, chatID)
	if err != nil {
		log.Printf("GetMessages list error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	// One profile lookup per participant, not per message
	senders := make(map[string]map[string]interface{}, len(chat.Participants))
	for _, p := range chat.Participants {
		sender := map[string]interface{}{
			"id":     p,
			"name":   "Unknown",
			"avatar": fallbackAvatar,
		}
		if user, err := st.Profiles.Get(ctx, p); err == nil && user != nil {
			if user.Name != "" {
				sender["name"] = user.Name
			}
			if user.Avatar != "" {
				sender["avatar"] = user.Avatar
			}
		}
		senders[p] = sender
	}

	response := make([]map[string]interface{}, len(msgs))
	for i, m := range msgs {
		sender, ok := senders[m.SenderID]
		if !ok {
			sender = map[string]interface{}{
				"id":     m.SenderID,
				"name":   "Unknown",
				"avatar": fallbackAvatar,
			}
		}
		response[i] = map[string]interface{}{
			"id":        m.ID.Hex(),
			"chatId":    m.ChatID,
			"senderId":  m.SenderID,
			"sender":    sender,
			"content":   m.Content,
			"type":      m.Type,
			"isRead":    m.IsRead,
			"createdAt": m.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, response)
}

func SendMessage(c *gin.Context) {
	var req struct {
		ChatID  string `json:"chatId" binding:"required"`
		Content string `json:"content" binding:"required"`
		Type    string `json:"type,omitempty"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userId")

	if req.Type == "" {
		req.Type = models.MessageText
	}
	if !models.ValidMessageType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message type"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Verify user is in the chat
	chat, err := st.Chats.Get(ctx, req.ChatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify chat access"})
		return
	}
	if chat == nil || !chat.HasParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to chat"})
		return
	}

	message, err := st.Messages.Append(ctx, req.ChatID, userID, req.Content, req.Type)
	if err != nil {
		log.Printf("SendMessage insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// Update chat's last message
	if err := st.Chats.SetLastMessage(ctx, req.ChatID, req.Content, message.CreatedAt); err != nil {
		log.Printf("Update chat lastMessage error: %v", err)
		// Not critical – message was already saved
	}

	if wsManager != nil {
		wsManager.BroadcastNewMessage(map[string]interface{}{
			"id":        message.ID.Hex(),
			"chatId":    message.ChatID,
			"senderId":  message.SenderID,
			"content":   message.Content,
			"type":      message.Type,
			"createdAt": message.CreatedAt,
		})
	}

	// Push to the other participant(s); never blocks the response.
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic in push notification: %v", r)
			}
		}()

		pushCtx, pushCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pushCancel()

		sender, err := st.Profiles.Get(pushCtx, userID)
		senderName := ""
		if err == nil && sender != nil {
			senderName = sender.Name
		}

		for _, participant := range chat.Participants {
			if participant == userID {
				continue // Skip sender
			}
			SendMessagePush(participant, req.Content, senderName)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent",
		"id":      message.ID.Hex(),
	})
}

// MarkAsRead flags all of the partner's unread messages in the message's
// chat as read.
func MarkAsRead(c *gin.Context) {
	messageID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg, err := st.Messages.Get(ctx, messageID)
	if err != nil || msg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	chat, err := st.Chats.Get(ctx, msg.ChatID)
	if err != nil || chat == nil || !chat.HasParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to chat"})
		return
	}

	updated, err := st.Messages.MarkRead(ctx, msg.ChatID, userID)
	if err != nil {
		log.Printf("MarkAsRead error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark as read"})
		return
	}

	if wsManager != nil {
		wsManager.BroadcastMessageRead(map[string]interface{}{
			"chatId": msg.ChatID,
			"userId": userID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Marked as read",
		"updatedCount": updated,
	})
}
