package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(m *Manager, userID string, buffer int) *Client {
	return &Client{
		userID:  userID,
		send:    make(chan []byte, buffer),
		manager: m,
	}
}

// A client that never drains its send channel must be evicted by the hub
// without disturbing healthy clients, even while direct sends iterate the
// client map concurrently.
func TestHubConcurrentBroadcastAndDirectSend(t *testing.T) {
	m := NewManager(nil)
	go m.Start()

	stalled := newTestClient(m, "stalled", 0)
	healthy := newTestClient(m, "healthy", 4096)
	m.register <- stalled
	m.register <- healthy

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			m.BroadcastNewMessage(map[string]interface{}{"seq": i})
		}
	}()

	for i := 0; i < 1000; i++ {
		m.SendToUser("healthy", "ping", map[string]interface{}{"seq": i})
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast loop did not finish")
	}

	// The stalled client was dropped on the first broadcast it missed
	assert.Equal(t, 1, m.GetConnectedUsers())
	assert.NotEmpty(t, healthy.send)

	// The stalled client's channel is closed after eviction
	select {
	case _, open := <-stalled.send:
		assert.False(t, open)
	default:
		t.Fatal("stalled client send channel was not closed")
	}
}

func TestHubUnregisterRemovesClient(t *testing.T) {
	m := NewManager(nil)
	go m.Start()

	client := newTestClient(m, "user1", 8)
	m.register <- client

	m.BroadcastNewMessage(map[string]interface{}{"seq": 1})
	require.Equal(t, 1, m.GetConnectedUsers())

	m.unregister <- client
	m.BroadcastNewMessage(map[string]interface{}{"seq": 2})
	assert.Equal(t, 0, m.GetConnectedUsers())
}

func TestSendToUserTargetsOnlyThatUser(t *testing.T) {
	m := NewManager(nil)
	go m.Start()

	alice := newTestClient(m, "alice", 8)
	bob := newTestClient(m, "bob", 8)
	m.register <- alice
	m.register <- bob

	// Drain the register channel before sending
	m.BroadcastNewMessage(map[string]interface{}{"warmup": true})

	m.SendToUser("alice", "match_created", map[string]interface{}{"matchId": "a_b"})

	assert.Len(t, alice.send, 2)
	assert.Len(t, bob.send, 1)
}
