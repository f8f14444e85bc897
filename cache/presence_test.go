package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPresenceWithoutRedisURL(t *testing.T) {
	assert.Nil(t, NewPresence(""))
}

func TestNilPresenceIsSafe(t *testing.T) {
	var p *Presence
	ctx := context.Background()

	// Must not panic and must report nobody online
	p.MarkOnline(ctx, "user1")
	p.MarkOffline(ctx, "user1")
	assert.Equal(t, 0, p.OnlineCount(ctx, []string{"user1", "user2"}))
	assert.Equal(t, 0, p.OnlineCount(ctx, nil))
}
