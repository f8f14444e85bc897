package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerIsMember(t *testing.T) {
	srv := Server{Members: []string{"a", "b"}}

	assert.True(t, srv.IsMember("a"))
	assert.False(t, srv.IsMember("c"))
}

func TestServerIsFull(t *testing.T) {
	srv := Server{Members: []string{"a", "b"}, MaxMembers: 2}
	assert.True(t, srv.IsFull())

	srv.MaxMembers = 3
	assert.False(t, srv.IsFull())

	// Zero means unlimited
	srv.MaxMembers = 0
	assert.False(t, srv.IsFull())
}

func TestChatHasParticipant(t *testing.T) {
	chat := Chat{Participants: []string{"a", "b"}}

	assert.True(t, chat.HasParticipant("b"))
	assert.False(t, chat.HasParticipant("c"))
}
