package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMessageType(t *testing.T) {
	assert.True(t, ValidMessageType(MessageText))
	assert.True(t, ValidMessageType(MessageImage))
	assert.True(t, ValidMessageType(MessageFile))
	assert.False(t, ValidMessageType("video"))
	assert.False(t, ValidMessageType(""))
}

func TestSortMessagesAscending(t *testing.T) {
	msgs := []Message{
		{Content: "third", CreatedAt: 30},
		{Content: "first", CreatedAt: 10},
		{Content: "second", CreatedAt: 20},
	}

	SortMessages(msgs)

	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)
	assert.Equal(t, "third", msgs[2].Content)
}

func TestSortMessagesStableOnTies(t *testing.T) {
	msgs := []Message{
		{Content: "a", CreatedAt: 10},
		{Content: "b", CreatedAt: 10},
		{Content: "c", CreatedAt: 10},
	}

	SortMessages(msgs)

	assert.Equal(t, "a", msgs[0].Content)
	assert.Equal(t, "b", msgs[1].Content)
	assert.Equal(t, "c", msgs[2].Content)
}
