package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateMessageShortInputUnchanged(t *testing.T) {
	assert.Equal(t, "hello", truncateMessage("hello", 100))
	assert.Equal(t, "", truncateMessage("", 100))
}

func TestTruncateMessageLongInput(t *testing.T) {
	long := strings.Repeat("a", 150)
	out := truncateMessage(long, 100)

	assert.Equal(t, strings.Repeat("a", 100)+"...", out)
}

func TestTruncateMessageKeepsRunesIntact(t *testing.T) {
	// 150 multi-byte characters; a byte-based cut would split one in half
	long := strings.Repeat("é", 150)
	out := truncateMessage(long, 100)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, strings.Repeat("é", 100)+"...", out)
}

func TestTruncateMessageExactLimit(t *testing.T) {
	exact := strings.Repeat("x", 100)
	assert.Equal(t, exact, truncateMessage(exact, 100))
}
