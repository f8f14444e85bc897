package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchKeySymmetric(t *testing.T) {
	assert.Equal(t, MatchKey("alice", "bob"), MatchKey("bob", "alice"))
	assert.Equal(t, "alice_bob", MatchKey("bob", "alice"))
}

func TestSortPair(t *testing.T) {
	lo, hi := SortPair("b", "a")
	assert.Equal(t, "a", lo)
	assert.Equal(t, "b", hi)

	lo, hi = SortPair("a", "b")
	assert.Equal(t, "a", lo)
	assert.Equal(t, "b", hi)
}

func TestSwipeKeyDirectional(t *testing.T) {
	// Unlike match keys, swipe keys are directional: a->b and b->a are
	// separate documents.
	assert.Equal(t, "a_b", SwipeKey("a", "b"))
	assert.NotEqual(t, SwipeKey("a", "b"), SwipeKey("b", "a"))
}

func TestMutualRight(t *testing.T) {
	right := &Swipe{Direction: SwipeRight}
	left := &Swipe{Direction: SwipeLeft}

	assert.True(t, MutualRight(right, right))
	assert.False(t, MutualRight(right, left))
	assert.False(t, MutualRight(left, right))
	assert.False(t, MutualRight(right, nil))
	assert.False(t, MutualRight(nil, right))
	assert.False(t, MutualRight(nil, nil))
}
