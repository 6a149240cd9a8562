package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypingTracker(t *testing.T) {
	tracker := newTypingTracker(time.Minute)

	assert.False(t, tracker.IsTyping("alice", "bob"))

	tracker.Set("alice", "bob", true)
	assert.True(t, tracker.IsTyping("alice", "bob"))
	assert.False(t, tracker.IsTyping("bob", "alice"), "indicators are directional")

	tracker.Set("alice", "bob", false)
	assert.False(t, tracker.IsTyping("alice", "bob"))
}

func TestTypingTrackerExpiry(t *testing.T) {
	tracker := newTypingTracker(10 * time.Millisecond)

	tracker.Set("alice", "bob", true)
	assert.True(t, tracker.IsTyping("alice", "bob"))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, tracker.IsTyping("alice", "bob"))
}
