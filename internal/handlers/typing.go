package handlers

import (
	"sync"
	"time"
)

// typingTracker holds short-lived typing indicators in memory. Entries
// expire after the TTL so a client that stops polling does not stay
// "typing" forever. Indicators are best-effort and never persisted.
type typingTracker struct {
	mu      sync.Mutex
	entries map[string]time.Time
	ttl     time.Duration
}

func newTypingTracker(ttl time.Duration) *typingTracker {
	return &typingTracker{
		entries: make(map[string]time.Time),
		ttl:     ttl,
	}
}

func typingKey(senderID, recipientID string) string {
	return senderID + ":" + recipientID
}

func (t *typingTracker) Set(senderID, recipientID string, typing bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := typingKey(senderID, recipientID)
	if typing {
		t.entries[key] = time.Now().Add(t.ttl)
	} else {
		delete(t.entries, key)
	}
}

func (t *typingTracker) IsTyping(senderID, recipientID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := typingKey(senderID, recipientID)
	deadline, ok := t.entries[key]
	if !ok {
		return false
	}
	if time.Now().After(deadline) {
		delete(t.entries, key)
		return false
	}
	return true
}
