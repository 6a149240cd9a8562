package dto

import "time"

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Content     string `json:"content"`
	TempID      string `json:"temp_id"`
}

type SendMessageResponse struct {
	Status    string    `json:"status"`
	MessageID uint64    `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
	TempID    string    `json:"temp_id,omitempty"`
}

type MessageResponse struct {
	ID        uint64    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
	IsMe      bool      `json:"is_me"`
}

// ThreadResponse is shared by the full-thread fetch and the incremental
// updates endpoint.
type ThreadResponse struct {
	Messages  []MessageResponse `json:"messages"`
	OtherUser UserSummary       `json:"other_user"`
}

// ConversationResponse is one row of the conversation list.
type ConversationResponse struct {
	User        UserSummary      `json:"user"`
	LastMessage *MessageResponse `json:"last_message,omitempty"`
	UnreadCount int64            `json:"unread_count"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type TypingRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	IsTyping    bool   `json:"is_typing"`
}
