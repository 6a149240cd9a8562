package models

import "time"

// Message is a directed text message. The integer primary key is monotonic,
// which is what the incremental-updates cursor relies on.
type Message struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID    string    `gorm:"type:uuid;not null;index:idx_messages_sender_recipient" json:"sender_id"`
	RecipientID string    `gorm:"type:uuid;not null;index:idx_messages_sender_recipient" json:"recipient_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Timestamp   time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
}
