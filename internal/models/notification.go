package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationTypeContactRequest  = "contact_request"
	NotificationTypeContactAccepted = "contact_accepted"
)

// Notification is an append-only side effect of contact state transitions.
// Data carries type-specific context, e.g. {"requester_id": "..."}.
type Notification struct {
	BaseModel
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string         `gorm:"not null" json:"type"`
	Message   string         `gorm:"not null" json:"message"`
	ContactID *string        `gorm:"type:uuid" json:"contact_id,omitempty"`
	Data      datatypes.JSON `json:"data,omitempty"`
	IsRead    bool           `gorm:"not null;default:false" json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
}
