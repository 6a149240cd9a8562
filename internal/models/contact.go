package models

import "gorm.io/gorm"

type ContactStatus string

const (
	ContactStatusPending  ContactStatus = "pending"
	ContactStatusAccepted ContactStatus = "accepted"
	ContactStatusRejected ContactStatus = "rejected"
)

// Contact is the pairwise relationship record. Exactly one record may exist
// per unordered user pair; UserLo/UserHi hold the pair in lexicographic order
// and carry the unique index that enforces it even under concurrent
// opposite-direction requests.
type Contact struct {
	BaseModel
	RequesterID string        `gorm:"type:uuid;not null;index" json:"requester_id"`
	RecipientID string        `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Status      ContactStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	UserLo string `gorm:"type:uuid;not null;uniqueIndex:idx_contacts_pair" json:"-"`
	UserHi string `gorm:"type:uuid;not null;uniqueIndex:idx_contacts_pair" json:"-"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// BeforeSave keeps the normalized pair columns in sync with the directed refs.
func (c *Contact) BeforeSave(tx *gorm.DB) error {
	if c.RequesterID < c.RecipientID {
		c.UserLo, c.UserHi = c.RequesterID, c.RecipientID
	} else {
		c.UserLo, c.UserHi = c.RecipientID, c.RequesterID
	}
	return nil
}

// Counterpart returns the other side of the relationship relative to userID.
func (c *Contact) Counterpart(userID string) string {
	if c.RequesterID == userID {
		return c.RecipientID
	}
	return c.RequesterID
}
