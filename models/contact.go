package models

import "time"

// Contact message statuses. A message starts as "new", flips to "read" on the
// first detail fetch, and moves through "replied"/"archived" via the explicit
// status update operation.
const (
	ContactNew      = "new"
	ContactRead     = "read"
	ContactReplied  = "replied"
	ContactArchived = "archived"
)

type ContactMessage struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Name        string              `gorm:"size:100;not null" json:"name"`
	Email       string              `gorm:"size:191;not null;index" json:"email"`
	Phone       *string             `gorm:"size:20" json:"phone,omitempty"`
	Subject     string              `gorm:"size:200;not null" json:"subject"`
	Message     string              `gorm:"type:text;not null" json:"message"`
	Status      string              `gorm:"type:enum('new','read','replied','archived');default:'new';index" json:"status"`
	IPAddress   string              `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent   string              `gorm:"size:255" json:"user_agent,omitempty"`
	Attachments []ContactAttachment `gorm:"foreignKey:ContactMessageID" json:"attachments,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

type ContactAttachment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ContactMessageID uint      `gorm:"not null;index" json:"contact_message_id"`
	URL              string    `gorm:"size:512;not null" json:"url"`
	PublicID         string    `gorm:"size:255;not null" json:"public_id"`
	Name             string    `gorm:"size:255" json:"name"`
	ContentType      string    `gorm:"size:100" json:"type"`
	Size             int64     `json:"size"`
	CreatedAt        time.Time `json:"created_at"`
}

func (ContactAttachment) TableName() string {
	return "contact_attachments"
}

// ValidContactStatus reports whether s is a known status.
func ValidContactStatus(s string) bool {
	switch s {
	case ContactNew, ContactRead, ContactReplied, ContactArchived:
		return true
	}
	return false
}

// MarkRead transitions a new message to read. It returns true only on the
// first call; fetching an already-read message has no side effect.
func (c *ContactMessage) MarkRead() bool {
	if c.Status != ContactNew {
		return false
	}
	c.Status = ContactRead
	return true
}
