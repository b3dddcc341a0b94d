package models

import "time"

// Notification is an advisory message targeted at a single recipient. Role
// tags the inbox the record belongs to; admin notifications share one inbox
// keyed by role alone.
type Notification struct {
	BaseModel

	RecipientID string `gorm:"type:uuid;index" json:"recipient_id"`
	Role        Role   `gorm:"type:varchar(16);not null;index" json:"role"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Message     string `gorm:"type:text" json:"message"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`
}
