package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a logical event delivered to a user. Delivery is
// fire-and-forget; rows are kept so the client can list unread events.
type Notification struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	Type      string    `gorm:"default:'INFO'" json:"type"` // INFO, SUCCESS, WARNING, COURSE_UPDATE
	Event     string    `gorm:"index" json:"event"`         // lesson_completed, course_completed, attempt_graded
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	ActionURL string    `json:"action_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
