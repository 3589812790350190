package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module represents a section/module within a course. Order indexes are
// assigned server-side and kept contiguous per course.
type Module struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	CourseID    string    `gorm:"index;not null" json:"course_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	OrderIndex  int       `gorm:"default:0" json:"order_index"`
	Duration    int       `gorm:"default:0" json:"duration"` // in minutes
	IsDeleted   bool      `gorm:"default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
