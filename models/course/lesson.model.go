package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lesson types
const (
	LessonText       = "TEXT"
	LessonVideo      = "VIDEO"
	LessonQuiz       = "QUIZ"
	LessonAssignment = "ASSIGNMENT"
	LessonDownload   = "DOWNLOAD"
)

// Lesson represents a single piece of content within a module
type Lesson struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	ModuleID   string    `gorm:"index;not null" json:"module_id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	Type       string    `gorm:"default:'TEXT'" json:"type"`
	VideoURL   string    `json:"video_url"`
	Duration   int       `gorm:"default:0" json:"duration"` // in minutes
	OrderIndex int       `gorm:"default:0" json:"order_index"`
	IsFree     bool      `gorm:"default:false" json:"is_free"`
	IsDeleted  bool      `gorm:"default:false" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
