package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseProgress aggregates lesson completions for one (user, course)
// pair. Progress is the derived percentage, rounded half-up to two
// decimals; 0 <= CompletedLessons <= TotalLessons always holds.
type CourseProgress struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"uniqueIndex:idx_progress_user_course;not null" json:"user_id"`
	CourseID         string    `gorm:"uniqueIndex:idx_progress_user_course;not null" json:"course_id"`
	CompletedLessons int       `gorm:"default:0" json:"completed_lessons"`
	TotalLessons     int       `gorm:"default:0" json:"total_lessons"`
	Progress         float64   `gorm:"default:0" json:"progress"` // percentage (0-100)
	LastAccessed     time.Time `json:"last_accessed"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (CourseProgress) TableName() string { return "course_progress" }

func (p *CourseProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.LastAccessed.IsZero() {
		p.LastAccessed = time.Now()
	}
	return nil
}

// LessonProgress tracks one lesson within a CourseProgress aggregate.
// CompletedAt is set exactly once, on the false -> true transition.
type LessonProgress struct {
	ID               string     `gorm:"primaryKey" json:"id"`
	CourseProgressID string     `gorm:"uniqueIndex:idx_progress_lesson;not null" json:"course_progress_id"`
	LessonID         string     `gorm:"uniqueIndex:idx_progress_lesson;not null" json:"lesson_id"`
	IsCompleted      bool       `gorm:"default:false" json:"is_completed"`
	TimeSpent        int        `gorm:"default:0" json:"time_spent"` // in seconds
	LastAccessed     time.Time  `json:"last_accessed"`
	CompletedAt      *time.Time `json:"completed_at"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }

func (p *LessonProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.LastAccessed.IsZero() {
		p.LastAccessed = time.Now()
	}
	return nil
}
