package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course status values
const (
	CourseDraft     = "DRAFT"
	CoursePublished = "PUBLISHED"
	CourseArchived  = "ARCHIVED"
)

// Course levels
const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
	LevelAllLevels    = "ALL_LEVELS"
)

// Course represents a learning course
type Course struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Level        string    `gorm:"default:'BEGINNER'" json:"level"`
	Category     string    `json:"category"`
	Duration     int       `gorm:"default:0" json:"duration"` // duration in minutes
	Status       string    `gorm:"default:'DRAFT'" json:"status"`
	IsPublished  bool      `gorm:"default:false" json:"is_published"`
	ThumbnailURL string    `json:"thumbnail_url"`
	InstructorID string    `gorm:"index" json:"instructor_id"`
	IsDeleted    bool      `gorm:"default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
