package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assessment attempt status values.
// IN_PROGRESS -> SUBMITTED -> GRADED; IN_PROGRESS -> CANCELLED.
// GRADED and CANCELLED are terminal.
const (
	AttemptInProgress = "IN_PROGRESS"
	AttemptSubmitted  = "SUBMITTED"
	AttemptGraded     = "GRADED"
	AttemptCancelled  = "CANCELLED"
)

// AssessmentAttempt is one user's attempt at an assessment. MaxScore is
// the sum of question points frozen at attempt creation; Score is the
// percentage, set when the attempt is graded.
type AssessmentAttempt struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	AssessmentID  string     `gorm:"index;not null" json:"assessment_id"`
	UserID        string     `gorm:"index;not null" json:"user_id"`
	Status        string     `gorm:"default:'IN_PROGRESS'" json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	SubmittedAt   *time.Time `json:"submitted_at"`
	Score         *float64   `json:"score"` // percentage (0-100)
	MaxScore      int        `gorm:"not null" json:"max_score"`
	TimeSpent     int        `gorm:"default:0" json:"time_spent"` // in seconds
	AttemptNumber int        `gorm:"default:1" json:"attempt_number"`
}

func (a *AssessmentAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.StartedAt.IsZero() {
		a.StartedAt = time.Now()
	}
	return nil
}

// Passed reports whether the graded attempt meets the passing threshold.
// Pass/fail is derived, never stored.
func (a *AssessmentAttempt) Passed(passingScore int) bool {
	return a.Status == AttemptGraded && a.Score != nil && *a.Score >= float64(passingScore)
}

// Answer is one user's answer to a question within an attempt.
// IsCorrect stays nil for manually-graded types until an instructor
// grades them; answers are immutable once the attempt is graded.
type Answer struct {
	ID                  string     `gorm:"primaryKey" json:"id"`
	AssessmentAttemptID string     `gorm:"index;not null" json:"assessment_attempt_id"`
	QuestionID          string     `gorm:"index;not null" json:"question_id"`
	Answer              string     `gorm:"type:text;not null" json:"answer"`
	IsCorrect           *bool      `json:"is_correct"`
	Points              float64    `gorm:"default:0" json:"points"`
	Feedback            string     `json:"feedback"`
	SubmittedAt         time.Time  `json:"submitted_at"`
	GradedAt            *time.Time `json:"graded_at"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = time.Now()
	}
	return nil
}
