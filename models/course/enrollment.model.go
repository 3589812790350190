package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment status values. ACTIVE is the only non-terminal state.
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentCancelled = "CANCELLED"
	EnrollmentExpired   = "EXPIRED"
)

// Enrollment tracks a user's registration in a course. The partial
// unique index enforces at most one ACTIVE row per (user, course) even
// under concurrent enrolls.
type Enrollment struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	UserID          string     `gorm:"uniqueIndex:idx_enrollment_active_pair,where:status = 'ACTIVE';not null" json:"user_id"`
	CourseID        string     `gorm:"uniqueIndex:idx_enrollment_active_pair,where:status = 'ACTIVE';not null" json:"course_id"`
	Status          string     `gorm:"default:'ACTIVE'" json:"status"`
	EnrolledAt      time.Time  `json:"enrolled_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	AccessExpiresAt *time.Time `json:"access_expires_at"`
	IsDeleted       bool       `gorm:"default:false" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now()
	}
	return nil
}
