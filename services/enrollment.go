package services

import (
	"log"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// enrollmentTransitions is the allowed state machine. Missing keys and
// empty lists are terminal states.
var enrollmentTransitions = map[string][]string{
	courseModels.EnrollmentActive: {
		courseModels.EnrollmentCompleted,
		courseModels.EnrollmentCancelled,
		courseModels.EnrollmentExpired,
	},
	courseModels.EnrollmentCompleted: {},
	courseModels.EnrollmentCancelled: {},
	courseModels.EnrollmentExpired:   {},
}

func enrollmentTransitionAllowed(from, to string) bool {
	for _, allowed := range enrollmentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Enroll registers a user in a course and creates the zeroed progress
// aggregate alongside it. TotalLessons is counted across all modules at
// enrollment time. The duplicate check and both inserts run in one
// transaction so concurrent requests cannot create two active
// enrollments for the same pair.
func Enroll(db *gorm.DB, userID, courseID string, accessExpiresAt *time.Time) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment

	err := db.Transaction(func(tx *gorm.DB) error {
		// Locking the course row serializes concurrent enrolls; the
		// partial unique index on (user_id, course_id) WHERE ACTIVE is
		// the backstop.
		var crs courseModels.Course
		if err := lockForUpdate(tx).Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		var existing courseModels.Enrollment
		err := tx.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
			userID, courseID, courseModels.EnrollmentActive, false).First(&existing).Error
		if err == nil {
			return ErrDuplicateEnrollment
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		totalLessons, err := CountCourseLessons(tx, courseID)
		if err != nil {
			return err
		}

		enrollment = courseModels.Enrollment{
			UserID:          userID,
			CourseID:        courseID,
			Status:          courseModels.EnrollmentActive,
			AccessExpiresAt: accessExpiresAt,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		// Re-enrolling after cancellation resumes the existing progress
		// aggregate; only one exists per (user, course).
		var progress courseModels.CourseProgress
		err = tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
		if err == gorm.ErrRecordNotFound {
			progress = courseModels.CourseProgress{
				UserID:           userID,
				CourseID:         courseID,
				CompletedLessons: 0,
				TotalLessons:     totalLessons,
				Progress:         0,
			}
			return tx.Create(&progress).Error
		}
		if err != nil {
			return err
		}
		progress.TotalLessons = totalLessons
		progress.Progress = roundPercent(progress.CompletedLessons, totalLessons)
		return tx.Save(&progress).Error
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ChangeEnrollmentStatus validates and applies a status transition.
// Completing an enrollment additionally requires the associated course
// progress to be at 100 percent.
func ChangeEnrollmentStatus(db *gorm.DB, enrollmentID, newStatus string) (*courseModels.Enrollment, error) {
	if _, known := enrollmentTransitions[newStatus]; !known {
		return nil, ErrInvalidTransition
	}

	var enrollment courseModels.Enrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		if !enrollmentTransitionAllowed(enrollment.Status, newStatus) {
			return ErrInvalidTransition
		}

		if newStatus == courseModels.EnrollmentCompleted {
			var progress courseModels.CourseProgress
			if err := tx.Where("user_id = ? AND course_id = ?", enrollment.UserID, enrollment.CourseID).
				First(&progress).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrIncompleteCourse
				}
				return err
			}
			if progress.Progress < 100 {
				return ErrIncompleteCourse
			}
			now := time.Now()
			enrollment.CompletedAt = &now
		}

		enrollment.Status = newStatus
		return tx.Save(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ExpireOverdueEnrollments marks active enrollments whose access window
// has lapsed as EXPIRED. Called by the daily scheduler.
func ExpireOverdueEnrollments(db *gorm.DB) (int64, error) {
	result := db.Model(&courseModels.Enrollment{}).
		Where("status = ? AND is_deleted = ? AND access_expires_at IS NOT NULL AND access_expires_at < ?",
			courseModels.EnrollmentActive, false, time.Now()).
		Update("status", courseModels.EnrollmentExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("[ENROLLMENT] Expired %d enrollments past their access window", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
