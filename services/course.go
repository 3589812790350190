package services

import (
	"math"

	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds a FOR UPDATE row lock to a transactional read so
// concurrent read-modify-write operations on the same row serialize.
// The sqlite test driver allows a single writer and has no row locks.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// roundPercent derives a completion percentage rounded half-up to two
// decimal places. A zero total yields 0, never NaN.
func roundPercent(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(completed) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// CountCourseLessons counts the live lessons of a course across all of
// its modules.
func CountCourseLessons(db *gorm.DB, courseID string) (int, error) {
	var total int64
	err := db.Model(&courseModels.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ? AND modules.is_deleted = ? AND lessons.is_deleted = ?", courseID, false, false).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// DeleteCourseCascade removes a course and everything owned by it,
// children first, inside one transaction. The deletion order is
// enforced here rather than left to database-level cascades so the
// logic stays portable across storage engines.
func DeleteCourseCascade(db *gorm.DB, courseID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var crs courseModels.Course
		if err := tx.Where("id = ?", courseID).First(&crs).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		// Assessment subtree: answers -> attempts -> questions -> assessments
		var assessmentIDs []string
		if err := tx.Model(&courseModels.Assessment{}).Where("course_id = ?", courseID).
			Pluck("id", &assessmentIDs).Error; err != nil {
			return err
		}
		if len(assessmentIDs) > 0 {
			var attemptIDs []string
			if err := tx.Model(&courseModels.AssessmentAttempt{}).Where("assessment_id IN ?", assessmentIDs).
				Pluck("id", &attemptIDs).Error; err != nil {
				return err
			}
			if len(attemptIDs) > 0 {
				if err := tx.Where("assessment_attempt_id IN ?", attemptIDs).Delete(&courseModels.Answer{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", attemptIDs).Delete(&courseModels.AssessmentAttempt{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("assessment_id IN ?", assessmentIDs).Delete(&courseModels.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", assessmentIDs).Delete(&courseModels.Assessment{}).Error; err != nil {
				return err
			}
		}

		// Progress subtree: lesson progress -> course progress
		var progressIDs []string
		if err := tx.Model(&courseModels.CourseProgress{}).Where("course_id = ?", courseID).
			Pluck("id", &progressIDs).Error; err != nil {
			return err
		}
		if len(progressIDs) > 0 {
			if err := tx.Where("course_progress_id IN ?", progressIDs).Delete(&courseModels.LessonProgress{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", progressIDs).Delete(&courseModels.CourseProgress{}).Error; err != nil {
				return err
			}
		}

		// Enrollments, then the content tree: lessons -> modules -> course
		if err := tx.Where("course_id = ?", courseID).Delete(&courseModels.Enrollment{}).Error; err != nil {
			return err
		}
		var moduleIDs []string
		if err := tx.Model(&courseModels.Module{}).Where("course_id = ?", courseID).
			Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}
		if len(moduleIDs) > 0 {
			if err := tx.Where("module_id IN ?", moduleIDs).Delete(&courseModels.Lesson{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", moduleIDs).Delete(&courseModels.Module{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&crs).Error
	})
}

// DeleteModule soft-deletes a module with its lessons and closes the
// resulting gap so surviving module order values stay contiguous.
func DeleteModule(db *gorm.DB, moduleID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var module courseModels.Module
		if err := lockForUpdate(tx).Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		module.IsDeleted = true
		if err := tx.Save(&module).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Lesson{}).
			Where("module_id = ?", moduleID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		var survivors []courseModels.Module
		if err := tx.Where("course_id = ? AND is_deleted = ?", module.CourseID, false).
			Order("order_index ASC").Find(&survivors).Error; err != nil {
			return err
		}
		for i := range survivors {
			if survivors[i].OrderIndex == i+1 {
				continue
			}
			if err := tx.Model(&survivors[i]).Update("order_index", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// NextModuleOrder returns the next contiguous order index for a new
// module in the given course.
func NextModuleOrder(db *gorm.DB, courseID string) (int, error) {
	var maxOrder int
	err := db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}
