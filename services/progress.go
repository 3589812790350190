package services

import (
	"fmt"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// RecordLessonCompletion marks a lesson complete inside one
// transaction and rolls the aggregate forward. The call is idempotent:
// a repeated completion only accumulates time spent, it never
// re-triggers CompletedAt or double-increments the counter.
func RecordLessonCompletion(db *gorm.DB, courseProgressID, lessonID string, timeSpentDelta int) (*courseModels.CourseProgress, error) {
	var progress courseModels.CourseProgress

	err := db.Transaction(func(tx *gorm.DB) error {
		// Row lock so two concurrent completions of the same lesson
		// cannot both pass the idempotency check.
		if err := lockForUpdate(tx).Where("id = ?", courseProgressID).First(&progress).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		var lesson courseModels.Lesson
		if err := tx.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		var module courseModels.Module
		if err := tx.Where("id = ?", lesson.ModuleID).First(&module).Error; err != nil {
			return err
		}
		if module.CourseID != progress.CourseID {
			return ErrCourseMismatch
		}

		now := time.Now()

		var lessonProgress courseModels.LessonProgress
		err := tx.Where("course_progress_id = ? AND lesson_id = ?", courseProgressID, lessonID).
			First(&lessonProgress).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if err == gorm.ErrRecordNotFound {
			lessonProgress = courseModels.LessonProgress{
				CourseProgressID: courseProgressID,
				LessonID:         lessonID,
			}
		}

		if lessonProgress.IsCompleted {
			// Already counted; only accumulate time.
			lessonProgress.TimeSpent += timeSpentDelta
			lessonProgress.LastAccessed = now
			return tx.Save(&lessonProgress).Error
		}

		lessonProgress.IsCompleted = true
		lessonProgress.CompletedAt = &now
		lessonProgress.TimeSpent += timeSpentDelta
		lessonProgress.LastAccessed = now
		if err := tx.Save(&lessonProgress).Error; err != nil {
			return err
		}

		// Recount the denominator so lessons added or removed since
		// enrollment never skew the percentage.
		totalLessons, err := CountCourseLessons(tx, progress.CourseID)
		if err != nil {
			return err
		}

		progress.TotalLessons = totalLessons
		progress.CompletedLessons++
		if progress.CompletedLessons > progress.TotalLessons {
			progress.CompletedLessons = progress.TotalLessons
		}
		progress.Progress = roundPercent(progress.CompletedLessons, progress.TotalLessons)
		progress.LastAccessed = now
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		emitEvent(tx, progress.UserID, EventLessonCompleted, "Lesson completed",
			fmt.Sprintf("Lesson %q marked as completed.", lesson.Title))
		if progress.Progress >= 100 {
			emitEvent(tx, progress.UserID, EventCourseCompleted, "Course completed",
				"You have completed all lessons in this course.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// RecomputeCourseTotals recounts TotalLessons from the current course
// structure and re-derives the percentage. CompletedLessons is
// recounted against lessons that still exist, so removals clamp it.
func RecomputeCourseTotals(db *gorm.DB, courseProgressID string) (*courseModels.CourseProgress, error) {
	var progress courseModels.CourseProgress

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", courseProgressID).First(&progress).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		totalLessons, err := CountCourseLessons(tx, progress.CourseID)
		if err != nil {
			return err
		}

		var completed int64
		err = tx.Model(&courseModels.LessonProgress{}).
			Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
			Where("lesson_progress.course_progress_id = ? AND lesson_progress.is_completed = ? AND lessons.is_deleted = ?",
				courseProgressID, true, false).
			Count(&completed).Error
		if err != nil {
			return err
		}

		progress.TotalLessons = totalLessons
		progress.CompletedLessons = int(completed)
		if progress.CompletedLessons > progress.TotalLessons {
			progress.CompletedLessons = progress.TotalLessons
		}
		progress.Progress = roundPercent(progress.CompletedLessons, progress.TotalLessons)
		return tx.Save(&progress).Error
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
