package services

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func enrollStudent(t *testing.T, db *gorm.DB, crs *courseModels.Course) (*models.User, *courseModels.CourseProgress) {
	t.Helper()
	student := seedStudent(t, db)
	_, err := Enroll(db, student.ID, crs.ID, nil)
	require.NoError(t, err)
	return student, lookupProgress(t, db, student.ID, crs.ID)
}

func TestRecordLessonCompletionUpdatesPercentage(t *testing.T) {
	db := setupTestDB(t)
	crs, lessons := seedCourse(t, db, 2, 2)
	_, progress := enrollStudent(t, db, crs)

	updated, err := RecordLessonCompletion(db, progress.ID, lessons[0].ID, 120)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CompletedLessons)
	assert.Equal(t, 4, updated.TotalLessons)
	assert.Equal(t, 25.0, updated.Progress)

	var lessonProgress courseModels.LessonProgress
	require.NoError(t, db.Where("course_progress_id = ? AND lesson_id = ?", progress.ID, lessons[0].ID).
		First(&lessonProgress).Error)
	assert.True(t, lessonProgress.IsCompleted)
	assert.NotNil(t, lessonProgress.CompletedAt)
	assert.Equal(t, 120, lessonProgress.TimeSpent)
}

func TestRecordLessonCompletionIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	crs, lessons := seedCourse(t, db, 3)
	_, progress := enrollStudent(t, db, crs)

	first, err := RecordLessonCompletion(db, progress.ID, lessons[0].ID, 100)
	require.NoError(t, err)
	require.Equal(t, 1, first.CompletedLessons)

	var before courseModels.LessonProgress
	require.NoError(t, db.Where("course_progress_id = ? AND lesson_id = ?", progress.ID, lessons[0].ID).
		First(&before).Error)
	completedAt := *before.CompletedAt

	// Second completion accumulates time but changes nothing else.
	_, err = RecordLessonCompletion(db, progress.ID, lessons[0].ID, 50)
	require.NoError(t, err)

	reloaded := lookupProgress(t, db, progress.UserID, crs.ID)
	assert.Equal(t, 1, reloaded.CompletedLessons)

	var after courseModels.LessonProgress
	require.NoError(t, db.Where("course_progress_id = ? AND lesson_id = ?", progress.ID, lessons[0].ID).
		First(&after).Error)
	assert.Equal(t, 150, after.TimeSpent)
	assert.True(t, after.CompletedAt.Equal(completedAt), "completedAt must be set exactly once")
}

func TestRecordLessonCompletionRounding(t *testing.T) {
	db := setupTestDB(t)
	crs, lessons := seedCourse(t, db, 3)
	_, progress := enrollStudent(t, db, crs)

	updated, err := RecordLessonCompletion(db, progress.ID, lessons[0].ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 33.33, updated.Progress)

	updated, err = RecordLessonCompletion(db, progress.ID, lessons[1].ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 66.67, updated.Progress) // round half-up

	updated, err = RecordLessonCompletion(db, progress.ID, lessons[2].ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 100.0, updated.Progress)
}

func TestRecordLessonCompletionRejectsForeignLesson(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	_, otherLessons := seedCourse(t, db, 1)
	_, progress := enrollStudent(t, db, crs)

	_, err := RecordLessonCompletion(db, progress.ID, otherLessons[0].ID, 10)
	assert.ErrorIs(t, err, ErrCourseMismatch)
}

func TestRecordLessonCompletionNotFound(t *testing.T) {
	db := setupTestDB(t)
	crs, lessons := seedCourse(t, db, 1)
	_, progress := enrollStudent(t, db, crs)

	_, err := RecordLessonCompletion(db, "no-such-progress", lessons[0].ID, 10)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = RecordLessonCompletion(db, progress.ID, "no-such-lesson", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordLessonCompletionEmitsEvents(t *testing.T) {
	db := setupTestDB(t)
	crs, lessons := seedCourse(t, db, 2)
	student, progress := enrollStudent(t, db, crs)

	_, err := RecordLessonCompletion(db, progress.ID, lessons[0].ID, 10)
	require.NoError(t, err)
	_, err = RecordLessonCompletion(db, progress.ID, lessons[1].ID, 10)
	require.NoError(t, err)

	var lessonEvents, courseEvents int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND event = ?", student.ID, EventLessonCompleted).Count(&lessonEvents).Error)
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND event = ?", student.ID, EventCourseCompleted).Count(&courseEvents).Error)
	assert.EqualValues(t, 2, lessonEvents)
	assert.EqualValues(t, 1, courseEvents)
}

func TestRecomputeTotalsAfterAddingLessons(t *testing.T) {
	db := setupTestDB(t)
	crs, lessons := seedCourse(t, db, 2)
	_, progress := enrollStudent(t, db, crs)

	_, err := RecordLessonCompletion(db, progress.ID, lessons[0].ID, 10)
	require.NoError(t, err)
	_, err = RecordLessonCompletion(db, progress.ID, lessons[1].ID, 10)
	require.NoError(t, err)

	// A lesson added after enrollment dilutes the percentage.
	var module courseModels.Module
	require.NoError(t, db.Where("course_id = ?", crs.ID).First(&module).Error)
	added := courseModels.Lesson{ModuleID: module.ID, Title: "Late addition", OrderIndex: 3}
	require.NoError(t, db.Create(&added).Error)

	updated, err := RecomputeCourseTotals(db, progress.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.TotalLessons)
	assert.Equal(t, 2, updated.CompletedLessons)
	assert.Equal(t, 66.67, updated.Progress)
}

func TestRecomputeTotalsClampsAfterRemovingLessons(t *testing.T) {
	db := setupTestDB(t)
	crs, lessons := seedCourse(t, db, 2)
	_, progress := enrollStudent(t, db, crs)

	for _, lesson := range lessons {
		_, err := RecordLessonCompletion(db, progress.ID, lesson.ID, 10)
		require.NoError(t, err)
	}

	// Soft-delete a completed lesson; its completion no longer counts.
	require.NoError(t, db.Model(&courseModels.Lesson{}).
		Where("id = ?", lessons[1].ID).Update("is_deleted", true).Error)

	updated, err := RecomputeCourseTotals(db, progress.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalLessons)
	assert.Equal(t, 1, updated.CompletedLessons)
	assert.Equal(t, 100.0, updated.Progress)
	assert.LessOrEqual(t, updated.CompletedLessons, updated.TotalLessons)
}

func TestRecomputeTotalsEmptyCourse(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db) // no modules at all
	_, progress := enrollStudent(t, db, crs)

	updated, err := RecomputeCourseTotals(db, progress.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.TotalLessons)
	assert.Equal(t, 0.0, updated.Progress)
}

func TestLessonProgressPairUniquelyIndexed(t *testing.T) {
	db := setupTestDB(t)
	crs, lessons := seedCourse(t, db, 1)
	_, progress := enrollStudent(t, db, crs)

	_, err := RecordLessonCompletion(db, progress.ID, lessons[0].ID, 10)
	require.NoError(t, err)

	// A second row for the same (progress, lesson) pair is rejected at
	// the index even when the service-level lookup is bypassed.
	dup := courseModels.LessonProgress{
		CourseProgressID: progress.ID,
		LessonID:         lessons[0].ID,
	}
	assert.Error(t, db.Create(&dup).Error)
}
