package services

import (
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollCreatesZeroedProgress(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 2, 3)
	student := seedStudent(t, db)

	enrollment, err := Enroll(db, student.ID, crs.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)

	progress := lookupProgress(t, db, student.ID, crs.ID)
	assert.Equal(t, 0, progress.CompletedLessons)
	assert.Equal(t, 5, progress.TotalLessons)
	assert.Equal(t, 0.0, progress.Progress)
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db)

	_, err := Enroll(db, student.ID, "no-such-course", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnrollDuplicateWhileActive(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)

	_, err := Enroll(db, student.ID, crs.ID, nil)
	require.NoError(t, err)

	_, err = Enroll(db, student.ID, crs.ID, nil)
	assert.ErrorIs(t, err, ErrDuplicateEnrollment)
}

func TestEnrollAgainAfterCancellation(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)

	first, err := Enroll(db, student.ID, crs.ID, nil)
	require.NoError(t, err)
	_, err = ChangeEnrollmentStatus(db, first.ID, courseModels.EnrollmentCancelled)
	require.NoError(t, err)

	// Only one ACTIVE enrollment per pair; a cancelled one does not block.
	_, err = Enroll(db, student.ID, crs.ID, nil)
	assert.NoError(t, err)
}

func TestChangeStatusCompletedRequiresFullProgress(t *testing.T) {
	db := setupTestDB(t)
	crs, lessons := seedCourse(t, db, 4)
	student := seedStudent(t, db)

	enrollment, err := Enroll(db, student.ID, crs.ID, nil)
	require.NoError(t, err)
	progress := lookupProgress(t, db, student.ID, crs.ID)

	for _, lesson := range lessons[:3] {
		_, err = RecordLessonCompletion(db, progress.ID, lesson.ID, 60)
		require.NoError(t, err)
	}

	updated := lookupProgress(t, db, student.ID, crs.ID)
	assert.Equal(t, 75.0, updated.Progress)

	_, err = ChangeEnrollmentStatus(db, enrollment.ID, courseModels.EnrollmentCompleted)
	assert.ErrorIs(t, err, ErrIncompleteCourse)

	_, err = RecordLessonCompletion(db, progress.ID, lessons[3].ID, 60)
	require.NoError(t, err)

	completed, err := ChangeEnrollmentStatus(db, enrollment.ID, courseModels.EnrollmentCompleted)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
}

func TestChangeStatusTerminalStatesAreClosed(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)

	enrollment, err := Enroll(db, student.ID, crs.ID, nil)
	require.NoError(t, err)
	_, err = ChangeEnrollmentStatus(db, enrollment.ID, courseModels.EnrollmentCancelled)
	require.NoError(t, err)

	for _, target := range []string{
		courseModels.EnrollmentActive,
		courseModels.EnrollmentCompleted,
		courseModels.EnrollmentExpired,
	} {
		_, err = ChangeEnrollmentStatus(db, enrollment.ID, target)
		assert.ErrorIs(t, err, ErrInvalidTransition, "cancelled -> %s must be rejected", target)
	}
}

func TestChangeStatusUnknownTargetAndEnrollment(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)

	enrollment, err := Enroll(db, student.ID, crs.ID, nil)
	require.NoError(t, err)

	_, err = ChangeEnrollmentStatus(db, enrollment.ID, "PAUSED")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = ChangeEnrollmentStatus(db, "no-such-enrollment", courseModels.EnrollmentCancelled)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpireOverdueEnrollments(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)
	other := seedStudent(t, db)

	past := time.Now().Add(-24 * time.Hour)
	expired, err := Enroll(db, student.ID, crs.ID, &past)
	require.NoError(t, err)

	future := time.Now().Add(24 * time.Hour)
	active, err := Enroll(db, other.ID, crs.ID, &future)
	require.NoError(t, err)

	count, err := ExpireOverdueEnrollments(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var reloaded courseModels.Enrollment
	require.NoError(t, db.First(&reloaded, "id = ?", expired.ID).Error)
	assert.Equal(t, courseModels.EnrollmentExpired, reloaded.Status)

	reloaded = courseModels.Enrollment{}
	require.NoError(t, db.First(&reloaded, "id = ?", active.ID).Error)
	assert.Equal(t, courseModels.EnrollmentActive, reloaded.Status)
}

func TestActiveEnrollmentPairUniquelyIndexed(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)

	_, err := Enroll(db, student.ID, crs.ID, nil)
	require.NoError(t, err)

	// Bypassing the service-level check: the partial unique index still
	// rejects a second ACTIVE row for the same pair.
	dup := courseModels.Enrollment{
		UserID:   student.ID,
		CourseID: crs.ID,
		Status:   courseModels.EnrollmentActive,
	}
	assert.Error(t, db.Create(&dup).Error)

	// Terminal rows for the pair stay outside the index.
	cancelled := courseModels.Enrollment{
		UserID:   student.ID,
		CourseID: crs.ID,
		Status:   courseModels.EnrollmentCancelled,
	}
	assert.NoError(t, db.Create(&cancelled).Error)
}

func TestReenrollKeepsSingleProgressRow(t *testing.T) {
	db := setupTestDB(t)
	crs, lessons := seedCourse(t, db, 2)
	student := seedStudent(t, db)

	first, err := Enroll(db, student.ID, crs.ID, nil)
	require.NoError(t, err)
	progress := lookupProgress(t, db, student.ID, crs.ID)
	_, err = RecordLessonCompletion(db, progress.ID, lessons[0].ID, 30)
	require.NoError(t, err)

	_, err = ChangeEnrollmentStatus(db, first.ID, courseModels.EnrollmentCancelled)
	require.NoError(t, err)
	_, err = Enroll(db, student.ID, crs.ID, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&courseModels.CourseProgress{}).
		Where("user_id = ? AND course_id = ?", student.ID, crs.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The aggregate resumes instead of resetting.
	resumed := lookupProgress(t, db, student.ID, crs.ID)
	assert.Equal(t, 1, resumed.CompletedLessons)
	assert.Equal(t, 50.0, resumed.Progress)
}
