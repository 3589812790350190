package services

import (
	"fmt"
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database and migrates the
// full schema. Each test gets its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Enrollment{},
		&courseModels.CourseProgress{},
		&courseModels.LessonProgress{},
		&courseModels.Assessment{},
		&courseModels.Question{},
		&courseModels.AssessmentAttempt{},
		&courseModels.Answer{},
	))
	return db
}

// seedCourse creates a published course with one module per entry in
// lessonCounts, each holding that many lessons. Returns the course and
// all lessons in module order.
func seedCourse(t *testing.T, db *gorm.DB, lessonCounts ...int) (*courseModels.Course, []courseModels.Lesson) {
	t.Helper()

	crs := courseModels.Course{
		Title:       "Test Course",
		Description: "seeded",
		Status:      courseModels.CoursePublished,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&crs).Error)

	var lessons []courseModels.Lesson
	for m, count := range lessonCounts {
		module := courseModels.Module{
			CourseID:   crs.ID,
			Title:      fmt.Sprintf("Module %d", m+1),
			OrderIndex: m + 1,
		}
		require.NoError(t, db.Create(&module).Error)

		for l := 0; l < count; l++ {
			lesson := courseModels.Lesson{
				ModuleID:   module.ID,
				Title:      fmt.Sprintf("Lesson %d.%d", m+1, l+1),
				Type:       courseModels.LessonText,
				OrderIndex: l + 1,
			}
			require.NoError(t, db.Create(&lesson).Error)
			lessons = append(lessons, lesson)
		}
	}
	return &crs, lessons
}

func seedStudent(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		Name:     "Test Student",
		Email:    fmt.Sprintf("%s@example.com", uuid.NewString()),
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedAssessment creates an assessment with the given attempt limit,
// passing score and questions (points + type + correct answer).
func seedAssessment(t *testing.T, db *gorm.DB, courseID string, attempts, passingScore int, questions ...courseModels.Question) (*courseModels.Assessment, []courseModels.Question) {
	t.Helper()

	assessment := courseModels.Assessment{
		CourseID:     courseID,
		Title:        "Test Quiz",
		Type:         courseModels.AssessmentQuiz,
		Attempts:     attempts,
		PassingScore: passingScore,
	}
	require.NoError(t, db.Create(&assessment).Error)

	created := make([]courseModels.Question, 0, len(questions))
	for i, q := range questions {
		q.AssessmentID = assessment.ID
		q.OrderIndex = i + 1
		if q.Question == "" {
			q.Question = fmt.Sprintf("Question %d", i+1)
		}
		require.NoError(t, db.Create(&q).Error)
		created = append(created, q)
	}
	return &assessment, created
}

// lookupProgress fetches the CourseProgress for a (user, course) pair.
func lookupProgress(t *testing.T, db *gorm.DB, userID, courseID string) *courseModels.CourseProgress {
	t.Helper()

	var progress courseModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error)
	return &progress
}
