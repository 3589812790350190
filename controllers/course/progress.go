package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services"
	"log"

	"github.com/gofiber/fiber/v2"
)

func CompleteLesson(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCompletion").(*struct {
		CourseID  string `json:"courseId" validate:"required"`
		LessonID  string `json:"lessonId" validate:"required"`
		TimeSpent int    `json:"timeSpent" validate:"omitempty,min=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userId, reqData.CourseID).
		First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
	}

	updated, err := services.RecordLessonCompletion(db, progress.ID, reqData.LessonID, reqData.TimeSpent)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		case errors.Is(err, services.ErrCourseMismatch):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Lesson does not belong to this course!", nil)
		default:
			log.Printf("[PROGRESS] Failed to record lesson completion: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completion recorded.", updated)
}

func GetCourseProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseId").(string)

	db := database.Database.Db

	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userId, courseID).
		First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
	}

	var lessonProgress []courseModels.LessonProgress
	if err := db.Where("course_progress_id = ?", progress.ID).
		Find(&lessonProgress).Error; err != nil {
		log.Printf("[PROGRESS] Failed to fetch lesson progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", fiber.Map{
		"progress": progress,
		"lessons":  lessonProgress,
	})
}

// RecomputeProgress re-derives a learner's aggregate counters from the
// lesson rows. Admin tool for after curriculum edits.
func RecomputeProgress(c *fiber.Ctx) error {
	progressID := c.Locals("progressId").(string)

	updated, err := services.RecomputeCourseTotals(database.Database.Db, progressID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Progress record not found!", nil)
		}
		log.Printf("[PROGRESS] Failed to recompute totals: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to recompute progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recomputed successfully.", updated)
}
