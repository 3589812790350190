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

func CreateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string `json:"title" validate:"required,min=3"`
		Description  string `json:"description" validate:"required,min=5"`
		Level        string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED ALL_LEVELS"`
		Category     string `json:"category"`
		Duration     int    `json:"duration" validate:"omitempty,min=0"`
		ThumbnailURL string `json:"thumbnailUrl"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	level := reqData.Level
	if level == "" {
		level = courseModels.LevelBeginner
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Level:        level,
		Category:     reqData.Category,
		Duration:     reqData.Duration,
		Status:       courseModels.CourseDraft,
		ThumbnailURL: reqData.ThumbnailURL,
		InstructorID: userId,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("[ADMIN-COURSE] Failed to create course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(string)

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title        *string `json:"title" validate:"omitempty,min=3"`
		Description  *string `json:"description" validate:"omitempty,min=5"`
		Level        *string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED ALL_LEVELS"`
		Category     *string `json:"category"`
		Duration     *int    `json:"duration" validate:"omitempty,min=0"`
		ThumbnailURL *string `json:"thumbnailUrl"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.Category != nil {
		course.Category = *reqData.Category
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.ThumbnailURL != nil {
		course.ThumbnailURL = *reqData.ThumbnailURL
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("[ADMIN-COURSE] Failed to update course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

func PublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(string)
	publish := c.Locals("publishStatus").(bool)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = publish
	if publish {
		course.Status = courseModels.CoursePublished
	} else {
		course.Status = courseModels.CourseDraft
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("[ADMIN-COURSE] Failed to update publish status: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course publish status updated.", course)
}

// ArchiveCourse takes a course out of the catalog without touching any
// learner records.
func ArchiveCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(string)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Status = courseModels.CourseArchived
	course.IsPublished = false

	if err := db.Save(&course).Error; err != nil {
		log.Printf("[ADMIN-COURSE] Failed to archive course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to archive course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course archived successfully.", course)
}

// DeleteCourse removes a course with its full tree of modules, lessons,
// assessments and learner records in one transaction.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(string)

	if err := services.DeleteCourseCascade(database.Database.Db, courseID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("[ADMIN-COURSE] Failed to delete course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}

func CreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(string)

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description"`
		Duration    int    `json:"duration" validate:"omitempty,min=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	order, err := services.NextModuleOrder(db, courseID)
	if err != nil {
		log.Printf("[ADMIN-COURSE] Failed to compute module order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	module := courseModels.Module{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Duration:    reqData.Duration,
		OrderIndex:  order,
	}

	if err := db.Create(&module).Error; err != nil {
		log.Printf("[ADMIN-COURSE] Failed to create module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully.", module)
}

func UpdateModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleId").(string)

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title       *string `json:"title" validate:"omitempty,min=3"`
		Description *string `json:"description"`
		Duration    *int    `json:"duration" validate:"omitempty,min=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if reqData.Title != nil {
		module.Title = *reqData.Title
	}
	if reqData.Description != nil {
		module.Description = *reqData.Description
	}
	if reqData.Duration != nil {
		module.Duration = *reqData.Duration
	}

	if err := db.Save(&module).Error; err != nil {
		log.Printf("[ADMIN-COURSE] Failed to update module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully.", module)
}

// DeleteModule soft-deletes a module and its lessons; the remaining
// modules are resequenced so order values stay contiguous.
func DeleteModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleId").(string)

	if err := services.DeleteModule(database.Database.Db, moduleID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		log.Printf("[ADMIN-COURSE] Failed to delete module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully.", nil)
}

func CreateLesson(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleId").(string)

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title    string `json:"title" validate:"required,min=3"`
		Content  string `json:"content"`
		Type     string `json:"type" validate:"omitempty,oneof=TEXT VIDEO QUIZ ASSIGNMENT DOWNLOAD"`
		VideoURL string `json:"videoUrl"`
		Duration int    `json:"duration" validate:"omitempty,min=0"`
		IsFree   bool   `json:"isFree"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	lessonType := reqData.Type
	if lessonType == "" {
		lessonType = courseModels.LessonText
	}

	var maxOrder int
	db.Model(&courseModels.Lesson{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)

	lesson := courseModels.Lesson{
		ModuleID:   moduleID,
		Title:      reqData.Title,
		Content:    reqData.Content,
		Type:       lessonType,
		VideoURL:   reqData.VideoURL,
		Duration:   reqData.Duration,
		OrderIndex: maxOrder + 1,
		IsFree:     reqData.IsFree,
	}

	if err := db.Create(&lesson).Error; err != nil {
		log.Printf("[ADMIN-COURSE] Failed to create lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully.", lesson)
}

func UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonId").(string)

	reqData, ok := c.Locals("validatedLessonUpdate").(*struct {
		Title    *string `json:"title" validate:"omitempty,min=3"`
		Content  *string `json:"content"`
		Type     *string `json:"type" validate:"omitempty,oneof=TEXT VIDEO QUIZ ASSIGNMENT DOWNLOAD"`
		VideoURL *string `json:"videoUrl"`
		Duration *int    `json:"duration" validate:"omitempty,min=0"`
		IsFree   *bool   `json:"isFree"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if reqData.Title != nil {
		lesson.Title = *reqData.Title
	}
	if reqData.Content != nil {
		lesson.Content = *reqData.Content
	}
	if reqData.Type != nil {
		lesson.Type = *reqData.Type
	}
	if reqData.VideoURL != nil {
		lesson.VideoURL = *reqData.VideoURL
	}
	if reqData.Duration != nil {
		lesson.Duration = *reqData.Duration
	}
	if reqData.IsFree != nil {
		lesson.IsFree = *reqData.IsFree
	}

	if err := db.Save(&lesson).Error; err != nil {
		log.Printf("[ADMIN-COURSE] Failed to update lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully.", lesson)
}

// DeleteLesson soft-deletes a lesson. Learner percentages are not
// touched here; they re-derive on the next completion or an explicit
// recompute.
func DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonId").(string)

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := db.Save(&lesson).Error; err != nil {
		log.Printf("[ADMIN-COURSE] Failed to delete lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully.", nil)
}
