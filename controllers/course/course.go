package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page     *int   `query:"page"`
		Limit    *int   `query:"limit"`
		Category string `query:"category"`
		Level    string `query:"level"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := 1
	limit := 20
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&courseModels.Course{}).
		Where("is_published = ? AND is_deleted = ?", true, false)
	if reqData.Category != "" {
		query = query.Where("category = ?", reqData.Category)
	}
	if reqData.Level != "" {
		query = query.Where("level = ?", reqData.Level)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[COURSE] Failed to count courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var courses []courseModels.Course
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&courses).Error; err != nil {
		log.Printf("[COURSE] Failed to fetch courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", fiber.Map{
		"courses": courses,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(string)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index ASC").Find(&modules).Error; err != nil {
		log.Printf("[COURSE] Failed to fetch modules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	moduleIDs := make([]string, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	var lessons []courseModels.Lesson
	if len(moduleIDs) > 0 {
		if err := db.Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).
			Order("order_index ASC").Find(&lessons).Error; err != nil {
			log.Printf("[COURSE] Failed to fetch lessons: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
		}
	}

	var assessments []courseModels.Assessment
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index ASC").Find(&assessments).Error; err != nil {
		log.Printf("[COURSE] Failed to fetch assessments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully.", fiber.Map{
		"course":      course,
		"modules":     modules,
		"lessons":     lessons,
		"assessments": assessments,
	})
}
