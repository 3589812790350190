package controllers

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func CreateAssessment(c *fiber.Ctx) error {
	courseID := c.Locals("courseId").(string)

	reqData, ok := c.Locals("validatedAssessment").(*struct {
		Title        string `json:"title" validate:"required,min=3"`
		Description  string `json:"description"`
		Type         string `json:"type" validate:"omitempty,oneof=QUIZ EXAM ASSIGNMENT PROJECT"`
		TimeLimit    int    `json:"timeLimit" validate:"omitempty,min=0"`
		Attempts     int    `json:"attempts" validate:"omitempty,min=1"`
		PassingScore int    `json:"passingScore" validate:"omitempty,min=0,max=100"`
		IsRequired   bool   `json:"isRequired"`
		LessonID     string `json:"lessonId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	assessmentType := reqData.Type
	if assessmentType == "" {
		assessmentType = courseModels.AssessmentQuiz
	}
	attempts := reqData.Attempts
	if attempts == 0 {
		attempts = 1
	}
	passingScore := reqData.PassingScore
	if passingScore == 0 {
		passingScore = 70
	}

	var maxOrder int
	db.Model(&courseModels.Assessment{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)

	assessment := courseModels.Assessment{
		CourseID:     courseID,
		LessonID:     reqData.LessonID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Type:         assessmentType,
		TimeLimit:    reqData.TimeLimit,
		Attempts:     attempts,
		PassingScore: passingScore,
		IsRequired:   reqData.IsRequired,
		OrderIndex:   maxOrder + 1,
	}

	if err := db.Create(&assessment).Error; err != nil {
		log.Printf("[ADMIN-ASSESSMENT] Failed to create assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assessment created successfully.", assessment)
}

func UpdateAssessment(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentId").(string)

	reqData, ok := c.Locals("validatedAssessmentUpdate").(*struct {
		Title        *string `json:"title" validate:"omitempty,min=3"`
		Description  *string `json:"description"`
		TimeLimit    *int    `json:"timeLimit" validate:"omitempty,min=0"`
		Attempts     *int    `json:"attempts" validate:"omitempty,min=1"`
		PassingScore *int    `json:"passingScore" validate:"omitempty,min=0,max=100"`
		IsRequired   *bool   `json:"isRequired"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var assessment courseModels.Assessment
	if err := db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	if reqData.Title != nil {
		assessment.Title = *reqData.Title
	}
	if reqData.Description != nil {
		assessment.Description = *reqData.Description
	}
	if reqData.TimeLimit != nil {
		assessment.TimeLimit = *reqData.TimeLimit
	}
	if reqData.Attempts != nil {
		assessment.Attempts = *reqData.Attempts
	}
	if reqData.PassingScore != nil {
		assessment.PassingScore = *reqData.PassingScore
	}
	if reqData.IsRequired != nil {
		assessment.IsRequired = *reqData.IsRequired
	}

	if err := db.Save(&assessment).Error; err != nil {
		log.Printf("[ADMIN-ASSESSMENT] Failed to update assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment updated successfully.", assessment)
}

func CreateQuestion(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentId").(string)

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Question      string   `json:"question" validate:"required,min=3"`
		Type          string   `json:"type" validate:"required,oneof=MULTIPLE_CHOICE TRUE_FALSE SHORT_ANSWER ESSAY CODE FILL_BLANK"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
		Explanation   string   `json:"explanation"`
		Points        int      `json:"points" validate:"omitempty,min=1"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var assessment courseModels.Assessment
	if err := db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	points := reqData.Points
	if points == 0 {
		points = 1
	}

	var options datatypes.JSON
	if len(reqData.Options) > 0 {
		raw, err := json.Marshal(reqData.Options)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
		}
		options = datatypes.JSON(raw)
	}

	var maxOrder int
	db.Model(&courseModels.Question{}).
		Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)

	question := courseModels.Question{
		AssessmentID:  assessmentID,
		Question:      reqData.Question,
		Type:          reqData.Type,
		Options:       options,
		CorrectAnswer: reqData.CorrectAnswer,
		Explanation:   reqData.Explanation,
		Points:        points,
		OrderIndex:    maxOrder + 1,
	}

	if err := db.Create(&question).Error; err != nil {
		log.Printf("[ADMIN-ASSESSMENT] Failed to create question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully.", question)
}

// DeleteQuestion soft-deletes a question. Scores of already graded
// attempts stay frozen; the next attempt starts without it.
func DeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionId").(string)

	db := database.Database.Db

	var question courseModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := db.Save(&question).Error; err != nil {
		log.Printf("[ADMIN-ASSESSMENT] Failed to delete question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully.", nil)
}

// DeleteAssessment soft-deletes an assessment and its questions.
// Existing attempts keep their frozen scores.
func DeleteAssessment(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentId").(string)

	db := database.Database.Db

	var assessment courseModels.Assessment
	if err := db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	assessment.IsDeleted = true
	if err := db.Save(&assessment).Error; err != nil {
		log.Printf("[ADMIN-ASSESSMENT] Failed to delete assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assessment!", nil)
	}

	if err := db.Model(&courseModels.Question{}).
		Where("assessment_id = ?", assessmentID).
		Update("is_deleted", true).Error; err != nil {
		log.Printf("[ADMIN-ASSESSMENT] Failed to delete questions: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment deleted successfully.", nil)
}
