package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// loadOwnAttempt fetches an attempt and enforces that it belongs to the
// calling user. When it returns false the response is already written.
func loadOwnAttempt(c *fiber.Ctx, attemptID string) (*courseModels.AssessmentAttempt, bool) {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return nil, false
	}

	var attempt courseModels.AssessmentAttempt
	if err := database.Database.Db.Where("id = ?", attemptID).First(&attempt).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
		return nil, false
	}
	if attempt.UserID != userId {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
		return nil, false
	}
	return &attempt, true
}

func StartAttempt(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assessmentID := c.Locals("assessmentId").(string)

	attempt, err := services.StartAttempt(database.Database.Db, assessmentID, userId)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
		case errors.Is(err, services.ErrMaxAttemptsExceeded):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Maximum attempts reached!", nil)
		default:
			log.Printf("[ASSESSMENT] Failed to start attempt: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start attempt!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attempt started.", attempt)
}

func SubmitAnswer(c *fiber.Ctx) error {
	attemptID := c.Locals("attemptId").(string)

	if _, ok := loadOwnAttempt(c, attemptID); !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedAnswer").(*struct {
		QuestionID string `json:"questionId" validate:"required"`
		Answer     string `json:"answer"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	answer, err := services.SubmitAnswer(database.Database.Db, attemptID, reqData.QuestionID, reqData.Answer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
		case errors.Is(err, services.ErrAttemptNotInProgress):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Attempt is not in progress!", nil)
		default:
			log.Printf("[ASSESSMENT] Failed to submit answer: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit answer!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer recorded.", answer)
}

func SubmitAttempt(c *fiber.Ctx) error {
	attemptID := c.Locals("attemptId").(string)

	if _, ok := loadOwnAttempt(c, attemptID); !ok {
		return nil
	}

	db := database.Database.Db

	attempt, err := services.SubmitAttempt(db, attemptID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
		case errors.Is(err, services.ErrAttemptNotInProgress):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Attempt is not in progress!", nil)
		default:
			log.Printf("[ASSESSMENT] Failed to submit attempt: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
		}
	}

	if attempt.Status == courseModels.AttemptGraded {
		notifyAttemptGraded(attempt)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt submitted.", attempt)
}

func CancelAttempt(c *fiber.Ctx) error {
	attemptID := c.Locals("attemptId").(string)

	if _, ok := loadOwnAttempt(c, attemptID); !ok {
		return nil
	}

	attempt, err := services.CancelAttempt(database.Database.Db, attemptID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
		case errors.Is(err, services.ErrInvalidTransition):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Attempt cannot be cancelled!", nil)
		default:
			log.Printf("[ASSESSMENT] Failed to cancel attempt: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel attempt!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt cancelled.", attempt)
}

func GetMyAttempts(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assessmentID := c.Locals("assessmentId").(string)

	var attempts []courseModels.AssessmentAttempt
	if err := database.Database.Db.
		Where("assessment_id = ? AND user_id = ?", assessmentID, userId).
		Order("attempt_number ASC").Find(&attempts).Error; err != nil {
		log.Printf("[ASSESSMENT] Failed to fetch attempts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully.", attempts)
}

func GradeAnswer(c *fiber.Ctx) error {
	answerID := c.Locals("answerId").(string)

	reqData, ok := c.Locals("validatedGrade").(*struct {
		Points   *float64 `json:"points" validate:"required"`
		Feedback string   `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	answer, err := services.GradeManualAnswer(db, answerID, *reqData.Points, reqData.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Answer not found!", nil)
		case errors.Is(err, services.ErrInvalidTransition):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Attempt is not awaiting grading!", nil)
		case errors.Is(err, services.ErrInvalidScore):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Points are out of range!", nil)
		default:
			log.Printf("[ASSESSMENT] Failed to grade answer: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade answer!", nil)
		}
	}

	var attempt courseModels.AssessmentAttempt
	if db.Where("id = ?", answer.AssessmentAttemptID).First(&attempt).Error == nil &&
		attempt.Status == courseModels.AttemptGraded {
		notifyAttemptGraded(&attempt)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer graded.", answer)
}

func notifyAttemptGraded(attempt *courseModels.AssessmentAttempt) {
	db := database.Database.Db

	var user models.User
	var assessment courseModels.Assessment
	if db.Where("id = ?", attempt.UserID).First(&user).Error != nil ||
		db.Where("id = ?", attempt.AssessmentID).First(&assessment).Error != nil {
		return
	}

	score := 0.0
	if attempt.Score != nil {
		score = *attempt.Score
	}
	passed := attempt.Passed(assessment.PassingScore)

	go func() {
		if err := utils.SendAttemptGradedEmail(user.Email, user.Name, assessment.Title, score, passed); err != nil {
			log.Printf("[ASSESSMENT] Failed to send graded email: %v", err)
		}
	}()
}
