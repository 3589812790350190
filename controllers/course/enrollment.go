package controllers

import (
	"errors"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

func EnrollInCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnroll").(*struct {
		CourseID         string `json:"courseId" validate:"required"`
		PaymentReference string `json:"paymentReference"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", reqData.CourseID, true, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.PaymentReference != "" {
		verified, err := utils.VerifyPayment(reqData.PaymentReference)
		if err != nil {
			log.Printf("[ENROLLMENT] Payment verification error: %v", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment verification failed!", nil)
		}
		if !verified {
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment not completed!", nil)
		}
	}

	var accessExpiresAt *time.Time
	if config.AppConfig.AccessDurationDays > 0 {
		expiry := time.Now().AddDate(0, 0, config.AppConfig.AccessDurationDays)
		accessExpiresAt = &expiry
	}

	enrollment, err := services.Enroll(db, userId, reqData.CourseID, accessExpiresAt)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEnrollment):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		default:
			log.Printf("[ENROLLMENT] Failed to enroll: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
		}
	}

	var user models.User
	if err := db.Where("id = ?", userId).First(&user).Error; err == nil {
		go func() {
			if err := utils.SendEnrollmentEmail(user.Email, user.Name, course.Title); err != nil {
				log.Printf("[ENROLLMENT] Failed to send enrollment email: %v", err)
			}
		}()
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully.", enrollment)
}

func GetMyEnrollments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("enrolled_at DESC").Find(&enrollments).Error; err != nil {
		log.Printf("[ENROLLMENT] Failed to fetch enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully.", enrollments)
}

func ChangeEnrollmentStatus(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentId").(string)

	reqData, ok := c.Locals("validatedStatus").(*struct {
		Status string `json:"status" validate:"required,oneof=ACTIVE COMPLETED CANCELLED EXPIRED"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Students may only touch their own enrollments.
	var enrollment courseModels.Enrollment
	if err := db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}
	role, _ := c.Locals("role").(string)
	if enrollment.UserID != userId && role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	updated, err := services.ChangeEnrollmentStatus(db, enrollmentID, reqData.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		case errors.Is(err, services.ErrInvalidTransition):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Invalid status change!", nil)
		case errors.Is(err, services.ErrIncompleteCourse):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Course is not fully completed yet!", nil)
		default:
			log.Printf("[ENROLLMENT] Failed to change status: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
		}
	}

	if updated.Status == courseModels.EnrollmentCompleted {
		var user models.User
		var course courseModels.Course
		if db.Where("id = ?", updated.UserID).First(&user).Error == nil &&
			db.Where("id = ?", updated.CourseID).First(&course).Error == nil {
			go func() {
				if err := utils.SendCourseCompletedEmail(user.Email, user.Name, course.Title); err != nil {
					log.Printf("[ENROLLMENT] Failed to send completion email: %v", err)
				}
			}()
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment updated successfully.", updated)
}
