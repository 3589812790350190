package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID         string `json:"courseId" validate:"required"`
			PaymentReference string `json:"paymentReference"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

func ChangeEnrollmentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "enrollmentId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
		}

		reqData := new(struct {
			Status string `json:"status" validate:"required,oneof=ACTIVE COMPLETED CANCELLED EXPIRED"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}

func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID  string `json:"courseId" validate:"required"`
			LessonID  string `json:"lessonId" validate:"required"`
			TimeSpent int    `json:"timeSpent" validate:"omitempty,min=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}
