package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func AssessmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "assessmentId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment id!", nil)
		}
		return c.Next()
	}
}

func AttemptID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "attemptId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
		}
		return c.Next()
	}
}

func SubmitAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "attemptId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
		}

		reqData := new(struct {
			QuestionID string `json:"questionId" validate:"required"`
			Answer     string `json:"answer"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}
