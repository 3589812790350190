package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "courseId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(struct {
			Title        string `json:"title" validate:"required,min=3"`
			Description  string `json:"description"`
			Type         string `json:"type" validate:"omitempty,oneof=QUIZ EXAM ASSIGNMENT PROJECT"`
			TimeLimit    int    `json:"timeLimit" validate:"omitempty,min=0"`
			Attempts     int    `json:"attempts" validate:"omitempty,min=1"`
			PassingScore int    `json:"passingScore" validate:"omitempty,min=0,max=100"`
			IsRequired   bool   `json:"isRequired"`
			LessonID     string `json:"lessonId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedAssessment", reqData)
		return c.Next()
	}
}

func UpdateAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "assessmentId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment id!", nil)
		}

		reqData := new(struct {
			Title        *string `json:"title" validate:"omitempty,min=3"`
			Description  *string `json:"description"`
			TimeLimit    *int    `json:"timeLimit" validate:"omitempty,min=0"`
			Attempts     *int    `json:"attempts" validate:"omitempty,min=1"`
			PassingScore *int    `json:"passingScore" validate:"omitempty,min=0,max=100"`
			IsRequired   *bool   `json:"isRequired"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedAssessmentUpdate", reqData)
		return c.Next()
	}
}

func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "assessmentId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment id!", nil)
		}

		reqData := new(struct {
			Question      string   `json:"question" validate:"required,min=3"`
			Type          string   `json:"type" validate:"required,oneof=MULTIPLE_CHOICE TRUE_FALSE SHORT_ANSWER ESSAY CODE FILL_BLANK"`
			Options       []string `json:"options"`
			CorrectAnswer string   `json:"correctAnswer"`
			Explanation   string   `json:"explanation"`
			Points        int      `json:"points" validate:"omitempty,min=1"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		errors := make(map[string]string)

		// Auto-graded types need a reference answer to match against.
		switch reqData.Type {
		case "MULTIPLE_CHOICE":
			if len(reqData.Options) < 2 {
				errors["options"] = "Multiple choice questions need at least 2 options!"
			}
			if reqData.CorrectAnswer == "" {
				errors["correctAnswer"] = "Correct answer is required!"
			}
		case "TRUE_FALSE", "FILL_BLANK":
			if reqData.CorrectAnswer == "" {
				errors["correctAnswer"] = "Correct answer is required!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func DeleteAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "assessmentId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment id!", nil)
		}
		return c.Next()
	}
}

func DeleteQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "questionId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
		}
		return c.Next()
	}
}

func GradeAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "answerId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answer id!", nil)
		}

		reqData := new(struct {
			Points   *float64 `json:"points" validate:"required"`
			Feedback string   `json:"feedback"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Points == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"points": "Points are required!",
			})
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}
