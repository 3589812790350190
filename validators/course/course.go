package courseValidator

import (
	"lms/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func collectErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				errors[fe.Field()] = fe.Field() + " is required!"
			case "min":
				errors[fe.Field()] = fe.Field() + " must be at least " + fe.Param() + "!"
			case "max":
				errors[fe.Field()] = fe.Field() + " must be at most " + fe.Param() + "!"
			case "oneof":
				errors[fe.Field()] = fe.Field() + " must be one of: " + fe.Param() + "!"
			default:
				errors[fe.Field()] = "Invalid " + fe.Field() + "!"
			}
		}
	} else {
		errors["request"] = "Invalid request data!"
	}
	return errors
}

// requireParam checks a non-empty route param and stashes it in Locals
// under the same name.
func requireParam(c *fiber.Ctx, name string) (string, bool) {
	value := strings.TrimSpace(c.Params(name))
	if value == "" {
		return "", false
	}
	c.Locals(name, value)
	return value, true
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "courseId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		return c.Next()
	}
}

func ProgressID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "progressId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid progress id!", nil)
		}
		return c.Next()
	}
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int   `query:"page"`
			Limit    *int   `query:"limit"`
			Category string `query:"category"`
			Level    string `query:"level"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
