package authValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Turns validator/v10 failures into the field->message map used by
// ValidationErrorResponse.
func collectErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				errors[fe.Field()] = fe.Field() + " is required!"
			case "email":
				errors[fe.Field()] = "Invalid email!"
			case "min":
				errors[fe.Field()] = fe.Field() + " must be at least " + fe.Param() + " characters long!"
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

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name" validate:"required,min=2"`
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=8"`
			Role     string `json:"role" validate:"omitempty,oneof=STUDENT INSTRUCTOR"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
