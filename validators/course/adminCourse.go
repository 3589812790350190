package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title" validate:"required,min=3"`
			Description  string `json:"description" validate:"required,min=5"`
			Level        string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED ALL_LEVELS"`
			Category     string `json:"category"`
			Duration     int    `json:"duration" validate:"omitempty,min=0"`
			ThumbnailURL string `json:"thumbnailUrl"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "courseId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(struct {
			Title        *string `json:"title" validate:"omitempty,min=3"`
			Description  *string `json:"description" validate:"omitempty,min=5"`
			Level        *string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED ALL_LEVELS"`
			Category     *string `json:"category"`
			Duration     *int    `json:"duration" validate:"omitempty,min=0"`
			ThumbnailURL *string `json:"thumbnailUrl"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "courseId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(struct {
			Publish *bool `json:"publish" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Publish == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"publish": "Publish flag is required!",
			})
		}

		c.Locals("publishStatus", *reqData.Publish)
		return c.Next()
	}
}

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "courseId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description"`
			Duration    int    `json:"duration" validate:"omitempty,min=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "moduleId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}

		reqData := new(struct {
			Title       *string `json:"title" validate:"omitempty,min=3"`
			Description *string `json:"description"`
			Duration    *int    `json:"duration" validate:"omitempty,min=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

func DeleteModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "moduleId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}
		return c.Next()
	}
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "moduleId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}

		reqData := new(struct {
			Title    string `json:"title" validate:"required,min=3"`
			Content  string `json:"content"`
			Type     string `json:"type" validate:"omitempty,oneof=TEXT VIDEO QUIZ ASSIGNMENT DOWNLOAD"`
			VideoURL string `json:"videoUrl"`
			Duration int    `json:"duration" validate:"omitempty,min=0"`
			IsFree   bool   `json:"isFree"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "lessonId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
		}

		reqData := new(struct {
			Title    *string `json:"title" validate:"omitempty,min=3"`
			Content  *string `json:"content"`
			Type     *string `json:"type" validate:"omitempty,oneof=TEXT VIDEO QUIZ ASSIGNMENT DOWNLOAD"`
			VideoURL *string `json:"videoUrl"`
			Duration *int    `json:"duration" validate:"omitempty,min=0"`
			IsFree   *bool   `json:"isFree"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

func DeleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireParam(c, "lessonId"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
		}
		return c.Next()
	}
}
