package userRoutes

import (
	userController "lms/controllers/userControllers"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userController.GetProfile)
	userGroup.Get("/notifications", middleware.JWTMiddleware, userController.GetNotifications)
	userGroup.Post("/notifications/:notificationId/read", middleware.JWTMiddleware, userController.MarkNotificationRead)
}
