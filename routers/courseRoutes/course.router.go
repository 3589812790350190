package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the learner-facing catalog, enrollment,
// progress and assessment routes.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:courseId", validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/enroll", middleware.JWTMiddleware, validators.Enroll(), controllers.EnrollInCourse)
	courseGroup.Get("/enrollments/my", middleware.JWTMiddleware, controllers.GetMyEnrollments)
	courseGroup.Patch("/enrollment/:enrollmentId/status", middleware.JWTMiddleware, validators.ChangeEnrollmentStatus(), controllers.ChangeEnrollmentStatus)

	// Progress
	courseGroup.Post("/lesson/complete", middleware.JWTMiddleware, validators.CompleteLesson(), controllers.CompleteLesson)
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)

	// Assessment attempts
	assessmentGroup := app.Group("/assessment")
	assessmentGroup.Post("/:assessmentId/start", middleware.JWTMiddleware, validators.AssessmentID(), controllers.StartAttempt)
	assessmentGroup.Get("/:assessmentId/attempts", middleware.JWTMiddleware, validators.AssessmentID(), controllers.GetMyAttempts)

	attemptGroup := app.Group("/attempt")
	attemptGroup.Post("/:attemptId/answer", middleware.JWTMiddleware, validators.SubmitAnswer(), controllers.SubmitAnswer)
	attemptGroup.Post("/:attemptId/submit", middleware.JWTMiddleware, validators.AttemptID(), controllers.SubmitAttempt)
	attemptGroup.Post("/:attemptId/cancel", middleware.JWTMiddleware, validators.AttemptID(), controllers.CancelAttempt)
}
