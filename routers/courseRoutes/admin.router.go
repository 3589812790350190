package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the course authoring and grading routes.
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course",
		middleware.JWTMiddleware, middleware.RequireRole("ADMIN", "INSTRUCTOR"))

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	adminGroup.Put("/:courseId", validators.UpdateCourse(), controllers.UpdateCourse)
	adminGroup.Post("/:courseId/publish", validators.PublishCourse(), controllers.PublishCourse)
	adminGroup.Post("/:courseId/archive", validators.CourseID(), controllers.ArchiveCourse)
	adminGroup.Delete("/:courseId", validators.CourseID(), controllers.DeleteCourse)

	// Curriculum
	adminGroup.Post("/:courseId/module", validators.CreateModule(), controllers.CreateModule)
	adminGroup.Post("/:courseId/assessment", validators.CreateAssessment(), controllers.CreateAssessment)

	moduleGroup := app.Group("/admin/module",
		middleware.JWTMiddleware, middleware.RequireRole("ADMIN", "INSTRUCTOR"))
	moduleGroup.Post("/:moduleId/lesson", validators.CreateLesson(), controllers.CreateLesson)
	moduleGroup.Put("/:moduleId", validators.UpdateModule(), controllers.UpdateModule)
	moduleGroup.Delete("/:moduleId", validators.DeleteModule(), controllers.DeleteModule)

	lessonGroup := app.Group("/admin/lesson",
		middleware.JWTMiddleware, middleware.RequireRole("ADMIN", "INSTRUCTOR"))
	lessonGroup.Put("/:lessonId", validators.UpdateLesson(), controllers.UpdateLesson)
	lessonGroup.Delete("/:lessonId", validators.DeleteLesson(), controllers.DeleteLesson)

	assessmentGroup := app.Group("/admin/assessment",
		middleware.JWTMiddleware, middleware.RequireRole("ADMIN", "INSTRUCTOR"))
	assessmentGroup.Post("/:assessmentId/question", validators.CreateQuestion(), controllers.CreateQuestion)
	assessmentGroup.Put("/:assessmentId", validators.UpdateAssessment(), controllers.UpdateAssessment)
	assessmentGroup.Delete("/:assessmentId", validators.DeleteAssessment(), controllers.DeleteAssessment)

	questionGroup := app.Group("/admin/question",
		middleware.JWTMiddleware, middleware.RequireRole("ADMIN", "INSTRUCTOR"))
	questionGroup.Delete("/:questionId", validators.DeleteQuestion(), controllers.DeleteQuestion)

	// Manual grading
	answerGroup := app.Group("/admin/answer",
		middleware.JWTMiddleware, middleware.RequireRole("ADMIN", "INSTRUCTOR"))
	answerGroup.Post("/:answerId/grade", validators.GradeAnswer(), controllers.GradeAnswer)

	// Progress maintenance after curriculum edits
	progressGroup := app.Group("/admin/progress",
		middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	progressGroup.Post("/:progressId/recompute", validators.ProgressID(), controllers.RecomputeProgress)
}
