package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course browsing, authoring, enrollment,
// progress and export routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")
	instructor := middleware.RequireRole(models.RoleInstructor)

	// Browsing
	courseGroup.Get("/", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/mine", middleware.JWTMiddleware, instructor, controllers.GetMyCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Authoring
	courseGroup.Post("/", middleware.JWTMiddleware, instructor, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, instructor, validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, instructor, validators.CourseID(), controllers.DeleteCourse)

	// Chapters
	courseGroup.Post("/:id/chapters", middleware.JWTMiddleware, instructor, validators.CourseID(), validators.CreateChapter(), controllers.CreateChapter)
	courseGroup.Put("/:id/chapters/:chapterId", middleware.JWTMiddleware, instructor, validators.CourseID(), validators.ChapterID(), validators.CreateChapter(), controllers.UpdateChapter)
	courseGroup.Delete("/:id/chapters/:chapterId", middleware.JWTMiddleware, instructor, validators.CourseID(), validators.ChapterID(), controllers.DeleteChapter)

	// Lessons
	courseGroup.Post("/:id/chapters/:chapterId/lessons", middleware.JWTMiddleware, instructor, validators.CourseID(), validators.ChapterID(), validators.CreateLesson(), controllers.CreateLesson)
	courseGroup.Put("/:id/chapters/:chapterId/lessons/:lessonId", middleware.JWTMiddleware, instructor, validators.CourseID(), validators.ChapterID(), validators.LessonID(), validators.CreateLesson(), controllers.UpdateLesson)
	courseGroup.Delete("/:id/chapters/:chapterId/lessons/:lessonId", middleware.JWTMiddleware, instructor, validators.CourseID(), validators.ChapterID(), validators.LessonID(), controllers.DeleteLesson)

	// Quiz questions
	lessonGroup := app.Group("/lessons")
	lessonGroup.Get("/:lessonId/questions", middleware.JWTMiddleware, validators.LessonID(), controllers.GetLessonQuestions)
	lessonGroup.Post("/:lessonId/questions", middleware.JWTMiddleware, instructor, validators.LessonID(), validators.CreateQuestion(), controllers.CreateQuestion)
	lessonGroup.Put("/:lessonId/questions/:questionId", middleware.JWTMiddleware, instructor, validators.LessonID(), validators.QuestionID(), validators.CreateQuestion(), controllers.UpdateQuestion)
	lessonGroup.Delete("/:lessonId/questions/:questionId", middleware.JWTMiddleware, instructor, validators.LessonID(), validators.QuestionID(), controllers.DeleteQuestion)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	app.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)

	// Progress tracking
	app.Post("/progress", middleware.JWTMiddleware, validators.RecordProgress(), controllers.RecordProgress)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)

	// Export
	courseGroup.Get("/:id/export", middleware.JWTMiddleware, instructor, validators.CourseID(), controllers.ExportCourse)

	// Instructor dashboard
	app.Get("/dashboard/stats", middleware.JWTMiddleware, instructor, controllers.GetDashboardStats)
}
