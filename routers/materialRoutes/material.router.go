package materialRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupMaterialRoutes sets up material upload, download and lesson linking
func SetupMaterialRoutes(app *fiber.App) {
	instructor := middleware.RequireRole(models.RoleInstructor)

	materialGroup := app.Group("/materials")
	materialGroup.Post("/", middleware.JWTMiddleware, instructor, controllers.UploadMaterial)
	materialGroup.Get("/:materialId/download", middleware.JWTMiddleware, validators.MaterialID(), controllers.DownloadMaterial)

	lessonGroup := app.Group("/lessons")
	lessonGroup.Get("/:lessonId/materials", middleware.JWTMiddleware, validators.LessonID(), controllers.GetLessonMaterials)
	lessonGroup.Post("/:lessonId/materials/:materialId", middleware.JWTMiddleware, instructor, validators.LessonID(), validators.MaterialID(), controllers.LinkMaterial)
	lessonGroup.Delete("/:lessonId/materials/:materialId", middleware.JWTMiddleware, instructor, validators.LessonID(), validators.MaterialID(), controllers.UnlinkMaterial)
}
