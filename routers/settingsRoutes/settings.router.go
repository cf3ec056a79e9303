package settingsRoutes

import (
	settingsControllers "lms/controllers/settings"
	"lms/middleware"
	"lms/models"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupSettingsRoutes sets up the system settings key/value endpoints
func SetupSettingsRoutes(app *fiber.App) {
	settingsGroup := app.Group("/settings")

	settingsGroup.Get("/:key", middleware.JWTMiddleware, validators.SettingKey(), settingsControllers.GetSetting)
	settingsGroup.Put("/:key", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.SettingKey(), validators.UpdateSetting(), settingsControllers.UpdateSetting)
}
