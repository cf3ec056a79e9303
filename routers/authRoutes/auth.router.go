package authRoutes

import (
	authControllers "lms/controllers/auth"
	"lms/middleware"
	"lms/models"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", validators.Register(), authControllers.Register)
	authGroup.Post("/register-instructor", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.Register(), authControllers.RegisterInstructor)
	authGroup.Post("/login", validators.Login(), authControllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authControllers.Me)
	authGroup.Put("/change-password", middleware.JWTMiddleware, validators.ChangePassword(), authControllers.ChangePassword)
}
