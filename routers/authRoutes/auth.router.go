package authRoutes

import (
	authController "lms/controllers/auth"
	"lms/middleware"
	validators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up authentication and profile routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")
	authGroup.Post("/login", validators.Login(), authController.Login)

	userGroup := app.Group("/user")
	userGroup.Get("/profile", middleware.JWTMiddleware, authController.MyProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, validators.EditProfile(), authController.EditProfile)
}
