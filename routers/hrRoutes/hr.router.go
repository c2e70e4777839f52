package hrRoutes

import (
	controllers "lms/controllers/hr"
	"lms/middleware"
	validators "lms/validators/hr"

	"github.com/gofiber/fiber/v2"
)

// SetupHRRoutes sets up HR dashboard and user management routes
func SetupHRRoutes(app *fiber.App) {
	hrGroup := app.Group("/hr", middleware.JWTMiddleware, middleware.RequireRole("HR"))

	hrGroup.Get("/dashboard", controllers.GetDashboard)
	hrGroup.Get("/users", controllers.GetUsers)
	hrGroup.Post("/users", validators.CreateUser(), controllers.CreateUser)
	hrGroup.Put("/users/:id", validators.UserIDParam(), validators.UpdateUser(), controllers.UpdateUser)
	hrGroup.Delete("/users/:id", validators.UserIDParam(), controllers.DeleteUser)
	hrGroup.Post("/users/:id/reset-password", validators.UserIDParam(), controllers.ResetPassword)
}
