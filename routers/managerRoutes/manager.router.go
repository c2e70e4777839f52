package managerRoutes

import (
	controllers "lms/controllers/manager"
	"lms/middleware"
	validators "lms/validators/manager"

	"github.com/gofiber/fiber/v2"
)

// SetupManagerRoutes sets up team management routes
func SetupManagerRoutes(app *fiber.App) {
	managerGroup := app.Group("/manager", middleware.JWTMiddleware, middleware.RequireRole("Manager"))

	managerGroup.Get("/team", controllers.GetTeam)
	managerGroup.Get("/team/stats", controllers.GetTeamStats)
	managerGroup.Get("/team/:id", validators.MemberIDParam(), controllers.GetTeamMember)
	managerGroup.Post("/assign", validators.AssignLearning(), controllers.AssignLearning)
}
