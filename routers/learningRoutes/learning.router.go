package learningRoutes

import (
	controllers "lms/controllers/learning"
	"lms/middleware"
	validators "lms/validators/learning"

	"github.com/gofiber/fiber/v2"
)

// SetupLearningRoutes sets up catalog and assignment routes
func SetupLearningRoutes(app *fiber.App) {
	learningGroup := app.Group("/learning")

	learningGroup.Get("/list", middleware.JWTMiddleware, validators.LearningList(), controllers.GetLearningList)
	learningGroup.Get("/assignments", middleware.JWTMiddleware, controllers.GetMyAssignments)
	learningGroup.Get("/:id/training", middleware.JWTMiddleware, validators.LearningIDParam(), controllers.GetTraining)
	learningGroup.Post("/:id/start", middleware.JWTMiddleware, validators.LearningIDParam(), controllers.StartLearning)
}
