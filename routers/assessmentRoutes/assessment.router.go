package assessmentRoutes

import (
	controllers "lms/controllers/assessment"
	"lms/middleware"
	validators "lms/validators/assessment"

	"github.com/gofiber/fiber/v2"
)

// SetupAssessmentRoutes sets up assessment taking, submission, history and review
func SetupAssessmentRoutes(app *fiber.App) {
	assessmentGroup := app.Group("/assessment")

	assessmentGroup.Get("/history", middleware.JWTMiddleware, controllers.AssessmentHistory)
	assessmentGroup.Get("/review/:id", middleware.JWTMiddleware, validators.ReviewAssessment(), controllers.ReviewAssessment)
	assessmentGroup.Get("/:id/take", middleware.JWTMiddleware, validators.TakeAssessment(), controllers.TakeAssessment)
	assessmentGroup.Post("/submit", middleware.JWTMiddleware, validators.SubmitAssessment(), controllers.SubmitAssessment)
}
