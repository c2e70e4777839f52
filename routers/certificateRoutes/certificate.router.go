package certificateRoutes

import (
	controllers "lms/controllers/certificates"
	"lms/middleware"
	validators "lms/validators/certificates"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up certificate listing, detail and public verification
func SetupCertificateRoutes(app *fiber.App) {
	certificateGroup := app.Group("/certificate")

	certificateGroup.Get("/list", middleware.JWTMiddleware, controllers.GetMyCertificates)
	certificateGroup.Get("/verify/:code", controllers.VerifyCertificate)
	certificateGroup.Get("/:id", middleware.JWTMiddleware, validators.CertificateIDParam(), controllers.GetCertificate)
}
