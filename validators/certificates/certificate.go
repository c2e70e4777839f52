package certificateValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CertificateIDParam validates the :id route parameter
func CertificateIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		certificateID, err := strconv.Atoi(c.Params("id"))
		if err != nil || certificateID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate id!", nil)
		}

		c.Locals("certificateID", certificateID)
		return c.Next()
	}
}
