package managerValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func AssignLearning() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MemberID   uint `json:"member_id"`
			LearningID uint `json:"learning_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.MemberID == 0 {
			errors["member_id"] = "Member id is required!"
		}

		if reqData.LearningID == 0 {
			errors["learning_id"] = "Learning id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssign", reqData)
		return c.Next()
	}
}

// MemberIDParam validates the :id route parameter
func MemberIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, err := strconv.Atoi(c.Params("id"))
		if err != nil || memberID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
		}

		c.Locals("memberID", memberID)
		return c.Next()
	}
}
