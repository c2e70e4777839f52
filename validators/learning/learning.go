package learningValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func LearningList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// LearningIDParam validates the :id route parameter
func LearningIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		learningID, err := strconv.Atoi(c.Params("id"))
		if err != nil || learningID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid learning id!", nil)
		}

		c.Locals("learningID", learningID)
		return c.Next()
	}
}
