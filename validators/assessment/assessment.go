package assessmentValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// TakeAssessment validates the :id route parameter
func TakeAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		learningID, err := strconv.Atoi(c.Params("id"))
		if err != nil || learningID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid learning id!", nil)
		}

		c.Locals("learningID", learningID)
		return c.Next()
	}
}

// SubmitAssessment validates the submission body. An empty answers map is
// allowed and grades to a zero score, missing answers are never an error.
func SubmitAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LearningID uint            `json:"learning_id"`
			Answers    map[uint]string `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.LearningID == 0 {
			errors["learning_id"] = "Learning id is required!"
		}

		if reqData.Answers == nil {
			reqData.Answers = map[uint]string{}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

// ReviewAssessment validates the :id route parameter
func ReviewAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		resultID, err := strconv.Atoi(c.Params("id"))
		if err != nil || resultID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid result id!", nil)
		}

		c.Locals("resultID", resultID)
		return c.Next()
	}
}
