package hrValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name      string `json:"name" validate:"required,min=2"`
			Email     string `json:"email" validate:"required,email"`
			Role      string `json:"role" validate:"required,oneof=Employee Manager HR"`
			ManagerID *uint  `json:"manager_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = fieldMessage(fieldErr)
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name      string `json:"name" validate:"required,min=2"`
			Role      string `json:"role" validate:"required,oneof=Employee Manager HR"`
			ManagerID *uint  `json:"manager_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = fieldMessage(fieldErr)
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}

// UserIDParam validates the :id route parameter
func UserIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, err := strconv.Atoi(c.Params("id"))
		if err != nil || targetID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}

		c.Locals("targetUserID", targetID)
		return c.Next()
	}
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required!"
	case "email":
		return "Invalid email address!"
	case "min":
		return fieldErr.Field() + " must be at least " + fieldErr.Param() + " characters long!"
	case "oneof":
		return fieldErr.Field() + " must be one of: " + fieldErr.Param()
	default:
		return fieldErr.Field() + " is invalid!"
	}
}
