package controllers

import (
	"log"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetUsers lists all users with their manager names
func GetUsers(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var users []models.User
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	type UserWithManager struct {
		models.User
		ManagerName string `json:"manager_name"`
	}

	result := make([]UserWithManager, len(users))
	for i, u := range users {
		u.Password = ""
		result[i] = UserWithManager{User: u}
		if u.ManagerID != nil {
			var manager models.User
			if err := database.Database.Db.Where("id = ?", *u.ManagerID).First(&manager).Error; err == nil {
				result[i].ManagerName = manager.DisplayName()
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": result,
		"total": len(result),
	})
}

// CreateUser creates a user with a temporary password and pushes the record
// to the external directory
func CreateUser(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUser").(*struct {
		Name      string `json:"name" validate:"required,min=2"`
		Email     string `json:"email" validate:"required,email"`
		Role      string `json:"role" validate:"required,oneof=Employee Manager HR"`
		ManagerID *uint  `json:"manager_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	// Check if email already exists
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	if reqData.ManagerID != nil {
		var manager models.User
		if err := database.Database.Db.
			Where("id = ? AND role = ? AND is_deleted = ?", *reqData.ManagerID, "Manager", false).
			First(&manager).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Manager not found!", nil)
		}
	}

	tempPassword := utils.GenerateTempPassword()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	newUser := models.User{
		Name:      reqData.Name,
		Email:     reqData.Email,
		Password:  string(hashedPassword),
		Role:      reqData.Role,
		ManagerID: reqData.ManagerID,
	}

	if err := database.Database.Db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	go utils.SendWelcomeEmail(newUser.Email, newUser.DisplayName(), tempPassword)
	go utils.SyncUserToDirectory(newUser, "created")

	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully!", newUser)
}

// UpdateUser updates name, role and manager of a user
func UpdateUser(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedUserUpdate").(*struct {
		Name      string `json:"name" validate:"required,min=2"`
		Role      string `json:"role" validate:"required,oneof=Employee Manager HR"`
		ManagerID *uint  `json:"manager_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	target.Name = reqData.Name
	target.Role = reqData.Role
	target.ManagerID = reqData.ManagerID

	if err := database.Database.Db.Save(&target).Error; err != nil {
		log.Printf("Error updating user %d: %v", targetID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	go utils.SyncUserToDirectory(target, "updated")

	target.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", target)
}

// DeleteUser soft deletes a user
func DeleteUser(c *fiber.Ctx) error {
	hrUser, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	if uint(targetID) == hrUser.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	target.IsDeleted = true
	if err := database.Database.Db.Save(&target).Error; err != nil {
		log.Printf("Error deleting user %d: %v", targetID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	go utils.SyncUserToDirectory(target, "deleted")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

// ResetPassword issues a new temporary password for a user
func ResetPassword(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	tempPassword := utils.GenerateTempPassword()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	target.Password = string(hashedPassword)
	if err := database.Database.Db.Save(&target).Error; err != nil {
		log.Printf("Error resetting password for user %d: %v", targetID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	go utils.SendWelcomeEmail(target.Email, target.DisplayName(), tempPassword)

	log.Printf("Password reset for user %d", targetID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully!", nil)
}
