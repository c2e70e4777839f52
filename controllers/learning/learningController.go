package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// GetLearningList returns the learning catalog, paginated
func GetLearningList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	var total int64
	database.Database.Db.Model(&models.Learning{}).Count(&total)

	var learnings []models.Learning
	if err := database.Database.Db.Offset(offset).Limit(limit).Order("title asc").Find(&learnings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch learnings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learnings fetched successfully!", fiber.Map{
		"learnings": learnings,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetMyAssignments lists the user's assignments with learning details and
// the latest assessment attempt for each
func GetMyAssignments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var assignments []models.LearningAssignment
	if err := database.Database.Db.Where("user_id = ?", userID).Order("assigned_date desc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	type AssignmentWithLearning struct {
		models.LearningAssignment
		LearningTitle    string   `json:"learning_title"`
		LearningCategory string   `json:"learning_category"`
		DurationInHours  int      `json:"duration_in_hours"`
		LatestScore      *float64 `json:"latest_score"`
		LatestPassed     *bool    `json:"latest_passed"`
	}

	result := make([]AssignmentWithLearning, len(assignments))
	for i, a := range assignments {
		var learning models.Learning
		database.Database.Db.Where("id = ?", a.LearningID).First(&learning)

		result[i] = AssignmentWithLearning{
			LearningAssignment: a,
			LearningTitle:      learning.Title,
			LearningCategory:   learning.Category,
			DurationInHours:    learning.DurationInHours,
		}

		var latest models.AssessmentResult
		if err := database.Database.Db.
			Where("user_id = ? AND learning_id = ?", userID, a.LearningID).
			Order("completed_date desc").
			First(&latest).Error; err == nil {
			result[i].LatestScore = &latest.Score
			result[i].LatestPassed = &latest.Passed
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": result,
		"total":       len(result),
	})
}

// GetTraining returns the training page data for an assigned module,
// including whether the assessment was already completed or passed
func GetTraining(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	learningID := c.Locals("learningID").(int)

	var assignment models.LearningAssignment
	if err := database.Database.Db.Where("user_id = ? AND learning_id = ?", userID, learningID).First(&assignment).Error; err != nil {
		log.Printf("Learning assignment not found for user %d, learning %d", userID, learningID)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learning assignment not found!", nil)
	}

	var learning models.Learning
	if err := database.Database.Db.Where("id = ?", learningID).First(&learning).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learning not found!", nil)
	}

	var existingResult models.AssessmentResult
	err := database.Database.Db.
		Where("user_id = ? AND learning_id = ?", userID, learningID).
		Order("completed_date desc").
		First(&existingResult).Error
	assessmentCompleted := err == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training fetched successfully!", fiber.Map{
		"learning":             learning,
		"assignment":           assignment,
		"assessment_completed": assessmentCompleted,
		"assessment_passed":    assessmentCompleted && existingResult.Passed,
	})
}

// StartLearning marks a fresh assignment as in progress. Completed
// assignments are left untouched.
func StartLearning(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	learningID := c.Locals("learningID").(int)

	var assignment models.LearningAssignment
	if err := database.Database.Db.Where("user_id = ? AND learning_id = ?", userID, learningID).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learning assignment not found!", nil)
	}

	if assignment.Status == "NotStarted" {
		assignment.Status = "InProgress"
		if assignment.ProgressPercentage < 10 {
			assignment.ProgressPercentage = 10
		}
		if err := database.Database.Db.Save(&assignment).Error; err != nil {
			log.Printf("Error starting assignment for user %d, learning %d: %v", userID, learningID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start learning!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning started!", assignment)
}
