package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// AssessmentHistory lists the latest attempt per assigned learning module,
// most recently completed first.
func AssessmentHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Only modules currently assigned to the user show up in history
	var assignments []models.LearningAssignment
	if err := database.Database.Db.Where("user_id = ?", userID).Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessment history!", nil)
	}

	assignedLearningIDs := make([]uint, len(assignments))
	for i, a := range assignments {
		assignedLearningIDs[i] = a.LearningID
	}

	var allResults []models.AssessmentResult
	if len(assignedLearningIDs) > 0 {
		if err := database.Database.Db.
			Where("user_id = ? AND learning_id IN ?", userID, assignedLearningIDs).
			Order("completed_date desc").
			Find(&allResults).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessment history!", nil)
		}
	}

	// Keep only the latest attempt per module; first occurrence wins
	// because the results are already sorted newest first
	type ResultWithLearning struct {
		models.AssessmentResult
		LearningTitle string `json:"learning_title"`
	}

	seen := make(map[uint]bool)
	history := make([]ResultWithLearning, 0, len(allResults))
	for _, result := range allResults {
		if seen[result.LearningID] {
			continue
		}
		seen[result.LearningID] = true

		var learning models.Learning
		database.Database.Db.Where("id = ?", result.LearningID).First(&learning)

		history = append(history, ResultWithLearning{
			AssessmentResult: result,
			LearningTitle:    learning.Title,
		})
	}

	log.Printf("Retrieved %d unique assessment results for user %d", len(history), userID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment history fetched successfully!", fiber.Map{
		"results": history,
		"total":   len(history),
	})
}

// ReviewAssessment returns one attempt with its full answer breakdown and a
// pointer to the certificate issued against it, if any. Results belonging to
// another user read as not found.
func ReviewAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	resultID := c.Locals("resultID").(int)

	var result models.AssessmentResult
	if err := database.Database.Db.Where("id = ? AND user_id = ?", resultID, userID).First(&result).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment result not found!", nil)
	}

	var learning models.Learning
	database.Database.Db.Where("id = ?", result.LearningID).First(&learning)

	var details []models.AssessmentAnswerDetail
	if err := database.Database.Db.Where("assessment_result_id = ?", result.ID).Order("id asc").Find(&details).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessment review!", nil)
	}

	questionResults := make([]QuestionResult, len(details))
	for i, d := range details {
		questionResults[i] = QuestionResult{
			QuestionText:  d.QuestionText,
			YourAnswer:    d.UserAnswer,
			CorrectAnswer: d.CorrectAnswer,
			IsCorrect:     d.IsCorrect,
		}
	}

	var certificate models.Certificate
	hasCertificate := database.Database.Db.
		Where("assessment_result_id = ? AND user_id = ?", result.ID, userID).
		First(&certificate).Error == nil

	data := fiber.Map{
		"learning_title":   learning.Title,
		"total_questions":  result.TotalQuestions,
		"correct_answers":  result.CorrectAnswers,
		"score":            result.Score,
		"passed":           result.Passed,
		"completed_date":   result.CompletedDate,
		"question_results": questionResults,
		"has_certificate":  hasCertificate,
	}
	if hasCertificate {
		data["certificate_id"] = certificate.ID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment review fetched successfully!", data)
}
