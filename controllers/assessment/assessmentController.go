package controllers

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TakeAssessment returns a fresh random subset of the module's question bank
// for the user to answer. Every call reshuffles; nothing is reserved.
func TakeAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	learningID := c.Locals("learningID").(int)

	// The module must be assigned to this user
	var assignment models.LearningAssignment
	if err := database.Database.Db.Where("user_id = ? AND learning_id = ?", userID, learningID).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learning assignment not found!", nil)
	}

	var learning models.Learning
	if err := database.Database.Db.Where("id = ?", learningID).First(&learning).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learning not found!", nil)
	}

	var allQuestions []models.Question
	if err := database.Database.Db.Where("learning_id = ?", learningID).Find(&allQuestions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	if len(allQuestions) == 0 {
		log.Printf("No questions available for learning %d", learningID)
		return middleware.JsonResponse(c, fiber.StatusOK, false, "No questions available for this assessment.", nil)
	}

	selected := pickRandomQuestions(allQuestions, MaxAssessmentQuestions)

	log.Printf("Generated %d random questions for user %d, learning '%s'", len(selected), userID, learning.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment questions fetched successfully!", fiber.Map{
		"learning_id":    learning.ID,
		"learning_title": learning.Title,
		"questions":      selected,
	})
}

// SubmitAssessment grades a submission, persists the attempt with its answer
// details and, on a pass, completes the assignment and issues a certificate.
// The attempt commits first; certification runs in its own transaction so a
// certificate failure never discards the graded result.
func SubmitAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		LearningID uint            `json:"learning_id"`
		Answers    map[uint]string `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var learning models.Learning
	if err := database.Database.Db.Where("id = ?", reqData.LearningID).First(&learning).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learning not found!", nil)
	}

	// Grade only the questions that were actually referenced by the
	// submission. Unknown ids simply drop out of the attempt.
	questionIDs := make([]uint, 0, len(reqData.Answers))
	for id := range reqData.Answers {
		questionIDs = append(questionIDs, id)
	}

	var questions []models.Question
	if len(questionIDs) > 0 {
		if err := database.Database.Db.Where("id IN ?", questionIDs).Find(&questions).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
		}
	}

	graded := gradeSubmission(questions, reqData.Answers)
	now := time.Now()

	log.Printf("Assessment completed: user %d, learning %d, score %.1f%%, passed: %t",
		userID, reqData.LearningID, graded.Score, graded.Passed)

	result := models.AssessmentResult{
		UserID:          userID,
		LearningID:      reqData.LearningID,
		CompletedDate:   now,
		TotalQuestions:  graded.TotalQuestions,
		CorrectAnswers:  graded.CorrectAnswers,
		Score:           graded.Score,
		Passed:          graded.Passed,
		DifficultyLevel: graded.DifficultyLevel,
	}

	certificateIssued := false
	var certificate models.Certificate

	tx := database.Database.Db.Begin()

	if err := tx.Create(&result).Error; err != nil {
		tx.Rollback()
		log.Printf("Error saving assessment result for user %d, learning %d: %v", userID, reqData.LearningID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save assessment result!", nil)
	}

	if len(graded.Details) > 0 {
		for i := range graded.Details {
			graded.Details[i].AssessmentResultID = result.ID
		}
		if err := tx.Create(&graded.Details).Error; err != nil {
			tx.Rollback()
			log.Printf("Error saving answer details for user %d, learning %d: %v", userID, reqData.LearningID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save assessment result!", nil)
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing assessment for user %d, learning %d: %v", userID, reqData.LearningID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save assessment result!", nil)
	}

	if graded.Passed {
		certTx := database.Database.Db.Begin()

		// Auto-complete the assignment, keeping the original completion
		// date when the user re-passes an already completed module
		var assignment models.LearningAssignment
		if err := certTx.Where("user_id = ? AND learning_id = ?", userID, reqData.LearningID).First(&assignment).Error; err == nil {
			assignment.Status = "Completed"
			assignment.ProgressPercentage = 100
			if assignment.CompletedDate == nil {
				assignment.CompletedDate = &now
			}
			if err := certTx.Save(&assignment).Error; err != nil {
				certTx.Rollback()
				log.Printf("Error completing assignment for user %d, learning %d: %v", userID, reqData.LearningID, err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
			}
			log.Printf("Assignment auto-completed for user %d, learning %d", userID, reqData.LearningID)
		}

		certificate = models.Certificate{
			UserID:             userID,
			LearningID:         reqData.LearningID,
			AssessmentResultID: result.ID,
			CertificateNumber:  generateCertificateNumber(now, userID, reqData.LearningID),
			VerificationCode:   uuid.NewString(),
			IssuedDate:         now,
			Score:              graded.Score,
			Title:              learning.Title + " - " + graded.DifficultyLevel + " Level",
			DifficultyLevel:    graded.DifficultyLevel,
			LearningTitle:      learning.Title,
			EmployeeName:       user.DisplayName(),
			Description:        certificateDescription(learning.Title, graded.Score),
		}

		if err := certTx.Create(&certificate).Error; err != nil {
			certTx.Rollback()
			log.Printf("Error issuing certificate for user %d, learning %d: %v", userID, reqData.LearningID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
		}

		if err := certTx.Commit().Error; err != nil {
			log.Printf("Error committing certificate for user %d, learning %d: %v", userID, reqData.LearningID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
		}

		certificateIssued = true
		log.Printf("Certificate %s generated for user %d, learning %d", certificate.CertificateNumber, userID, reqData.LearningID)
	}

	if certificateIssued {
		go utils.SendCertificateEmail(user.Email, user.DisplayName(), certificate.LearningTitle, certificate.CertificateNumber, certificate.Score)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment submitted successfully!", fiber.Map{
		"learning_title":     learning.Title,
		"total_questions":    graded.TotalQuestions,
		"correct_answers":    graded.CorrectAnswers,
		"score":              graded.Score,
		"passed":             graded.Passed,
		"completed_date":     result.CompletedDate,
		"question_results":   graded.Results,
		"certificate_issued": certificateIssued,
	})
}

func certificateDescription(learningTitle string, score float64) string {
	return "Successfully completed " + learningTitle + " with a score of " + formatScore(score) + "%"
}
