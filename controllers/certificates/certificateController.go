package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyCertificates lists the current user's certificates, newest first
func GetMyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var certificates []models.Certificate
	if err := database.Database.Db.Where("user_id = ?", userID).Order("issued_date desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	log.Printf("Retrieved %d certificates for user %d", len(certificates), userID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}

// GetCertificate returns one certificate owned by the current user
func GetCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	certificateID := c.Locals("certificateID").(int)

	var certificate models.Certificate
	if err := database.Database.Db.Where("id = ? AND user_id = ?", certificateID, userID).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var result models.AssessmentResult
	database.Database.Db.Where("id = ?", certificate.AssessmentResultID).First(&result)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"certificate":       certificate,
		"assessment_result": result,
	})
}

// VerifyCertificate resolves a certificate by its public verification code.
// No authentication, this backs the QR link printed on certificates.
func VerifyCertificate(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification code is required!", nil)
	}

	var certificate models.Certificate
	if err := database.Database.Db.Where("verification_code = ?", code).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid!", fiber.Map{
		"certificate_number": certificate.CertificateNumber,
		"employee_name":      certificate.EmployeeName,
		"learning_title":     certificate.LearningTitle,
		"difficulty_level":   certificate.DifficultyLevel,
		"score":              certificate.Score,
		"issued_date":        certificate.IssuedDate,
	})
}
