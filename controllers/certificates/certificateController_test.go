package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/certificates"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

func setupCertificateTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:certificate_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/certificate/list", middleware.JWTMiddleware, GetMyCertificates)
	app.Get("/certificate/verify/:code", VerifyCertificate)
	app.Get("/certificate/:id", middleware.JWTMiddleware, validators.CertificateIDParam(), GetCertificate)

	return app
}

func seedCertificate(t *testing.T, userID uint) models.Certificate {
	t.Helper()
	certificate := models.Certificate{
		UserID:             userID,
		LearningID:         1,
		AssessmentResultID: 1,
		CertificateNumber:  "CERT-20260831-0001-0001",
		VerificationCode:   uuid.NewString(),
		IssuedDate:         time.Now(),
		Score:              90,
		Title:              "Workplace Safety - Beginner Level",
		DifficultyLevel:    "Beginner",
		LearningTitle:      "Workplace Safety",
		EmployeeName:       "Alice Nguyen",
		Description:        "Successfully completed Workplace Safety with a score of 90.0%",
	}
	require.NoError(t, database.Database.Db.Create(&certificate).Error)
	return certificate
}

func getJSON(t *testing.T, app *fiber.App, target, auth string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func bearerFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGetMyCertificatesListsOwnOnly(t *testing.T) {
	app := setupCertificateTest(t)

	owner := models.User{Name: "Alice", Email: "alice@example.com", Password: "x", Role: "Employee"}
	other := models.User{Name: "Bob", Email: "bob@example.com", Password: "x", Role: "Employee"}
	require.NoError(t, database.Database.Db.Create(&owner).Error)
	require.NoError(t, database.Database.Db.Create(&other).Error)

	seedCertificate(t, owner.ID)
	seedCertificate(t, other.ID)

	code, body := getJSON(t, app, "/certificate/list", bearerFor(t, owner))

	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["certificates"].([]interface{}), 1)
}

func TestGetCertificateOwnershipEnforced(t *testing.T) {
	app := setupCertificateTest(t)

	owner := models.User{Name: "Alice", Email: "alice@example.com", Password: "x", Role: "Employee"}
	intruder := models.User{Name: "Bob", Email: "bob@example.com", Password: "x", Role: "Employee"}
	require.NoError(t, database.Database.Db.Create(&owner).Error)
	require.NoError(t, database.Database.Db.Create(&intruder).Error)

	certificate := seedCertificate(t, owner.ID)

	code, _ := getJSON(t, app, fmt.Sprintf("/certificate/%d", certificate.ID), bearerFor(t, owner))
	assert.Equal(t, http.StatusOK, code)

	code, _ = getJSON(t, app, fmt.Sprintf("/certificate/%d", certificate.ID), bearerFor(t, intruder))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestVerifyCertificatePublic(t *testing.T) {
	app := setupCertificateTest(t)

	owner := models.User{Name: "Alice", Email: "alice@example.com", Password: "x", Role: "Employee"}
	require.NoError(t, database.Database.Db.Create(&owner).Error)
	certificate := seedCertificate(t, owner.ID)

	code, body := getJSON(t, app, "/certificate/verify/"+certificate.VerificationCode, "")

	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, certificate.CertificateNumber, data["certificate_number"])
	assert.Equal(t, "Alice Nguyen", data["employee_name"])

	code, _ = getJSON(t, app, "/certificate/verify/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, code)
}
