package controllers

import (
	"bytes"
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
	validators "lms/validators/assessment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// setupAssessmentTest wires a fresh in-memory database and an app with the
// same middleware chains the production router registers.
func setupAssessmentTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:assessment_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/assessment/history", middleware.JWTMiddleware, AssessmentHistory)
	app.Get("/assessment/review/:id", middleware.JWTMiddleware, validators.ReviewAssessment(), ReviewAssessment)
	app.Get("/assessment/:id/take", middleware.JWTMiddleware, validators.TakeAssessment(), TakeAssessment)
	app.Post("/assessment/submit", middleware.JWTMiddleware, validators.SubmitAssessment(), SubmitAssessment)

	return app
}

func createTestUser(t *testing.T, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "x", Role: "Employee"}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func createTestLearning(t *testing.T, title string) models.Learning {
	t.Helper()
	learning := models.Learning{Title: title, Description: "desc", Category: "Compliance", DurationInHours: 2}
	require.NoError(t, database.Database.Db.Create(&learning).Error)
	return learning
}

func createTestAssignment(t *testing.T, userID, learningID uint) models.LearningAssignment {
	t.Helper()
	assignment := models.LearningAssignment{
		UserID:       userID,
		LearningID:   learningID,
		AssignedDate: time.Now(),
		DueDate:      time.Now().AddDate(0, 0, 30),
		Status:       "NotStarted",
	}
	require.NoError(t, database.Database.Db.Create(&assignment).Error)
	return assignment
}

func createTestQuestions(t *testing.T, learningID uint, count int, correct string) []models.Question {
	t.Helper()
	questions := make([]models.Question, count)
	for i := 0; i < count; i++ {
		questions[i] = models.Question{
			LearningID:      learningID,
			QuestionText:    fmt.Sprintf("question %d", i+1),
			OptionA:         "option A",
			OptionB:         "option B",
			OptionC:         "option C",
			OptionD:         "option D",
			CorrectAnswer:   correct,
			DifficultyLevel: "Beginner",
		}
	}
	require.NoError(t, database.Database.Db.Create(&questions).Error)
	return questions
}

func authHeader(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, target, auth string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func submitBody(learningID uint, questions []models.Question, correctCount int, correct, wrong string) map[string]interface{} {
	answers := make(map[string]string, len(questions))
	for i, q := range questions {
		letter := wrong
		if i < correctCount {
			letter = correct
		}
		answers[fmt.Sprintf("%d", q.ID)] = letter
	}
	return map[string]interface{}{"learning_id": learningID, "answers": answers}
}

func TestTakeAssessmentReturnsRandomSubset(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Alice", "alice@example.com")
	learning := createTestLearning(t, "Workplace Safety")
	createTestAssignment(t, user.ID, learning.ID)
	createTestQuestions(t, learning.ID, 12, "B")

	code, env := doRequest(t, app, "GET", fmt.Sprintf("/assessment/%d/take", learning.ID), authHeader(t, user), nil)

	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Status)

	questions := env.Data["questions"].([]interface{})
	assert.Len(t, questions, 10)

	// The correct answer must never leak to the taker
	for _, raw := range questions {
		question := raw.(map[string]interface{})
		_, leaked := question["CorrectAnswer"]
		assert.False(t, leaked)
		_, leaked = question["correct_answer"]
		assert.False(t, leaked)
	}
}

func TestTakeAssessmentSmallBankReturnsAll(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Alice", "alice@example.com")
	learning := createTestLearning(t, "Data Privacy")
	createTestAssignment(t, user.ID, learning.ID)
	createTestQuestions(t, learning.ID, 4, "A")

	code, env := doRequest(t, app, "GET", fmt.Sprintf("/assessment/%d/take", learning.ID), authHeader(t, user), nil)

	require.Equal(t, http.StatusOK, code)
	assert.Len(t, env.Data["questions"].([]interface{}), 4)
}

func TestTakeAssessmentNoQuestions(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Alice", "alice@example.com")
	learning := createTestLearning(t, "Empty Module")
	createTestAssignment(t, user.ID, learning.ID)

	code, env := doRequest(t, app, "GET", fmt.Sprintf("/assessment/%d/take", learning.ID), authHeader(t, user), nil)

	require.Equal(t, http.StatusOK, code)
	assert.False(t, env.Status)
	assert.Equal(t, "No questions available for this assessment.", env.Message)
}

func TestTakeAssessmentNotAssigned(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Alice", "alice@example.com")
	learning := createTestLearning(t, "Unassigned Module")
	createTestQuestions(t, learning.ID, 5, "A")

	code, _ := doRequest(t, app, "GET", fmt.Sprintf("/assessment/%d/take", learning.ID), authHeader(t, user), nil)

	assert.Equal(t, http.StatusNotFound, code)
}

func TestSubmitAssessmentPassIssuesCertificate(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Alice", "alice@example.com")
	learning := createTestLearning(t, "Workplace Safety")
	createTestAssignment(t, user.ID, learning.ID)
	questions := createTestQuestions(t, learning.ID, 10, "B")

	code, env := doRequest(t, app, "POST", "/assessment/submit", authHeader(t, user),
		submitBody(learning.ID, questions, 9, "B", "A"))

	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Status)
	assert.InDelta(t, 90.0, env.Data["score"].(float64), 0.001)
	assert.True(t, env.Data["passed"].(bool))
	assert.True(t, env.Data["certificate_issued"].(bool))
	assert.EqualValues(t, 10, env.Data["total_questions"])
	assert.EqualValues(t, 9, env.Data["correct_answers"])

	var certificate models.Certificate
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND learning_id = ?", user.ID, learning.ID).
		First(&certificate).Error)
	assert.Regexp(t, `^CERT-\d{8}-\d{4}-\d{4}$`, certificate.CertificateNumber)
	assert.InDelta(t, 90.0, certificate.Score, 0.001)
	assert.Equal(t, "Workplace Safety - Beginner Level", certificate.Title)
	assert.Equal(t, "Alice", certificate.EmployeeName)
	assert.Equal(t, "Successfully completed Workplace Safety with a score of 90.0%", certificate.Description)
	assert.NotEmpty(t, certificate.VerificationCode)

	var assignment models.LearningAssignment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND learning_id = ?", user.ID, learning.ID).
		First(&assignment).Error)
	assert.Equal(t, "Completed", assignment.Status)
	assert.Equal(t, 100, assignment.ProgressPercentage)
	assert.NotNil(t, assignment.CompletedDate)

	var details []models.AssessmentAnswerDetail
	require.NoError(t, database.Database.Db.
		Where("assessment_result_id = ?", certificate.AssessmentResultID).
		Find(&details).Error)
	assert.Len(t, details, 10)
}

func TestSubmitAssessmentFailNoCertificate(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Bob", "bob@example.com")
	learning := createTestLearning(t, "Data Privacy")
	createTestAssignment(t, user.ID, learning.ID)
	questions := createTestQuestions(t, learning.ID, 10, "C")

	code, env := doRequest(t, app, "POST", "/assessment/submit", authHeader(t, user),
		submitBody(learning.ID, questions, 6, "C", "A"))

	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 60.0, env.Data["score"].(float64), 0.001)
	assert.False(t, env.Data["passed"].(bool))
	assert.False(t, env.Data["certificate_issued"].(bool))

	var certCount int64
	database.Database.Db.Model(&models.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.Zero(t, certCount)

	// A failed attempt is still recorded, the assignment stays untouched
	var resultCount int64
	database.Database.Db.Model(&models.AssessmentResult{}).Where("user_id = ?", user.ID).Count(&resultCount)
	assert.EqualValues(t, 1, resultCount)

	var assignment models.LearningAssignment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND learning_id = ?", user.ID, learning.ID).
		First(&assignment).Error)
	assert.Equal(t, "NotStarted", assignment.Status)
	assert.Nil(t, assignment.CompletedDate)
}

func TestSubmitAssessmentRepassKeepsCompletedDate(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Carla", "carla@example.com")
	learning := createTestLearning(t, "Effective Communication")

	firstCompleted := time.Now().AddDate(0, 0, -7).Truncate(time.Second)
	assignment := createTestAssignment(t, user.ID, learning.ID)
	assignment.Status = "Completed"
	assignment.ProgressPercentage = 100
	assignment.CompletedDate = &firstCompleted
	require.NoError(t, database.Database.Db.Save(&assignment).Error)

	questions := createTestQuestions(t, learning.ID, 10, "D")

	code, env := doRequest(t, app, "POST", "/assessment/submit", authHeader(t, user),
		submitBody(learning.ID, questions, 10, "D", "A"))

	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Data["certificate_issued"].(bool))

	var reloaded models.LearningAssignment
	require.NoError(t, database.Database.Db.First(&reloaded, assignment.ID).Error)
	require.NotNil(t, reloaded.CompletedDate)
	assert.Equal(t, firstCompleted.Unix(), reloaded.CompletedDate.Unix())

	// Certificates accumulate per passing attempt
	var certCount int64
	database.Database.Db.Model(&models.Certificate{}).
		Where("user_id = ? AND learning_id = ?", user.ID, learning.ID).
		Count(&certCount)
	assert.EqualValues(t, 1, certCount)
}

func TestSubmitAssessmentCertificateFailureKeepsResult(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Hana", "hana@example.com")
	learning := createTestLearning(t, "Workplace Safety")
	createTestAssignment(t, user.ID, learning.ID)
	questions := createTestQuestions(t, learning.ID, 10, "B")

	// Break certificate persistence only; the attempt itself must survive
	require.NoError(t, database.Database.Db.Migrator().DropTable(&models.Certificate{}))

	code, env := doRequest(t, app, "POST", "/assessment/submit", authHeader(t, user),
		submitBody(learning.ID, questions, 9, "B", "A"))

	require.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to issue certificate!", env.Message)

	var result models.AssessmentResult
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&result).Error)
	assert.InDelta(t, 90.0, result.Score, 0.001)
	assert.True(t, result.Passed)

	var detailCount int64
	database.Database.Db.Model(&models.AssessmentAnswerDetail{}).
		Where("assessment_result_id = ?", result.ID).
		Count(&detailCount)
	assert.EqualValues(t, 10, detailCount)

	// The assignment update shares the certification transaction and
	// rolls back with it
	var assignment models.LearningAssignment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND learning_id = ?", user.ID, learning.ID).
		First(&assignment).Error)
	assert.Equal(t, "NotStarted", assignment.Status)
	assert.Nil(t, assignment.CompletedDate)
}

func TestSubmitAssessmentUnknownQuestionIDs(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Dan", "dan@example.com")
	learning := createTestLearning(t, "Project Management")
	createTestAssignment(t, user.ID, learning.ID)

	code, env := doRequest(t, app, "POST", "/assessment/submit", authHeader(t, user), map[string]interface{}{
		"learning_id": learning.ID,
		"answers":     map[string]string{"9991": "A", "9992": "B"},
	})

	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, env.Data["total_questions"])
	assert.InDelta(t, 0.0, env.Data["score"].(float64), 0.001)
	assert.False(t, env.Data["passed"].(bool))
	assert.False(t, env.Data["certificate_issued"].(bool))
}

func TestAssessmentHistoryKeepsLatestPerModule(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Eve", "eve@example.com")
	safety := createTestLearning(t, "Workplace Safety")
	privacy := createTestLearning(t, "Data Privacy")
	createTestAssignment(t, user.ID, safety.ID)
	createTestAssignment(t, user.ID, privacy.ID)

	attempts := []models.AssessmentResult{
		{UserID: user.ID, LearningID: safety.ID, CompletedDate: time.Now().AddDate(0, 0, -3), TotalQuestions: 10, CorrectAnswers: 5, Score: 50, Passed: false, DifficultyLevel: "Beginner"},
		{UserID: user.ID, LearningID: safety.ID, CompletedDate: time.Now().AddDate(0, 0, -1), TotalQuestions: 10, CorrectAnswers: 9, Score: 90, Passed: true, DifficultyLevel: "Beginner"},
		{UserID: user.ID, LearningID: privacy.ID, CompletedDate: time.Now().AddDate(0, 0, -2), TotalQuestions: 10, CorrectAnswers: 8, Score: 80, Passed: true, DifficultyLevel: "Beginner"},
	}
	require.NoError(t, database.Database.Db.Create(&attempts).Error)

	code, env := doRequest(t, app, "GET", "/assessment/history", authHeader(t, user), nil)

	require.Equal(t, http.StatusOK, code)
	results := env.Data["results"].([]interface{})
	require.Len(t, results, 2)

	// Most recently completed first, and only the latest attempt per module
	first := results[0].(map[string]interface{})
	second := results[1].(map[string]interface{})
	assert.InDelta(t, 90.0, first["score"].(float64), 0.001)
	assert.Equal(t, "Workplace Safety", first["learning_title"])
	assert.InDelta(t, 80.0, second["score"].(float64), 0.001)
	assert.Equal(t, "Data Privacy", second["learning_title"])
}

func TestAssessmentHistoryIgnoresUnassignedModules(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Frank", "frank@example.com")
	assigned := createTestLearning(t, "Assigned Module")
	unassigned := createTestLearning(t, "Unassigned Module")
	createTestAssignment(t, user.ID, assigned.ID)

	attempts := []models.AssessmentResult{
		{UserID: user.ID, LearningID: assigned.ID, CompletedDate: time.Now(), Score: 75, Passed: true},
		{UserID: user.ID, LearningID: unassigned.ID, CompletedDate: time.Now(), Score: 95, Passed: true},
	}
	require.NoError(t, database.Database.Db.Create(&attempts).Error)

	code, env := doRequest(t, app, "GET", "/assessment/history", authHeader(t, user), nil)

	require.Equal(t, http.StatusOK, code)
	assert.Len(t, env.Data["results"].([]interface{}), 1)
}

func TestReviewAssessmentReturnsDetailsAndCertificate(t *testing.T) {
	app := setupAssessmentTest(t)
	user := createTestUser(t, "Grace", "grace@example.com")
	learning := createTestLearning(t, "Workplace Safety")
	createTestAssignment(t, user.ID, learning.ID)
	questions := createTestQuestions(t, learning.ID, 10, "A")

	_, submitEnv := doRequest(t, app, "POST", "/assessment/submit", authHeader(t, user),
		submitBody(learning.ID, questions, 8, "A", "B"))
	require.True(t, submitEnv.Data["certificate_issued"].(bool))

	var result models.AssessmentResult
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&result).Error)

	code, env := doRequest(t, app, "GET", fmt.Sprintf("/assessment/review/%d", result.ID), authHeader(t, user), nil)

	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 80.0, env.Data["score"].(float64), 0.001)
	assert.True(t, env.Data["has_certificate"].(bool))
	assert.NotNil(t, env.Data["certificate_id"])
	assert.Len(t, env.Data["question_results"].([]interface{}), 10)
}

func TestReviewAssessmentOtherUsersResultNotFound(t *testing.T) {
	app := setupAssessmentTest(t)
	owner := createTestUser(t, "Owner", "owner@example.com")
	intruder := createTestUser(t, "Intruder", "intruder@example.com")
	learning := createTestLearning(t, "Data Privacy")

	result := models.AssessmentResult{UserID: owner.ID, LearningID: learning.ID, CompletedDate: time.Now(), Score: 80, Passed: true}
	require.NoError(t, database.Database.Db.Create(&result).Error)

	code, _ := doRequest(t, app, "GET", fmt.Sprintf("/assessment/review/%d", result.ID), authHeader(t, intruder), nil)

	assert.Equal(t, http.StatusNotFound, code)
}

func TestSubmitAssessmentRequiresAuth(t *testing.T) {
	app := setupAssessmentTest(t)

	code, _ := doRequest(t, app, "POST", "/assessment/submit", "", map[string]interface{}{
		"learning_id": 1,
		"answers":     map[string]string{"1": "A"},
	})

	assert.Equal(t, http.StatusUnauthorized, code)
}
