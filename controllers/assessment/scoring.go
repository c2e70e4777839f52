package controllers

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"lms/models"
)

// PassingScore is the inclusive pass mark for an assessment attempt.
const PassingScore = 70.0

// MaxAssessmentQuestions caps how many questions one attempt presents.
const MaxAssessmentQuestions = 10

// QuestionResult is the per-question outcome returned to the caller after
// grading, mirroring what the review page shows.
type QuestionResult struct {
	QuestionText  string `json:"question_text"`
	YourAnswer    string `json:"your_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// GradedSubmission holds the computed outcome of one assessment submission
// before anything is persisted.
type GradedSubmission struct {
	TotalQuestions  int
	CorrectAnswers  int
	Score           float64
	Passed          bool
	DifficultyLevel string
	Results         []QuestionResult
	Details         []models.AssessmentAnswerDetail
}

// resolveAnswerText maps an option letter to the question's option text.
// Anything that is not A-D (including a missing answer) reads "Not Answered".
func resolveAnswerText(q models.Question, letter string) string {
	switch strings.ToUpper(letter) {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	default:
		return "Not Answered"
	}
}

// gradeSubmission grades the submitted answers against the loaded questions.
// Only questions that were actually loaded count toward the total; a missing
// answer is treated as an empty string and scored incorrect.
func gradeSubmission(questions []models.Question, answers map[uint]string) GradedSubmission {
	graded := GradedSubmission{
		TotalQuestions:  len(questions),
		DifficultyLevel: "Beginner",
		Results:         make([]QuestionResult, 0, len(questions)),
		Details:         make([]models.AssessmentAnswerDetail, 0, len(questions)),
	}

	if len(questions) > 0 {
		graded.DifficultyLevel = questions[0].DifficultyLevel
	}

	for _, question := range questions {
		userAnswer := answers[question.ID]
		isCorrect := strings.EqualFold(userAnswer, question.CorrectAnswer)
		if isCorrect {
			graded.CorrectAnswers++
		}

		yourText := resolveAnswerText(question, userAnswer)
		correctText := resolveAnswerText(question, question.CorrectAnswer)

		graded.Results = append(graded.Results, QuestionResult{
			QuestionText:  question.QuestionText,
			YourAnswer:    yourText,
			CorrectAnswer: correctText,
			IsCorrect:     isCorrect,
		})

		graded.Details = append(graded.Details, models.AssessmentAnswerDetail{
			QuestionID:    question.ID,
			QuestionText:  question.QuestionText,
			UserAnswer:    yourText,
			CorrectAnswer: correctText,
			IsCorrect:     isCorrect,
		})
	}

	if graded.TotalQuestions > 0 {
		graded.Score = float64(graded.CorrectAnswers) / float64(graded.TotalQuestions) * 100
	}
	graded.Passed = graded.Score >= PassingScore

	return graded
}

// pickRandomQuestions returns up to max questions in uniformly shuffled
// order. The RNG is request-scoped, no shared seed state.
func pickRandomQuestions(questions []models.Question, max int) []models.Question {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	shuffled := make([]models.Question, len(questions))
	copy(shuffled, questions)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > max {
		shuffled = shuffled[:max]
	}
	return shuffled
}

// formatScore renders a score with one decimal place for certificate text.
func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

// generateCertificateNumber builds the printed certificate number.
// Format: CERT-YYYYMMDD-NNNN-NNNN (user id, learning id, zero padded).
// Deterministic per (day, user, learning); repeat passes on the same day
// produce the same number, which printed certificates rely on.
func generateCertificateNumber(issued time.Time, userID, learningID uint) string {
	return fmt.Sprintf("CERT-%s-%04d-%04d", issued.Format("20060102"), userID, learningID)
}
