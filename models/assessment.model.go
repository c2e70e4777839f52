package models

import (
	"time"

	"gorm.io/gorm"
)

// AssessmentResult records one assessment attempt. Rows are never mutated
// after creation; repeat attempts accumulate and history readers pick the
// latest per learning module.
type AssessmentResult struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"index;not null"`
	LearningID      uint      `json:"learning_id" gorm:"index;not null"`
	CompletedDate   time.Time `json:"completed_date"`
	TotalQuestions  int       `json:"total_questions"`
	CorrectAnswers  int       `json:"correct_answers"`
	Score           float64   `json:"score"`
	Passed          bool      `json:"passed" gorm:"default:false"`
	DifficultyLevel string    `json:"difficulty_level" gorm:"default:'Beginner'"`
}

// AssessmentAnswerDetail stores a per-question snapshot of one attempt.
// Question text and both answer texts are denormalized so the review page
// stays stable even if the question bank changes later.
type AssessmentAnswerDetail struct {
	gorm.Model
	AssessmentResultID uint   `json:"assessment_result_id" gorm:"index;not null"`
	QuestionID         uint   `json:"question_id"`
	QuestionText       string `json:"question_text" gorm:"type:text"`
	UserAnswer         string `json:"user_answer"`
	CorrectAnswer      string `json:"correct_answer"`
	IsCorrect          bool   `json:"is_correct" gorm:"default:false"`
}
