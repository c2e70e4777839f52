package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued for every passing assessment attempt and is
// immutable once created. LearningTitle and EmployeeName are snapshots.
// CertificateNumber is deterministic per (day, user, learning) and carries
// no unique constraint: passing the same module twice on one day produces
// two rows with the same number, matching the printed-certificate contract.
type Certificate struct {
	gorm.Model
	UserID             uint      `json:"user_id" gorm:"index;not null"`
	LearningID         uint      `json:"learning_id" gorm:"index;not null"`
	AssessmentResultID uint      `json:"assessment_result_id" gorm:"index;not null"`
	CertificateNumber  string    `json:"certificate_number"`
	VerificationCode   string    `json:"verification_code" gorm:"index"`
	IssuedDate         time.Time `json:"issued_date"`
	Score              float64   `json:"score"`
	Title              string    `json:"title"`
	DifficultyLevel    string    `json:"difficulty_level"`
	LearningTitle      string    `json:"learning_title"`
	EmployeeName       string    `json:"employee_name"`
	Description        string    `json:"description"`
}
