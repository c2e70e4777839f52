package models

import (
	"time"

	"gorm.io/gorm"
)

// LearningAssignment links a user to a learning module they must complete.
// One assignment per (user, learning) pair, enforced by check-before-insert
// in the assigning controllers, not by a DB constraint.
type LearningAssignment struct {
	gorm.Model
	UserID             uint       `json:"user_id" gorm:"index;not null"`
	LearningID         uint       `json:"learning_id" gorm:"index;not null"`
	AssignedDate       time.Time  `json:"assigned_date"`
	DueDate            time.Time  `json:"due_date"`
	Status             string     `json:"status" gorm:"default:'NotStarted'"` // NotStarted, InProgress, Completed
	ProgressPercentage int        `json:"progress_percentage" gorm:"default:0"`
	CompletedDate      *time.Time `json:"completed_date"`
}
