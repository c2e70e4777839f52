package models

import "gorm.io/gorm"

// Learning represents a learning module in the catalog
type Learning struct {
	gorm.Model
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	DurationInHours int    `json:"duration_in_hours" gorm:"default:0"`
}

// Question represents a multiple choice question belonging to a learning module
type Question struct {
	gorm.Model
	LearningID      uint   `json:"learning_id" gorm:"index;not null"`
	QuestionText    string `json:"question_text" gorm:"type:text"`
	OptionA         string `json:"option_a"`
	OptionB         string `json:"option_b"`
	OptionC         string `json:"option_c"`
	OptionD         string `json:"option_d"`
	CorrectAnswer   string `json:"-"` // A, B, C or D; never exposed to assessment takers
	DifficultyLevel string `json:"difficulty_level" gorm:"default:'Beginner'"`
}
