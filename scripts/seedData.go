package main

import (
	"fmt"
	"log"

	"lms/config"
	"lms/database"
	"lms/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds demo users, the learning catalog and question banks.
// Run once against an empty database: go run scripts/seedData.go
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount > 0 {
		log.Println("Database already seeded, nothing to do.")
		return
	}

	hash := func(password string) string {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(hashed)
	}

	hr := models.User{Name: "Helen Carter", Email: "hr@example.com", Password: hash("Hr@12345"), Role: "HR"}
	if err := db.Create(&hr).Error; err != nil {
		log.Fatalf("Failed to seed HR user: %v", err)
	}

	manager := models.User{Name: "Mark Reynolds", Email: "manager@example.com", Password: hash("Manager@123"), Role: "Manager"}
	if err := db.Create(&manager).Error; err != nil {
		log.Fatalf("Failed to seed manager: %v", err)
	}

	employees := []models.User{
		{Name: "Alice Nguyen", Email: "alice@example.com", Password: hash("Employee@1"), Role: "Employee", ManagerID: &manager.ID},
		{Name: "Bob Sharma", Email: "bob@example.com", Password: hash("Employee@1"), Role: "Employee", ManagerID: &manager.ID},
		{Name: "Carla Diaz", Email: "carla@example.com", Password: hash("Employee@1"), Role: "Employee", ManagerID: &manager.ID},
	}
	if err := db.Create(&employees).Error; err != nil {
		log.Fatalf("Failed to seed employees: %v", err)
	}

	learnings := []models.Learning{
		{Title: "Workplace Safety Fundamentals", Description: "Core safety practices for every employee.", Category: "Compliance", DurationInHours: 2},
		{Title: "Data Privacy Essentials", Description: "Handling personal data responsibly.", Category: "Compliance", DurationInHours: 3},
		{Title: "Effective Communication", Description: "Clear written and verbal communication at work.", Category: "Soft Skills", DurationInHours: 4},
		{Title: "Introduction to Project Management", Description: "Planning, tracking and delivering projects.", Category: "Professional", DurationInHours: 6},
	}
	if err := db.Create(&learnings).Error; err != nil {
		log.Fatalf("Failed to seed learnings: %v", err)
	}

	// Each module gets a 12-question bank so assessments can draw a random 10
	letters := []string{"A", "B", "C", "D"}
	for _, learning := range learnings {
		questions := make([]models.Question, 0, 12)
		for i := 1; i <= 12; i++ {
			questions = append(questions, models.Question{
				LearningID:      learning.ID,
				QuestionText:    fmt.Sprintf("%s: question %d", learning.Title, i),
				OptionA:         fmt.Sprintf("Answer option A for question %d", i),
				OptionB:         fmt.Sprintf("Answer option B for question %d", i),
				OptionC:         fmt.Sprintf("Answer option C for question %d", i),
				OptionD:         fmt.Sprintf("Answer option D for question %d", i),
				CorrectAnswer:   letters[i%len(letters)],
				DifficultyLevel: "Beginner",
			})
		}
		if err := db.Create(&questions).Error; err != nil {
			log.Fatalf("Failed to seed questions for learning %d: %v", learning.ID, err)
		}
	}

	log.Printf("Seeded %d users, %d learnings with question banks.", 2+len(employees), len(learnings))
}
