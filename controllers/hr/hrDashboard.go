package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard aggregates company-wide learning metrics for HR
func GetDashboard(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var totalUsers, totalEmployees, totalManagers, totalHR int64
	database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	database.Database.Db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "Employee", false).Count(&totalEmployees)
	database.Database.Db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "Manager", false).Count(&totalManagers)
	database.Database.Db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "HR", false).Count(&totalHR)

	var totalAssignments, completedAssignments, inProgressAssignments, notStartedAssignments int64
	database.Database.Db.Model(&models.LearningAssignment{}).Count(&totalAssignments)
	database.Database.Db.Model(&models.LearningAssignment{}).Where("status = ?", "Completed").Count(&completedAssignments)
	database.Database.Db.Model(&models.LearningAssignment{}).Where("status = ?", "InProgress").Count(&inProgressAssignments)
	database.Database.Db.Model(&models.LearningAssignment{}).Where("status = ?", "NotStarted").Count(&notStartedAssignments)

	completionRate := int64(0)
	if totalAssignments > 0 {
		completionRate = completedAssignments * 100 / totalAssignments
	}

	// Per-category completion stats
	type CategoryStat struct {
		Category       string `json:"category"`
		Total          int64  `json:"total"`
		Completed      int64  `json:"completed"`
		CompletionRate int64  `json:"completion_rate"`
	}

	var learnings []models.Learning
	database.Database.Db.Find(&learnings)

	categoryLearnings := make(map[string][]uint)
	for _, l := range learnings {
		categoryLearnings[l.Category] = append(categoryLearnings[l.Category], l.ID)
	}

	categoryStats := make([]CategoryStat, 0, len(categoryLearnings))
	for category, learningIDs := range categoryLearnings {
		stat := CategoryStat{Category: category}
		database.Database.Db.Model(&models.LearningAssignment{}).
			Where("learning_id IN ?", learningIDs).Count(&stat.Total)
		database.Database.Db.Model(&models.LearningAssignment{}).
			Where("learning_id IN ? AND status = ?", learningIDs, "Completed").Count(&stat.Completed)
		if stat.Total > 0 {
			stat.CompletionRate = stat.Completed * 100 / stat.Total
		}
		categoryStats = append(categoryStats, stat)
	}

	// Recent assignments for the dashboard table
	var recentAssignments []models.LearningAssignment
	database.Database.Db.Order("assigned_date desc").Limit(50).Find(&recentAssignments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_users":             totalUsers,
		"total_employees":         totalEmployees,
		"total_managers":          totalManagers,
		"total_hr":                totalHR,
		"total_assignments":       totalAssignments,
		"completed_assignments":   completedAssignments,
		"in_progress_assignments": inProgressAssignments,
		"not_started_assignments": notStartedAssignments,
		"completion_rate":         completionRate,
		"category_stats":          categoryStats,
		"recent_assignments":      recentAssignments,
	})
}
