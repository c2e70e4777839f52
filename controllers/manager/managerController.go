package controllers

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetTeam lists the manager's direct reports with their assignment counts
func GetTeam(c *fiber.Ctx) error {
	manager, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var teamMembers []models.User
	if err := database.Database.Db.
		Where("manager_id = ? AND role = ? AND is_deleted = ?", manager.ID, "Employee", false).
		Order("name asc").
		Find(&teamMembers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch team!", nil)
	}

	type MemberSummary struct {
		models.User
		TotalAssignments     int64 `json:"total_assignments"`
		CompletedAssignments int64 `json:"completed_assignments"`
	}

	result := make([]MemberSummary, len(teamMembers))
	for i, member := range teamMembers {
		member.Password = ""
		result[i] = MemberSummary{User: member}

		database.Database.Db.Model(&models.LearningAssignment{}).
			Where("user_id = ?", member.ID).
			Count(&result[i].TotalAssignments)
		database.Database.Db.Model(&models.LearningAssignment{}).
			Where("user_id = ? AND status = ?", member.ID, "Completed").
			Count(&result[i].CompletedAssignments)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team fetched successfully!", fiber.Map{
		"team_members": result,
		"total":        len(result),
	})
}

// GetTeamMember returns one direct report with their assignments. Members of
// other teams read as not found.
func GetTeamMember(c *fiber.Ctx) error {
	manager, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	memberID := c.Locals("memberID").(int)

	var member models.User
	if err := database.Database.Db.
		Where("id = ? AND manager_id = ? AND is_deleted = ?", memberID, manager.ID, false).
		First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team member not found!", nil)
	}

	var assignments []models.LearningAssignment
	database.Database.Db.Where("user_id = ?", member.ID).Order("assigned_date desc").Find(&assignments)

	type AssignmentWithLearning struct {
		models.LearningAssignment
		LearningTitle    string `json:"learning_title"`
		LearningCategory string `json:"learning_category"`
	}

	assignmentList := make([]AssignmentWithLearning, len(assignments))
	for i, a := range assignments {
		var learning models.Learning
		database.Database.Db.Where("id = ?", a.LearningID).First(&learning)
		assignmentList[i] = AssignmentWithLearning{
			LearningAssignment: a,
			LearningTitle:      learning.Title,
			LearningCategory:   learning.Category,
		}
	}

	member.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team member fetched successfully!", fiber.Map{
		"team_member": member,
		"assignments": assignmentList,
	})
}

// AssignLearning assigns a learning module to a direct report. Duplicate
// assignments are skipped by a check before insert, there is no DB
// uniqueness constraint on the (user, learning) pair.
func AssignLearning(c *fiber.Ctx) error {
	manager, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAssign").(*struct {
		MemberID   uint `json:"member_id"`
		LearningID uint `json:"learning_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var member models.User
	if err := database.Database.Db.
		Where("id = ? AND manager_id = ? AND is_deleted = ?", reqData.MemberID, manager.ID, false).
		First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Team member not found!", nil)
	}

	var learning models.Learning
	if err := database.Database.Db.Where("id = ?", reqData.LearningID).First(&learning).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learning not found!", nil)
	}

	// Check if already assigned
	var existingAssignment models.LearningAssignment
	if err := database.Database.Db.
		Where("user_id = ? AND learning_id = ?", reqData.MemberID, reqData.LearningID).
		First(&existingAssignment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Learning already assigned to this member!", existingAssignment)
	}

	assignment := models.LearningAssignment{
		UserID:             reqData.MemberID,
		LearningID:         reqData.LearningID,
		AssignedDate:       time.Now(),
		DueDate:            time.Now().AddDate(0, 0, 30),
		Status:             "NotStarted",
		ProgressPercentage: 0,
	}

	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		log.Printf("Error assigning learning %d to user %d: %v", reqData.LearningID, reqData.MemberID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign learning!", nil)
	}

	log.Printf("Manager %d assigned learning %d to member %d", manager.ID, reqData.LearningID, reqData.MemberID)

	go utils.SendAssignmentEmail(member.Email, member.DisplayName(), learning.Title, assignment.DueDate)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Learning assigned successfully!", assignment)
}

// GetTeamStats aggregates assignment completion across the manager's team
func GetTeamStats(c *fiber.Ctx) error {
	manager, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var teamMembers []models.User
	database.Database.Db.
		Where("manager_id = ? AND role = ? AND is_deleted = ?", manager.ID, "Employee", false).
		Find(&teamMembers)

	memberIDs := make([]uint, len(teamMembers))
	for i, m := range teamMembers {
		memberIDs[i] = m.ID
	}

	var total, completed, inProgress, notStarted int64
	if len(memberIDs) > 0 {
		database.Database.Db.Model(&models.LearningAssignment{}).
			Where("user_id IN ?", memberIDs).Count(&total)
		database.Database.Db.Model(&models.LearningAssignment{}).
			Where("user_id IN ? AND status = ?", memberIDs, "Completed").Count(&completed)
		database.Database.Db.Model(&models.LearningAssignment{}).
			Where("user_id IN ? AND status = ?", memberIDs, "InProgress").Count(&inProgress)
		database.Database.Db.Model(&models.LearningAssignment{}).
			Where("user_id IN ? AND status = ?", memberIDs, "NotStarted").Count(&notStarted)
	}

	completionRate := int64(0)
	if total > 0 {
		completionRate = completed * 100 / total
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team stats fetched successfully!", fiber.Map{
		"team_size":               len(teamMembers),
		"total_assignments":       total,
		"completed_assignments":   completed,
		"in_progress_assignments": inProgress,
		"not_started_assignments": notStarted,
		"completion_rate":         completionRate,
	})
}
