package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/events"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/types"
	"github.com/managio-dev/managio/internal/utils"
)

type CreateTaskRequest struct {
	ProjectID   uint       `json:"project_id" binding:"required"`
	AssigneeID  *uint      `json:"assignee_id"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	DueDate     *time.Time `json:"due_date"`
	EstimateMin int        `json:"estimate_minutes"`
}

type UpdateTaskRequest struct {
	AssigneeID  *uint      `json:"assignee_id"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	DueDate     *time.Time `json:"due_date"`
	EstimateMin int        `json:"estimate_minutes"`
}

type TaskResponse struct {
	ID          uint       `json:"id"`
	ProjectID   uint       `json:"project_id"`
	AssigneeID  *uint      `json:"assignee_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	EstimateMin int        `json:"estimate_minutes"`
	CompletedAt *time.Time `json:"completed_at"`
}

func taskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		AssigneeID:  task.AssigneeID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		EstimateMin: task.EstimateMin,
		CompletedAt: task.CompletedAt,
	}
}

// orgProject loads a project scoped to the caller's organization.
func orgProject(orgID, projectID uint) (models.Project, error) {
	var project models.Project
	err := db.DB.Where("id = ? AND organization_id = ?", projectID, orgID).First(&project).Error
	return project, err
}

func CreateTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := orgProject(currentUser.OrganizationID, body.ProjectID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	priority := body.Priority
	if priority == "" {
		priority = types.PriorityNormal
	}

	task := models.Task{
		ProjectID:   project.ID,
		AssigneeID:  body.AssigneeID,
		Title:       body.Title,
		Description: body.Description,
		Status:      "todo",
		Priority:    priority,
		DueDate:     body.DueDate,
		EstimateMin: body.EstimateMin,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	if task.AssigneeID != nil && *task.AssigneeID != currentUser.ID {
		publishTaskEvent(types.NotificationTaskAssigned, currentUser.ID, currentUser.OrganizationID, task,
			"Task assigned", currentUser.Name+" assigned you \""+task.Title+"\"",
			[]uint{*task.AssigneeID})
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.JSON(http.StatusCreated, taskResponse(task))
}

func ListTasks(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.organization_id = ?", currentUser.OrganizationID)

	if projectID := ctx.Query("project_id"); projectID != "" {
		query = query.Where("tasks.project_id = ?", projectID)
	}

	if status := ctx.Query("status"); status != "" {
		query = query.Where("tasks.status = ?", status)
	}

	if assignee := ctx.Query("assignee_id"); assignee != "" {
		query = query.Where("tasks.assignee_id = ?", assignee)
	}

	var tasks []models.Task

	if err := query.Find(&tasks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, taskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := orgTask(currentUser.OrganizationID, taskID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	ctx.JSON(http.StatusOK, taskResponse(task))
}

func orgTask(orgID, taskID uint) (models.Task, error) {
	var task models.Task

	err := db.DB.
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ? AND projects.organization_id = ?", taskID, orgID).
		First(&task).Error

	return task, err
}

func UpdateTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := orgTask(currentUser.OrganizationID, taskID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	previousAssignee := task.AssigneeID
	previousStatus := task.Status

	task.AssigneeID = body.AssigneeID
	task.Title = body.Title
	task.Description = body.Description
	task.DueDate = body.DueDate
	task.EstimateMin = body.EstimateMin

	if body.Priority != "" {
		task.Priority = body.Priority
	}

	if body.Status != "" {
		task.Status = body.Status
	}

	completed := task.Status == "done" && previousStatus != "done"

	if completed {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := db.DB.Save(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	newlyAssigned := task.AssigneeID != nil &&
		(previousAssignee == nil || *previousAssignee != *task.AssigneeID) &&
		*task.AssigneeID != currentUser.ID

	if newlyAssigned {
		publishTaskEvent(types.NotificationTaskAssigned, currentUser.ID, currentUser.OrganizationID, task,
			"Task assigned", currentUser.Name+" assigned you \""+task.Title+"\"",
			[]uint{*task.AssigneeID})
	}

	if completed {
		publishTaskEvent(types.NotificationTaskCompleted, currentUser.ID, currentUser.OrganizationID, task,
			"Task completed", "\""+task.Title+"\" was marked done", nil)
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.JSON(http.StatusOK, taskResponse(task))
}

func DeleteTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := orgTask(currentUser.OrganizationID, taskID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if err := db.DB.Delete(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.Status(http.StatusNoContent)
}

func publishTaskEvent(eventType string, actorID, orgID uint, task models.Task, title, message string, recipients []uint) {
	event := events.NewEvent(eventType, orgID, title, message)
	event.ActorID = &actorID
	event.RecipientIDs = recipients
	event.Priority = task.Priority
	event.EntityType = "task"
	taskID := task.ID
	event.EntityID = &taskID
	publishEvent(event)
}
