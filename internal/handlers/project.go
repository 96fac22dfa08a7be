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

type CreateProjectRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	ClientID     *uint      `json:"client_id"`
	DepartmentID *uint      `json:"department_id"`
	StartDate    *time.Time `json:"start_date"`
	DueDate      *time.Time `json:"due_date"`
	BudgetCents  int64      `json:"budget_cents"`
}

type UpdateProjectRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	ClientID     *uint      `json:"client_id"`
	DepartmentID *uint      `json:"department_id"`
	Status       string     `json:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	StartDate    *time.Time `json:"start_date"`
	DueDate      *time.Time `json:"due_date"`
	BudgetCents  int64      `json:"budget_cents"`
}

type ProjectResponse struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ClientID     *uint      `json:"client_id"`
	DepartmentID *uint      `json:"department_id"`
	Status       string     `json:"status"`
	StartDate    *time.Time `json:"start_date"`
	DueDate      *time.Time `json:"due_date"`
	BudgetCents  int64      `json:"budget_cents"`
}

func projectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:           project.ID,
		Name:         project.Name,
		Description:  project.Description,
		ClientID:     project.ClientID,
		DepartmentID: project.DepartmentID,
		Status:       project.Status,
		StartDate:    project.StartDate,
		DueDate:      project.DueDate,
		BudgetCents:  project.BudgetCents,
	}
}

func CreateProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project := models.Project{
		OrganizationID: currentUser.OrganizationID,
		Name:           body.Name,
		Description:    body.Description,
		ClientID:       body.ClientID,
		DepartmentID:   body.DepartmentID,
		Status:         "planning",
		StartDate:      body.StartDate,
		DueDate:        body.DueDate,
		BudgetCents:    body.BudgetCents,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

func ListProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := db.DB.Where("organization_id = ?", currentUser.OrganizationID).Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND organization_id = ?", projectID, currentUser.OrganizationID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND organization_id = ?", projectID, currentUser.OrganizationID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	statusChanged := body.Status != "" && body.Status != project.Status

	project.Name = body.Name
	project.Description = body.Description
	project.ClientID = body.ClientID
	project.DepartmentID = body.DepartmentID
	project.StartDate = body.StartDate
	project.DueDate = body.DueDate
	project.BudgetCents = body.BudgetCents

	if body.Status != "" {
		project.Status = body.Status
	}

	if err := db.DB.Save(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	if statusChanged {
		actorID := currentUser.ID
		event := events.NewEvent(types.NotificationProjectUpdated, currentUser.OrganizationID,
			"Project updated",
			project.Name+" moved to "+project.Status)
		event.ActorID = &actorID
		event.EntityType = "project"
		projectID := project.ID
		event.EntityID = &projectID
		publishEvent(event)
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND organization_id = ?", projectID, currentUser.OrganizationID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.Status(http.StatusNoContent)
}
