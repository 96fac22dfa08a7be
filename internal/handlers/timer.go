package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/timer"
	"github.com/managio-dev/managio/internal/utils"
)

type StartTimerRequest struct {
	ProjectID uint  `json:"project_id" binding:"required"`
	TaskID    *uint `json:"task_id"`
}

type StopTimerRequest struct {
	Description string `json:"description"`
}

func GetTimer(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, tracker.Snapshot(userID))
}

func StartTimer(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body StartTimerRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// The project must exist in the caller's organization; the denormalized
	// names on the timer come from here.
	var project models.Project

	if err := db.DB.Where("id = ? AND organization_id = ?", body.ProjectID, currentUser.OrganizationID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	taskName := ""

	if body.TaskID != nil {
		var task models.Task

		if err := db.DB.Where("id = ? AND project_id = ?", *body.TaskID, project.ID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
			}
			return
		}

		taskName = task.Title
	}

	state, err := tracker.Start(ctx.Request.Context(), currentUser.ID, project.ID, body.TaskID, project.Name, taskName)

	if err != nil {
		if errors.Is(err, timer.ErrTimerRunning) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A timer is already running"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start timer"})
		return
	}

	ctx.JSON(http.StatusCreated, state)
}

func StopTimer(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body StopTimerRequest

	// The stop body is optional.
	_ = ctx.BindJSON(&body)

	durationMin, err := tracker.Stop(ctx.Request.Context(), userID, body.Description)

	if err != nil {
		if errors.Is(err, timer.ErrNoActiveTimer) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No active timer"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop timer"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"duration_minutes": durationMin})
}

func ResetTimer(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := tracker.Reset(ctx.Request.Context(), userID); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset timer"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
