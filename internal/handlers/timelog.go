package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/utils"
)

type CreateTimeLogRequest struct {
	ProjectID   uint       `json:"project_id" binding:"required"`
	TaskID      *uint      `json:"task_id"`
	Date        time.Time  `json:"date" binding:"required"`
	StartTime   time.Time  `json:"start_time" binding:"required"`
	EndTime     *time.Time `json:"end_time"`
	DurationMin int        `json:"duration_minutes"`
	IsBillable  *bool      `json:"is_billable"`
	Description string     `json:"description"`
}

type UpdateTimeLogRequest struct {
	EndTime     *time.Time `json:"end_time"`
	DurationMin int        `json:"duration_minutes"`
	IsBillable  *bool      `json:"is_billable"`
	Description string     `json:"description"`
}

type TimeLogResponse struct {
	ID          uint       `json:"id"`
	ProjectID   uint       `json:"project_id"`
	TaskID      *uint      `json:"task_id"`
	Date        time.Time  `json:"date"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	DurationMin int        `json:"duration_minutes"`
	IsBillable  bool       `json:"is_billable"`
	Description string     `json:"description"`
}

func timeLogResponse(timeLog models.TimeLog) TimeLogResponse {
	return TimeLogResponse{
		ID:          timeLog.ID,
		ProjectID:   timeLog.ProjectID,
		TaskID:      timeLog.TaskID,
		Date:        timeLog.Date,
		StartTime:   timeLog.StartTime,
		EndTime:     timeLog.EndTime,
		DurationMin: timeLog.DurationMin,
		IsBillable:  timeLog.IsBillable,
		Description: timeLog.Description,
	}
}

func CreateTimeLog(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateTimeLogRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, err := orgProject(currentUser.OrganizationID, body.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	billable := true
	if body.IsBillable != nil {
		billable = *body.IsBillable
	}

	timeLog := models.TimeLog{
		UserID:      currentUser.ID,
		ProjectID:   body.ProjectID,
		TaskID:      body.TaskID,
		Date:        body.Date,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		DurationMin: body.DurationMin,
		IsBillable:  billable,
		Description: body.Description,
	}

	if err := db.DB.Create(&timeLog).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create time log"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.JSON(http.StatusCreated, timeLogResponse(timeLog))
}

func ListTimeLogs(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Where("user_id = ?", currentUser.ID)

	if projectID := ctx.Query("project_id"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	if from := ctx.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}

	if to := ctx.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var timeLogs []models.TimeLog

	if err := query.Order("start_time DESC").Find(&timeLogs).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time logs"})
		return
	}

	response := make([]TimeLogResponse, 0, len(timeLogs))

	for _, timeLog := range timeLogs {
		response = append(response, timeLogResponse(timeLog))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateTimeLog(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	timeLogID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateTimeLogRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var timeLog models.TimeLog

	if err := db.DB.Where("id = ? AND user_id = ?", timeLogID, currentUser.ID).First(&timeLog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Time log not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time log"})
		}
		return
	}

	if body.EndTime != nil {
		timeLog.EndTime = body.EndTime
	}

	if body.DurationMin > 0 {
		timeLog.DurationMin = body.DurationMin
	}

	if body.IsBillable != nil {
		timeLog.IsBillable = *body.IsBillable
	}

	if body.Description != "" {
		timeLog.Description = body.Description
	}

	if err := db.DB.Save(&timeLog).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update time log"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.JSON(http.StatusOK, timeLogResponse(timeLog))
}

func DeleteTimeLog(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	timeLogID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var timeLog models.TimeLog

	if err := db.DB.Where("id = ? AND user_id = ?", timeLogID, currentUser.ID).First(&timeLog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Time log not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time log"})
		}
		return
	}

	if err := db.DB.Delete(&timeLog).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete time log"})
		return
	}

	invalidateDashboard(currentUser.OrganizationID)

	ctx.Status(http.StatusNoContent)
}
