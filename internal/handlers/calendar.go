package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/utils"
)

type CalendarResponse struct {
	Year  int                       `json:"year"`
	Month int                       `json:"month"`
	Days  map[string][]TaskResponse `json:"days"`
}

// GetCalendar groups the organization's tasks of one month by due date.
// Defaults to the current month when year/month are absent.
func GetCalendar(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	now := time.Now()

	year := now.Year()
	month := int(now.Month())

	if yearStr := ctx.Query("year"); yearStr != "" {
		if parsed, err := strconv.Atoi(yearStr); err == nil {
			year = parsed
		} else {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
	}

	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return
		}
		month = parsed
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var tasks []models.Task

	err = db.DB.
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.organization_id = ?", currentUser.OrganizationID).
		Where("tasks.due_date >= ? AND tasks.due_date < ?", monthStart, monthEnd).
		Find(&tasks).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := CalendarResponse{
		Year:  year,
		Month: month,
		Days:  make(map[string][]TaskResponse),
	}

	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}

		day := task.DueDate.Format("2006-01-02")
		response.Days[day] = append(response.Days[day], taskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}
