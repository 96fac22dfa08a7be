package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/cache"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/utils"
)

type DashboardResponse struct {
	ActiveProjects  int64 `json:"active_projects"`
	OpenTasks       int64 `json:"open_tasks"`
	UnpaidInvoices  int64 `json:"unpaid_invoices"`
	ActiveClients   int64 `json:"active_clients"`
	MinutesThisWeek int64 `json:"minutes_this_week"`
}

func GetDashboard(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	key := cache.DashboardKey(currentUser.OrganizationID)

	if dataCache != nil {
		var cached DashboardResponse
		if err := dataCache.Get(ctx.Request.Context(), key, &cached); err == nil {
			ctx.JSON(http.StatusOK, cached)
			return
		} else if !errors.Is(err, cache.ErrMiss) {
			logrus.WithError(err).Warn("Dashboard cache read failed")
		}
	}

	var response DashboardResponse

	orgID := currentUser.OrganizationID

	if err := db.DB.Model(&models.Project{}).
		Where("organization_id = ? AND status = ?", orgID, "active").
		Count(&response.ActiveProjects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	if err := db.DB.Model(&models.Task{}).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.organization_id = ? AND tasks.status != ?", orgID, "done").
		Count(&response.OpenTasks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	if err := db.DB.Model(&models.Invoice{}).
		Where("organization_id = ? AND status IN ?", orgID, []string{"sent", "overdue"}).
		Count(&response.UnpaidInvoices).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	if err := db.DB.Model(&models.Client{}).
		Where("organization_id = ? AND status = ?", orgID, "active").
		Count(&response.ActiveClients).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	// Week starts Monday.
	now := time.Now()
	weekday := (int(now.Weekday()) + 6) % 7
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -weekday)

	var minutes *int64

	if err := db.DB.Model(&models.TimeLog{}).
		Joins("JOIN projects ON projects.id = time_logs.project_id").
		Where("projects.organization_id = ? AND time_logs.date >= ?", orgID, weekStart).
		Select("SUM(time_logs.duration_min)").
		Scan(&minutes).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	if minutes != nil {
		response.MinutesThisWeek = *minutes
	}

	if dataCache != nil {
		if err := dataCache.Set(ctx.Request.Context(), key, response); err != nil {
			logrus.WithError(err).Warn("Dashboard cache write failed")
		}
	}

	ctx.JSON(http.StatusOK, response)
}
