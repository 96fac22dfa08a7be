package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/notifications"
	"github.com/managio-dev/managio/internal/types"
	"github.com/managio-dev/managio/internal/utils"
)

// UpdatePreferencesRequest carries the complete preferences form; the
// client always submits the full object, never a partial patch.
type UpdatePreferencesRequest struct {
	EmailEnabled   bool `json:"email_enabled"`
	BrowserEnabled bool `json:"browser_enabled"`

	TaskAssigned        bool `json:"task_assigned"`
	TaskCompleted       bool `json:"task_completed"`
	ProjectUpdated      bool `json:"project_updated"`
	InvoiceSent         bool `json:"invoice_sent"`
	InvoicePaid         bool `json:"invoice_paid"`
	PaymentReceived     bool `json:"payment_received"`
	DeadlineApproaching bool `json:"deadline_approaching"`
	TeamMention         bool `json:"team_mention"`
	System              bool `json:"system"`

	Frequency string `json:"frequency" binding:"required"`

	QuietHoursEnabled bool   `json:"quiet_hours_enabled"`
	QuietHoursStart   string `json:"quiet_hours_start"`
	QuietHoursEnd     string `json:"quiet_hours_end"`
}

type PreferencesResponse struct {
	EmailEnabled   bool `json:"email_enabled"`
	BrowserEnabled bool `json:"browser_enabled"`

	TaskAssigned        bool `json:"task_assigned"`
	TaskCompleted       bool `json:"task_completed"`
	ProjectUpdated      bool `json:"project_updated"`
	InvoiceSent         bool `json:"invoice_sent"`
	InvoicePaid         bool `json:"invoice_paid"`
	PaymentReceived     bool `json:"payment_received"`
	DeadlineApproaching bool `json:"deadline_approaching"`
	TeamMention         bool `json:"team_mention"`
	System              bool `json:"system"`

	Frequency string `json:"frequency"`

	QuietHoursEnabled bool   `json:"quiet_hours_enabled"`
	QuietHoursStart   string `json:"quiet_hours_start"`
	QuietHoursEnd     string `json:"quiet_hours_end"`
}

func preferencesResponse(prefs models.NotificationPreferences) PreferencesResponse {
	return PreferencesResponse{
		EmailEnabled:        prefs.EmailEnabled,
		BrowserEnabled:      prefs.BrowserEnabled,
		TaskAssigned:        prefs.TaskAssigned,
		TaskCompleted:       prefs.TaskCompleted,
		ProjectUpdated:      prefs.ProjectUpdated,
		InvoiceSent:         prefs.InvoiceSent,
		InvoicePaid:         prefs.InvoicePaid,
		PaymentReceived:     prefs.PaymentReceived,
		DeadlineApproaching: prefs.DeadlineApproaching,
		TeamMention:         prefs.TeamMention,
		System:              prefs.System,
		Frequency:           prefs.Frequency,
		QuietHoursEnabled:   prefs.QuietHoursEnabled,
		QuietHoursStart:     prefs.QuietHoursStart,
		QuietHoursEnd:       prefs.QuietHoursEnd,
	}
}

// GetPreferences returns the user's preferences, creating the default row
// on first access.
func GetPreferences(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var prefs models.NotificationPreferences

	err = db.DB.Where("user_id = ?", userID).First(&prefs).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = models.DefaultPreferences(userID)

		if err := db.DB.Create(&prefs).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create preferences"})
			return
		}
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve preferences"})
		return
	}

	ctx.JSON(http.StatusOK, preferencesResponse(prefs))
}

// UpdatePreferences overwrites the full row. Quiet-hours clock values are
// only validated when the window is enabled.
func UpdatePreferences(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdatePreferencesRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidFrequency(body.Frequency) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification frequency"})
		return
	}

	quiet := notifications.QuietHours{
		Enabled: body.QuietHoursEnabled,
		Start:   body.QuietHoursStart,
		End:     body.QuietHoursEnd,
	}

	if err := quiet.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiet hours: " + err.Error()})
		return
	}

	var prefs models.NotificationPreferences

	err = db.DB.Where("user_id = ?", userID).First(&prefs).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve preferences"})
		return
	}

	prefs.UserID = userID
	prefs.EmailEnabled = body.EmailEnabled
	prefs.BrowserEnabled = body.BrowserEnabled
	prefs.TaskAssigned = body.TaskAssigned
	prefs.TaskCompleted = body.TaskCompleted
	prefs.ProjectUpdated = body.ProjectUpdated
	prefs.InvoiceSent = body.InvoiceSent
	prefs.InvoicePaid = body.InvoicePaid
	prefs.PaymentReceived = body.PaymentReceived
	prefs.DeadlineApproaching = body.DeadlineApproaching
	prefs.TeamMention = body.TeamMention
	prefs.System = body.System
	prefs.Frequency = body.Frequency
	prefs.QuietHoursEnabled = body.QuietHoursEnabled
	prefs.QuietHoursStart = body.QuietHoursStart
	prefs.QuietHoursEnd = body.QuietHoursEnd

	if err := db.DB.Save(&prefs).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	ctx.JSON(http.StatusOK, preferencesResponse(prefs))
}
