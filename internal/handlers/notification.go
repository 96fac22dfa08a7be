package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/cache"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/utils"
)

type NotificationResponse struct {
	ID         uint       `json:"id"`
	SenderID   *uint      `json:"sender_id,omitempty"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Priority   string     `json:"priority"`
	ReadAt     *time.Time `json:"read_at"`
	EntityType string     `json:"entity_type,omitempty"`
	EntityID   *uint      `json:"entity_id,omitempty"`
	Link       string     `json:"link"`
	CreatedAt  time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// entityLink resolves a notification's deep link. Unknown or missing
// entity references land on the dashboard.
func entityLink(entityType string, entityID *uint) string {
	if entityID == nil {
		return "/dashboard"
	}

	switch entityType {
	case "task":
		return fmt.Sprintf("/tasks/%d", *entityID)
	case "project":
		return fmt.Sprintf("/projects/%d", *entityID)
	case "invoice":
		return fmt.Sprintf("/invoices/%d", *entityID)
	case "client":
		return fmt.Sprintf("/clients/%d", *entityID)
	case "team_member":
		return fmt.Sprintf("/team/%d", *entityID)
	default:
		return "/dashboard"
	}
}

func ListNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	key := cache.NotificationsKey(userID)

	if dataCache != nil {
		var cached NotificationListResponse
		if err := dataCache.Get(ctx.Request.Context(), key, &cached); err == nil {
			ctx.JSON(http.StatusOK, cached)
			return
		} else if !errors.Is(err, cache.ErrMiss) {
			logrus.WithError(err).Warn("Notification cache read failed")
		}
	}

	var notifications []models.Notification

	err = db.DB.
		Where("recipient_id = ?", userID).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("created_at DESC").
		Find(&notifications).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	response := NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(notifications)),
	}

	for _, n := range notifications {
		if n.ReadAt == nil {
			response.UnreadCount++
		}

		response.Notifications = append(response.Notifications, NotificationResponse{
			ID:         n.ID,
			SenderID:   n.SenderID,
			Type:       n.Type,
			Title:      n.Title,
			Message:    n.Message,
			Priority:   n.Priority,
			ReadAt:     n.ReadAt,
			EntityType: n.EntityType,
			EntityID:   n.EntityID,
			Link:       entityLink(n.EntityType, n.EntityID),
			CreatedAt:  n.CreatedAt,
		})
	}

	if dataCache != nil {
		if err := dataCache.Set(ctx.Request.Context(), key, response); err != nil {
			logrus.WithError(err).Warn("Notification cache write failed")
		}
	}

	ctx.JSON(http.StatusOK, response)
}

func MarkNotificationRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var notification models.Notification

	if err := db.DB.Where("id = ? AND recipient_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notification"})
		}
		return
	}

	// Read status is monotonic; re-marking is a no-op.
	if notification.ReadAt == nil {
		now := time.Now()

		if err := db.DB.Model(&notification).Update("read_at", now).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
			return
		}

		invalidateNotifications(userID)
		pushUnreadCount(userID)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func MarkAllNotificationsRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	err = db.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now()).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}

	invalidateNotifications(userID)
	pushUnreadCount(userID)

	ctx.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func DeleteNotification(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var notification models.Notification

	if err := db.DB.Where("id = ? AND recipient_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notification"})
		}
		return
	}

	if err := db.DB.Delete(&notification).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}

	invalidateNotifications(userID)
	pushUnreadCount(userID)

	ctx.Status(http.StatusNoContent)
}

func DeleteAllNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := db.DB.Where("recipient_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notifications"})
		return
	}

	invalidateNotifications(userID)
	pushUnreadCount(userID)

	ctx.Status(http.StatusNoContent)
}

// pushUnreadCount notifies connected clients after a read/delete mutation.
// The count can only have decreased here, so increased is always false.
func pushUnreadCount(userID uint) {
	var count int64

	if err := db.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		logrus.WithError(err).Warn("Failed to count unread notifications")
		return
	}

	WSHub.PushUnreadCount(userID, count, false)
}
