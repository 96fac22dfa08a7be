package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/managio-dev/managio/internal/cache"
	"github.com/managio-dev/managio/internal/events"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/services"
	"github.com/managio-dev/managio/internal/types"
)

// UnreadNotifier pushes a recipient's new unread count to connected
// clients. The increased flag is the one-shot trigger for the bell
// animation, set only when the count grew.
type UnreadNotifier interface {
	PushUnreadCount(userID uint, count int64, increased bool)
}

// Dispatcher consumes domain events from the bus and fans them out into
// per-recipient Notification rows, honoring each recipient's category
// toggles, channel toggles and quiet hours.
type Dispatcher struct {
	db       *gorm.DB
	bus      events.Bus
	cache    *cache.Cache
	notifier UnreadNotifier
	now      func() time.Time
}

func NewDispatcher(db *gorm.DB, bus events.Bus, c *cache.Cache, notifier UnreadNotifier) *Dispatcher {
	return &Dispatcher{
		db:       db,
		bus:      bus,
		cache:    c,
		notifier: notifier,
		now:      time.Now,
	}
}

// Run blocks consuming the bus until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	logrus.Info("Notification dispatcher started")

	return d.bus.Consume(ctx, func(event events.Event) error {
		if err := d.Handle(event); err != nil {
			eventsFailed.Inc()
			return err
		}
		return nil
	})
}

// Handle fans out one event. It is exported so producers without a broker
// (tests, the in-process MemoryBus) can dispatch synchronously.
func (d *Dispatcher) Handle(event events.Event) error {
	if !types.ValidNotificationType(event.Type) {
		logrus.WithField("type", event.Type).Warn("Dropping event of unknown type")
		return nil
	}

	if !types.ValidPriority(event.Priority) {
		event.Priority = types.PriorityNormal
	}

	var org models.Organization

	if err := d.db.First(&org, event.OrgID).Error; err != nil {
		return fmt.Errorf("failed to load organization %d: %w", event.OrgID, err)
	}

	recipients, err := d.resolveRecipients(event)
	if err != nil {
		return err
	}

	localNow := d.localNow(org)

	var firstCreated *models.Notification

	for _, recipientID := range recipients {
		created, err := d.notifyRecipient(event, recipientID, localNow)
		if err != nil {
			return err
		}

		if created == nil {
			continue
		}

		if firstCreated == nil {
			firstCreated = created
		}

		if err := d.cache.Delete(context.Background(), cache.NotificationsKey(recipientID)); err != nil {
			logrus.WithError(err).Warn("Failed to invalidate notification cache")
		}

		d.pushUnread(recipientID)
	}

	if firstCreated != nil && org.WebhookURL != "" {
		if err := services.SendOrganizationWebhook(org, *firstCreated); err != nil {
			logrus.WithError(err).WithField("org_id", org.ID).Warn("Organization webhook failed")
		}
	}

	return nil
}

// resolveRecipients returns the explicit recipient list, or every member of
// the organization except the acting user.
func (d *Dispatcher) resolveRecipients(event events.Event) ([]uint, error) {
	if len(event.RecipientIDs) > 0 {
		return event.RecipientIDs, nil
	}

	var memberships []models.Membership

	if err := d.db.Where("organization_id = ?", event.OrgID).Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}

	recipients := make([]uint, 0, len(memberships))

	for _, membership := range memberships {
		if event.ActorID != nil && membership.UserID == *event.ActorID {
			continue
		}
		recipients = append(recipients, membership.UserID)
	}

	return recipients, nil
}

// notifyRecipient creates the notification row and its channel delivery
// decisions for one recipient. Returns nil when the recipient has the
// event's category switched off.
func (d *Dispatcher) notifyRecipient(event events.Event, recipientID uint, localNow time.Time) (*models.Notification, error) {
	prefs, err := d.preferencesFor(recipientID)
	if err != nil {
		return nil, err
	}

	if !prefs.TypeEnabled(event.Type) {
		suppressedTotal.WithLabelValues("category_disabled").Inc()
		return nil, nil
	}

	notification := models.Notification{
		RecipientID: recipientID,
		SenderID:    event.ActorID,
		Type:        event.Type,
		Title:       event.Title,
		Message:     event.Message,
		Priority:    event.Priority,
		EntityType:  event.EntityType,
		EntityID:    event.EntityID,
		ExpiresAt:   event.ExpiresAt,
	}

	if err := d.db.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	dispatchedTotal.WithLabelValues(event.Type).Inc()

	quiet := QuietHours{
		Enabled: prefs.QuietHoursEnabled,
		Start:   prefs.QuietHoursStart,
		End:     prefs.QuietHoursEnd,
	}

	deliveries := []models.NotificationDelivery{
		d.channelDecision(notification, types.ChannelEmail, prefs.EmailEnabled, quiet, localNow),
		d.channelDecision(notification, types.ChannelBrowser, prefs.BrowserEnabled, quiet, localNow),
	}

	if err := d.db.Create(&deliveries).Error; err != nil {
		return nil, fmt.Errorf("failed to record deliveries: %w", err)
	}

	return &notification, nil
}

// channelDecision records whether one channel fires. Urgent notifications
// cut through quiet hours.
func (d *Dispatcher) channelDecision(n models.Notification, channel string, enabled bool, quiet QuietHours, localNow time.Time) models.NotificationDelivery {
	delivery := models.NotificationDelivery{
		NotificationID: n.ID,
		Channel:        channel,
		Status:         "queued",
	}

	if !enabled {
		delivery.Status = "suppressed"
		delivery.Reason = "channel_disabled"
		suppressedTotal.WithLabelValues("channel_disabled").Inc()
		return delivery
	}

	if n.Priority != types.PriorityUrgent && quiet.Contains(localNow) {
		delivery.Status = "suppressed"
		delivery.Reason = "quiet_hours"
		suppressedTotal.WithLabelValues("quiet_hours").Inc()
	}

	return delivery
}

func (d *Dispatcher) preferencesFor(userID uint) (models.NotificationPreferences, error) {
	var prefs models.NotificationPreferences

	err := d.db.Where("user_id = ?", userID).First(&prefs).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultPreferences(userID), nil
	}

	if err != nil {
		return prefs, fmt.Errorf("failed to load preferences for user %d: %w", userID, err)
	}

	return prefs, nil
}

func (d *Dispatcher) pushUnread(recipientID uint) {
	if d.notifier == nil {
		return
	}

	var count int64

	if err := d.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Count(&count).Error; err != nil {
		logrus.WithError(err).Warn("Failed to count unread notifications")
		return
	}

	d.notifier.PushUnreadCount(recipientID, count, true)
}

func (d *Dispatcher) localNow(org models.Organization) time.Time {
	now := d.now()

	if org.Timezone == "" {
		return now
	}

	location, err := time.LoadLocation(org.Timezone)
	if err != nil {
		logrus.WithField("timezone", org.Timezone).Warn("Unknown organization timezone, using server time")
		return now
	}

	return now.In(location)
}
