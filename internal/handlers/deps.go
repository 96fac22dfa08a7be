package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/managio-dev/managio/internal/cache"
	"github.com/managio-dev/managio/internal/events"
	"github.com/managio-dev/managio/internal/timer"
)

var (
	eventBus  events.Bus
	dataCache *cache.Cache
	tracker   *timer.Tracker
)

// Configure wires the shared collaborators before the router starts.
func Configure(bus events.Bus, c *cache.Cache, t *timer.Tracker) {
	eventBus = bus
	dataCache = c
	tracker = t
}

// publishEvent fires a domain event without failing the request; a broker
// outage degrades notifications, not mutations.
func publishEvent(event events.Event) {
	if eventBus == nil {
		return
	}

	if err := eventBus.Publish(context.Background(), event); err != nil {
		logrus.WithError(err).WithField("type", event.Type).Warn("Failed to publish event")
	}
}

// invalidateDashboard drops the organization's cached dashboard summary.
func invalidateDashboard(orgID uint) {
	if dataCache == nil {
		return
	}

	if err := dataCache.Delete(context.Background(), cache.DashboardKey(orgID)); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate dashboard cache")
	}
}

// invalidateNotifications drops a recipient's cached notification list.
func invalidateNotifications(userID uint) {
	if dataCache == nil {
		return
	}

	if err := dataCache.Delete(context.Background(), cache.NotificationsKey(userID)); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate notification cache")
	}
}
