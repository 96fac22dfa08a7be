package notifications

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "managio_notifications_dispatched_total",
			Help: "Notifications created per event type",
		},
		[]string{"type"},
	)

	suppressedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "managio_notifications_suppressed_total",
			Help: "Recipient or channel deliveries suppressed, by reason",
		},
		[]string{"reason"}, // category_disabled, channel_disabled, quiet_hours
	)

	eventsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "managio_notification_events_failed_total",
			Help: "Domain events whose fan-out failed and was requeued",
		},
	)
)
