package timer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "managio_timer_sessions_started_total",
			Help: "Timer sessions started",
		},
	)

	sessionsStopped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "managio_timer_sessions_stopped_total",
			Help: "Timer sessions stopped normally",
		},
	)

	sessionMinutes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "managio_timer_session_minutes",
			Help:    "Recorded session durations in minutes",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 240, 480},
		},
	)
)
