package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/types"
)

func TestChannelDecision(t *testing.T) {
	daytime := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)
	night := time.Date(2026, time.March, 10, 23, 30, 0, 0, time.UTC)
	overnight := QuietHours{Enabled: true, Start: "22:00", End: "06:00"}

	tests := []struct {
		name       string
		priority   string
		enabled    bool
		quiet      QuietHours
		localNow   time.Time
		wantStatus string
		wantReason string
	}{
		{
			name:       "enabled channel outside quiet hours",
			priority:   types.PriorityNormal,
			enabled:    true,
			quiet:      overnight,
			localNow:   daytime,
			wantStatus: "queued",
		},
		{
			name:       "disabled channel",
			priority:   types.PriorityNormal,
			enabled:    false,
			quiet:      QuietHours{},
			localNow:   daytime,
			wantStatus: "suppressed",
			wantReason: "channel_disabled",
		},
		{
			name:       "quiet hours suppress normal priority",
			priority:   types.PriorityNormal,
			enabled:    true,
			quiet:      overnight,
			localNow:   night,
			wantStatus: "suppressed",
			wantReason: "quiet_hours",
		},
		{
			name:       "urgent cuts through quiet hours",
			priority:   types.PriorityUrgent,
			enabled:    true,
			quiet:      overnight,
			localNow:   night,
			wantStatus: "queued",
		},
		{
			name:       "channel toggle wins over urgency",
			priority:   types.PriorityUrgent,
			enabled:    false,
			quiet:      overnight,
			localNow:   night,
			wantStatus: "suppressed",
			wantReason: "channel_disabled",
		},
	}

	d := &Dispatcher{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notification := models.Notification{Priority: tt.priority}
			notification.ID = 7

			delivery := d.channelDecision(notification, types.ChannelBrowser, tt.enabled, tt.quiet, tt.localNow)

			assert.Equal(t, uint(7), delivery.NotificationID)
			assert.Equal(t, types.ChannelBrowser, delivery.Channel)
			assert.Equal(t, tt.wantStatus, delivery.Status)
			assert.Equal(t, tt.wantReason, delivery.Reason)
		})
	}
}

func TestLocalNow(t *testing.T) {
	serverNow := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	d := &Dispatcher{now: func() time.Time { return serverNow }}

	tests := []struct {
		name     string
		timezone string
		wantHour int
	}{
		{name: "empty timezone keeps server time", timezone: "", wantHour: 12},
		{name: "known timezone shifts the clock", timezone: "America/New_York", wantHour: 8},
		{name: "unknown timezone falls back to server time", timezone: "Mars/Olympus", wantHour: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.localNow(models.Organization{Timezone: tt.timezone})
			assert.Equal(t, tt.wantHour, got.Hour())
			assert.True(t, got.Equal(serverNow))
		})
	}
}
