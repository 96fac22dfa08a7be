package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeEnabled(t *testing.T) {
	prefs := DefaultPreferences(1)
	prefs.TaskAssigned = false
	prefs.InvoicePaid = false

	tests := []struct {
		name             string
		notificationType string
		want             bool
	}{
		{name: "disabled category", notificationType: "task_assigned", want: false},
		{name: "another disabled category", notificationType: "invoice_paid", want: false},
		{name: "enabled category", notificationType: "task_completed", want: true},
		{name: "system stays on", notificationType: "system", want: true},
		{name: "unknown type defaults to enabled", notificationType: "brand_new_kind", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prefs.TypeEnabled(tt.notificationType))
		})
	}
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences(42)

	assert.Equal(t, uint(42), prefs.UserID)
	assert.Equal(t, "real_time", prefs.Frequency)
	assert.True(t, prefs.EmailEnabled)
	assert.True(t, prefs.BrowserEnabled)
	assert.False(t, prefs.QuietHoursEnabled)

	for _, notificationType := range []string{
		"task_assigned", "task_completed", "project_updated",
		"invoice_sent", "invoice_paid", "payment_received",
		"deadline_approaching", "team_mention", "system",
	} {
		assert.True(t, prefs.TypeEnabled(notificationType), notificationType)
	}
}
