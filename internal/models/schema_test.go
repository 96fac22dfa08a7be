package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// gorm omits zero-valued columns on insert when the field carries a
// database-side default, so a boolean column with default:true can never be
// written as false at creation. Boolean fields must therefore stay free of
// column defaults; their defaults belong in constructors.
func TestBooleanColumnsHaveNoDatabaseDefault(t *testing.T) {
	tests := []struct {
		name   string
		model  interface{}
		fields []string
	}{
		{
			name:   "time log billable flag",
			model:  &TimeLog{},
			fields: []string{"IsBillable"},
		},
		{
			name:  "notification preference toggles",
			model: &NotificationPreferences{},
			fields: []string{
				"EmailEnabled", "BrowserEnabled",
				"TaskAssigned", "TaskCompleted", "ProjectUpdated",
				"InvoiceSent", "InvoicePaid", "PaymentReceived",
				"DeadlineApproaching", "TeamMention", "System",
				"QuietHoursEnabled",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := schema.Parse(tt.model, &sync.Map{}, schema.NamingStrategy{})
			require.NoError(t, err)

			for _, name := range tt.fields {
				field := parsed.LookUpField(name)
				require.NotNil(t, field, name)
				assert.False(t, field.HasDefaultValue, name)
			}
		})
	}
}
