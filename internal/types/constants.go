package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Notification event kinds. Notification.Type and the per-category
// preference toggles are both keyed by these.
const (
	NotificationTaskAssigned        = "task_assigned"
	NotificationTaskCompleted       = "task_completed"
	NotificationProjectUpdated      = "project_updated"
	NotificationInvoiceSent         = "invoice_sent"
	NotificationInvoicePaid         = "invoice_paid"
	NotificationPaymentReceived     = "payment_received"
	NotificationDeadlineApproaching = "deadline_approaching"
	NotificationTeamMention         = "team_mention"
	NotificationSystem              = "system"
)

var NotificationTypes = []string{
	NotificationTaskAssigned,
	NotificationTaskCompleted,
	NotificationProjectUpdated,
	NotificationInvoiceSent,
	NotificationInvoicePaid,
	NotificationPaymentReceived,
	NotificationDeadlineApproaching,
	NotificationTeamMention,
	NotificationSystem,
}

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const (
	FrequencyRealTime = "real_time"
	FrequencyHourly   = "hourly"
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
)

const (
	ChannelEmail   = "email"
	ChannelBrowser = "browser"
	ChannelWebhook = "webhook"
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

// ValidNotificationType reports whether t is one of the known event kinds.
func ValidNotificationType(t string) bool {
	for _, known := range NotificationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is a known priority level.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidFrequency reports whether f is a known digest frequency.
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyRealTime, FrequencyHourly, FrequencyDaily, FrequencyWeekly:
		return true
	}
	return false
}
