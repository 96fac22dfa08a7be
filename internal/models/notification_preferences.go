package models

import "gorm.io/gorm"

// NotificationPreferences is one row per user, created with defaults on first
// access and fully overwritten on every save.
type NotificationPreferences struct {
	gorm.Model

	UserID uint `gorm:"not null;uniqueIndex"`

	// The toggles carry no database-side defaults: gorm omits zero-valued
	// columns on insert when one is set, so a row created with a toggle off
	// would come back on. Defaults live in DefaultPreferences instead.
	EmailEnabled   bool
	BrowserEnabled bool

	// Per event category toggles, matching Notification.Type.
	TaskAssigned        bool
	TaskCompleted       bool
	ProjectUpdated      bool
	InvoiceSent         bool
	InvoicePaid         bool
	PaymentReceived     bool
	DeadlineApproaching bool
	TeamMention         bool
	System              bool

	Frequency string `gorm:"not null;default:real_time"` // "real_time", "hourly", "daily", "weekly"

	QuietHoursEnabled bool
	QuietHoursStart   string // "HH:MM", meaningful only when enabled
	QuietHoursEnd     string

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

// TypeEnabled reports whether the given notification type is switched on.
// Unknown types default to enabled so new event kinds are not silently lost.
func (p *NotificationPreferences) TypeEnabled(notificationType string) bool {
	switch notificationType {
	case "task_assigned":
		return p.TaskAssigned
	case "task_completed":
		return p.TaskCompleted
	case "project_updated":
		return p.ProjectUpdated
	case "invoice_sent":
		return p.InvoiceSent
	case "invoice_paid":
		return p.InvoicePaid
	case "payment_received":
		return p.PaymentReceived
	case "deadline_approaching":
		return p.DeadlineApproaching
	case "team_mention":
		return p.TeamMention
	case "system":
		return p.System
	default:
		return true
	}
}

// DefaultPreferences returns the row shape used on first access.
func DefaultPreferences(userID uint) NotificationPreferences {
	return NotificationPreferences{
		UserID:              userID,
		EmailEnabled:        true,
		BrowserEnabled:      true,
		TaskAssigned:        true,
		TaskCompleted:       true,
		ProjectUpdated:      true,
		InvoiceSent:         true,
		InvoicePaid:         true,
		PaymentReceived:     true,
		DeadlineApproaching: true,
		TeamMention:         true,
		System:              true,
		Frequency:           "real_time",
	}
}
