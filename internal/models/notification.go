package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model

	RecipientID uint   `gorm:"not null;index"`
	SenderID    *uint  `gorm:"index"`
	Type        string `gorm:"not null"` // see types.NotificationTypes
	Title       string `gorm:"not null"`
	Message     string
	Priority    string `gorm:"not null;default:normal"` // "low", "normal", "high", "urgent"
	ReadAt      *time.Time
	EntityType  string // "task", "project", "invoice", "client", "team_member"
	EntityID    *uint
	ExpiresAt   *time.Time

	// Relationships
	Recipient  User                     `gorm:"foreignKey:RecipientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Sender     *User                    `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Deliveries []NotificationDelivery   `gorm:"foreignKey:NotificationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// NotificationDelivery records the per-channel decision the dispatcher made
// for one notification. Transport itself happens downstream.
type NotificationDelivery struct {
	gorm.Model

	NotificationID uint   `gorm:"not null;index"`
	Channel        string `gorm:"not null"` // "email", "browser", "webhook"
	Status         string `gorm:"not null"` // "queued", "suppressed"
	Reason         string // "quiet_hours", "channel_disabled" when suppressed
	SentAt         *time.Time

	// Relationships
	Notification Notification `gorm:"foreignKey:NotificationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
