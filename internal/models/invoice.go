package models

import (
	"time"

	"gorm.io/gorm"
)

type Invoice struct {
	gorm.Model

	OrganizationID uint   `gorm:"not null;index"`
	ClientID       uint   `gorm:"not null;index"`
	ProjectID      *uint  `gorm:"index"`
	Number         string `gorm:"uniqueIndex;not null"`
	Status         string `gorm:"not null;default:draft"` // "draft", "sent", "paid", "overdue", "cancelled"
	IssueDate      time.Time
	DueDate        time.Time
	TotalCents     int64 // derived from items, recomputed on every write
	Notes          string
	PaidAt         *time.Time

	// Relationships
	Organization Organization  `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Client       Client        `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project      *Project      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Items        []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type InvoiceItem struct {
	gorm.Model

	InvoiceID      uint   `gorm:"not null;index"`
	Description    string `gorm:"not null"`
	Quantity       int    `gorm:"not null;default:1"`
	UnitPriceCents int64  `gorm:"not null"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
