package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	OrganizationID uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Description    string
	ClientID       *uint  `gorm:"index"`
	DepartmentID   *uint  `gorm:"index"`
	Status         string `gorm:"not null;default:planning"` // "planning", "active", "on_hold", "completed", "cancelled"
	StartDate      *time.Time
	DueDate        *time.Time
	BudgetCents    int64

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Client       *Client      `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Department   *Department  `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Tasks        []Task       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	TimeLogs     []TimeLog    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
