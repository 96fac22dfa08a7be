package models

import "gorm.io/gorm"

type Client struct {
	gorm.Model

	OrganizationID uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Company        string
	Email          string
	Phone          string
	Address        string
	Notes          string
	Status         string `gorm:"not null;default:active"` // "active", "archived"

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Projects     []Project    `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Invoices     []Invoice    `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
