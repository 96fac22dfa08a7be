package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Template struct {
	gorm.Model

	OrganizationID uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Kind           string `gorm:"not null"` // "project", "invoice", "email"
	Body           datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
