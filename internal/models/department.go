package models

import "gorm.io/gorm"

type Department struct {
	gorm.Model

	OrganizationID uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Description    string
	LeadID         *uint `gorm:"index"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Lead         *User        `gorm:"foreignKey:LeadID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Memberships  []Membership `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
