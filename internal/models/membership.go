package models

import "gorm.io/gorm"

type Membership struct {
	gorm.Model

	UserID         uint   `gorm:"not null;uniqueIndex:idx_user_organization"`
	OrganizationID uint   `gorm:"not null;uniqueIndex:idx_user_organization"`
	Role           string `gorm:"not null"` // "owner", "admin", "member"
	DepartmentID   *uint  `gorm:"index"`

	// Relationships
	User         User        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Department   *Department  `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
