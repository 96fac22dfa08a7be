package models

import (
	"time"

	"gorm.io/gorm"
)

type TimeLog struct {
	gorm.Model

	UserID      uint  `gorm:"not null;index"`
	ProjectID   uint  `gorm:"not null;index"`
	TaskID      *uint `gorm:"index"`
	Date        time.Time `gorm:"not null;index"`
	StartTime   time.Time `gorm:"not null"`
	EndTime     *time.Time
	DurationMin int
	// No database-side default: gorm omits zero-valued columns on insert
	// when one is set, which would silently turn false into true. Callers
	// that want the billable default set it explicitly.
	IsBillable  bool
	Description string

	// Relationships
	User    User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Project Project  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Task    *Task    `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}
