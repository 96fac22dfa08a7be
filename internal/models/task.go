package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	AssigneeID  *uint  `gorm:"index"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:todo"`   // "todo", "in_progress", "review", "done"
	Priority    string `gorm:"not null;default:normal"` // "low", "normal", "high", "urgent"
	DueDate     *time.Time
	EstimateMin int
	CompletedAt *time.Time

	// Set once the approaching-deadline reminder has gone out, so repeated
	// sweeps do not re-notify the same task.
	DeadlineNotifiedAt *time.Time

	// Relationships
	Project  Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee *User     `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	TimeLogs []TimeLog `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
