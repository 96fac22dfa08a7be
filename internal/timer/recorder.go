package timer

import (
	"time"

	"gorm.io/gorm"

	"github.com/managio-dev/managio/internal/models"
)

// GormRecorder writes timer sessions to the time_logs table.
type GormRecorder struct {
	db *gorm.DB
}

func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

func (r *GormRecorder) StartLog(userID, projectID uint, taskID *uint, start time.Time) (uint, error) {
	timeLog := models.TimeLog{
		UserID:     userID,
		ProjectID:  projectID,
		TaskID:     taskID,
		Date:       time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		StartTime:  start,
		IsBillable: true,
	}

	if err := r.db.Create(&timeLog).Error; err != nil {
		return 0, err
	}

	return timeLog.ID, nil
}

func (r *GormRecorder) StopLog(timeLogID uint, end time.Time, durationMin int, description string) error {
	updates := map[string]interface{}{
		"end_time":     end,
		"duration_min": durationMin,
	}

	if description != "" {
		updates["description"] = description
	}

	return r.db.Model(&models.TimeLog{}).Where("id = ?", timeLogID).Updates(updates).Error
}
