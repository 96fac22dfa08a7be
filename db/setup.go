package db

import (
	"github.com/managio-dev/managio/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Organization{},
		&models.Membership{},
		&models.Department{},
		&models.Client{},
		&models.Project{},
		&models.Task{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.TimeLog{},
		&models.Template{},
		&models.Notification{},
		&models.NotificationDelivery{},
		&models.NotificationPreferences{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
