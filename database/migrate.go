package database

import (
	"gorm.io/gorm"

	"chatlink_backend/internal/models"
)

// Migrate applies the schema for every model. Order matters for the
// foreign key references.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Contact{},
		&models.Message{},
		&models.Notification{},
	)
}
