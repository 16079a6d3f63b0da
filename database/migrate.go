package database

import (
	"fmt"

	"github.com/yeremiapane/littlelemon/models"
	"github.com/yeremiapane/littlelemon/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the application owns, including the
// slot uniqueness index on reservations.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Menu{},
		&models.Table{},
		&models.Reservation{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if !db.Migrator().HasIndex(&models.Reservation{}, "idx_reservation_slot") {
		return fmt.Errorf("auto migrate: reservation slot index is missing")
	}

	utils.InfoLogger.Info("AutoMigrate completed.")
	return nil
}
