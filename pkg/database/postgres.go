package database

import (
	"log"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	return db
}

// Migrate creates the schema and the supporting indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Employee{},
		&models.Trainer{},
		&models.Pet{},
		&models.Class{},
		&models.Booking{},
		&models.AuthSession{},
	); err != nil {
		return err
	}

	// Covers the trainer dashboard's upcoming-bookings query.
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_session
		ON bookings (session_at, status)
	`).Error
}
