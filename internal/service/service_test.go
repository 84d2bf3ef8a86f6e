package service

import (
	"testing"
	"time"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/repository"
	"github.com/odwoodruff/pet-training-service/pkg/database"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// Connections are capped at one so every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, email string) *models.Customer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	customer := &models.Customer{
		FirstName:    "Ada",
		LastName:     "Owner",
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedTrainer(t *testing.T, db *gorm.DB, email string) *models.Trainer {
	t.Helper()
	employee := &models.Employee{
		FirstName: "Tess",
		LastName:  "Handler",
		Email:     email,
		Position:  RoleTrainer,
		HireDate:  time.Now(),
	}
	require.NoError(t, db.Create(employee).Error)
	trainer := &models.Trainer{EmployeeID: employee.ID, HourlyRate: 40, Specialties: "Obedience"}
	require.NoError(t, db.Create(trainer).Error)
	return trainer
}

func seedClass(t *testing.T, db *gorm.DB, trainerID uint, name string, price float64, startsAt time.Time) *models.Class {
	t.Helper()
	class := &models.Class{
		Name:      name,
		Type:      "Obedience",
		StartsAt:  startsAt,
		EndsAt:    startsAt.Add(time.Hour),
		Price:     price,
		Capacity:  10,
		TrainerID: trainerID,
	}
	require.NoError(t, db.Create(class).Error)
	return class
}

func seedPet(t *testing.T, db *gorm.DB, customerID uint, name string) *models.Pet {
	t.Helper()
	pet := &models.Pet{
		Name:       name,
		Species:    "Dog",
		Breed:      "Corgi",
		CustomerID: customerID,
	}
	require.NoError(t, db.Create(pet).Error)
	return pet
}

func timeNowPlus(t *testing.T, hours int) time.Time {
	t.Helper()
	return time.Now().Add(time.Duration(hours) * time.Hour)
}

func newBookingServiceFor(db *gorm.DB) BookingService {
	return NewBookingService(
		repository.NewBookingRepository(db),
		repository.NewClassRepository(db),
		repository.NewPetRepository(db),
	)
}

func newAuthServiceFor(db *gorm.DB) AuthService {
	return NewAuthService(
		repository.NewCustomerRepository(db),
		repository.NewStaffRepository(db),
		repository.NewAuthSessionRepository(db),
		time.Hour,
	)
}
