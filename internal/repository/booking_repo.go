package repository

import (
	"context"
	"time"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"gorm.io/gorm"
)

// BookingQuery carries the filter and sort parameters for booking list
// queries. Nil pointer fields mean "no predicate".
type BookingQuery struct {
	CustomerID *uint
	Status     *models.BookingStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// Whitelist of sortable columns; unknown sort keys deliberately fall back
// to the default session-date ordering instead of erroring.
var bookingSortColumns = map[string]string{
	"date":   "bookings.session_at",
	"status": "bookings.status",
	"price":  "classes.price",
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDInTx(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindAll(ctx context.Context, q BookingQuery) ([]models.Booking, error)
	FindByTrainer(ctx context.Context, trainerID uint) ([]models.Booking, error)
	FindUpcomingByTrainer(ctx context.Context, trainerID uint, now time.Time) ([]models.Booking, error)
	Save(ctx context.Context, booking *models.Booking) (int64, error)
	Delete(ctx context.Context, id uint) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus, notes *string) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return r.FindByIDInTx(ctx, r.db, id)
}

func (r *bookingRepository) FindByIDInTx(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Preload("Customer").
		Preload("Pet").
		Preload("Class.Trainer.Employee").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, q BookingQuery) ([]models.Booking, error) {
	db := r.db.WithContext(ctx).Model(&models.Booking{}).
		Preload("Customer").
		Preload("Pet").
		Preload("Class.Trainer.Employee")

	if q.CustomerID != nil {
		db = db.Where("bookings.customer_id = ?", *q.CustomerID)
	}
	if q.Status != nil {
		db = db.Where("bookings.status = ?", *q.Status)
	}
	if q.StartDate != nil {
		db = db.Where("bookings.session_at >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		db = db.Where("bookings.session_at <= ?", *q.EndDate)
	}

	col, ok := bookingSortColumns[q.SortBy]
	if !ok {
		col = "bookings.session_at"
	}
	if col == "classes.price" {
		db = db.Joins("JOIN classes ON classes.id = bookings.class_id")
	}
	dir := "DESC"
	if q.SortOrder == "asc" {
		dir = "ASC"
	}
	// Tie-break follows the sort direction, matching the class list query.
	db = db.Order(col + " " + dir).Order("bookings.id " + dir)

	var bookings []models.Booking
	if err := db.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByTrainer(ctx context.Context, trainerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Joins("JOIN classes ON classes.id = bookings.class_id").
		Where("classes.trainer_id = ?", trainerID).
		Preload("Pet.Customer").
		Preload("Class.Trainer.Employee").
		Order("bookings.created_at DESC").Order("bookings.id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindUpcomingByTrainer(ctx context.Context, trainerID uint, now time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Joins("JOIN classes ON classes.id = bookings.class_id").
		Where("classes.trainer_id = ? AND bookings.session_at >= ? AND bookings.status <> ?",
			trainerID, now, models.StatusCancelled).
		Preload("Pet.Customer").
		Preload("Class.Trainer.Employee").
		Order("bookings.session_at ASC").Order("bookings.id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// Save performs a full-row replace and reports affected rows so callers can
// detect a row deleted between their existence check and the write.
func (r *bookingRepository) Save(ctx context.Context, booking *models.Booking) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(booking).
		Select("*").
		Omit("id", "created_at").
		Updates(booking)
	return res.RowsAffected, res.Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus, notes *string) error {
	updates := map[string]any{"status": status}
	if notes != nil && *notes != "" {
		updates["notes"] = *notes
	}
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}
