package repository

import (
	"context"
	"strings"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"gorm.io/gorm"
)

// ClassQuery carries the filter and sort parameters for class list queries.
type ClassQuery struct {
	Search    string
	TrainerID *uint
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
}

// Whitelist of sortable columns; unknown sort keys deliberately fall back
// to the default id ordering instead of erroring.
var classSortColumns = map[string]string{
	"date":  "classes.starts_at",
	"price": "classes.price",
	"type":  "classes.type",
	"id":    "classes.id",
}

type ClassRepository interface {
	FindAll(ctx context.Context, q ClassQuery) ([]models.Class, error)
	FindByID(ctx context.Context, id uint) (*models.Class, error)
	FindByTrainer(ctx context.Context, trainerID uint) ([]models.Class, error)
	FindByTrainerWithRoster(ctx context.Context, trainerID uint) ([]models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Exists(ctx context.Context, id uint) (bool, error)
	Save(ctx context.Context, class *models.Class) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) FindAll(ctx context.Context, q ClassQuery) ([]models.Class, error) {
	db := r.db.WithContext(ctx).Model(&models.Class{}).Preload("Trainer.Employee")

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		db = db.
			Joins("JOIN trainers ON trainers.employee_id = classes.trainer_id").
			Joins("JOIN employees ON employees.id = trainers.employee_id").
			Where(
				"LOWER(classes.type) LIKE ? OR LOWER(classes.description) LIKE ? OR LOWER(employees.first_name) LIKE ? OR LOWER(employees.last_name) LIKE ?",
				pattern, pattern, pattern, pattern,
			)
	}
	if q.TrainerID != nil {
		db = db.Where("classes.trainer_id = ?", *q.TrainerID)
	}
	if q.MinPrice != nil {
		db = db.Where("classes.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("classes.price <= ?", *q.MaxPrice)
	}

	col, ok := classSortColumns[q.SortBy]
	if !ok {
		col = "classes.id"
	}
	dir := "ASC"
	if q.SortOrder == "desc" {
		dir = "DESC"
	}
	db = db.Order(col + " " + dir)
	if col != "classes.id" {
		// The tie-break follows the requested direction so a descending
		// sort is the exact mirror of the ascending one.
		db = db.Order("classes.id " + dir)
	}

	var classes []models.Class
	if err := db.Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) FindByID(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	err := r.db.WithContext(ctx).
		Preload("Trainer.Employee").
		First(&class, id).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) FindByTrainer(ctx context.Context, trainerID uint) ([]models.Class, error) {
	var classes []models.Class
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Preload("Trainer.Employee").
		Order("starts_at ASC").Order("id ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

// FindByTrainerWithRoster embeds each class's bookings with their pets and
// owners, for the trainer dashboard.
func (r *classRepository) FindByTrainerWithRoster(ctx context.Context, trainerID uint) ([]models.Class, error) {
	var classes []models.Class
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Preload("Trainer.Employee").
		Preload("Bookings.Pet.Customer").
		Order("starts_at ASC").Order("id ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Class{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *classRepository) Save(ctx context.Context, class *models.Class) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(class).
		Select("*").
		Omit("id", "created_at").
		Updates(class)
	return res.RowsAffected, res.Error
}

// Delete removes a class and its bookings in one transaction.
func (r *classRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Class{}, id).Error
	})
}
