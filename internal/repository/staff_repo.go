package repository

import (
	"context"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"gorm.io/gorm"
)

type StaffRepository interface {
	CreateEmployee(ctx context.Context, tx *gorm.DB, employee *models.Employee) error
	CreateTrainer(ctx context.Context, tx *gorm.DB, trainer *models.Trainer) error
	FindEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
	FindTrainers(ctx context.Context) ([]models.Trainer, error)
	TrainerExists(ctx context.Context, employeeID uint) (bool, error)
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) CreateEmployee(ctx context.Context, tx *gorm.DB, employee *models.Employee) error {
	return tx.WithContext(ctx).Create(employee).Error
}

func (r *staffRepository) CreateTrainer(ctx context.Context, tx *gorm.DB, trainer *models.Trainer) error {
	return tx.WithContext(ctx).Create(trainer).Error
}

func (r *staffRepository) FindEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Preload("Trainer").
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *staffRepository) FindTrainers(ctx context.Context) ([]models.Trainer, error) {
	var trainers []models.Trainer
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("employee_id ASC").
		Find(&trainers).Error
	if err != nil {
		return nil, err
	}
	return trainers, nil
}

func (r *staffRepository) TrainerExists(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Trainer{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
