package repository

import (
	"context"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"gorm.io/gorm"
)

type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	FindByID(ctx context.Context, id uint) (*models.Pet, error)
	FindAll(ctx context.Context) ([]models.Pet, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]models.Pet, error)
}

type petRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

func (r *petRepository) FindByID(ctx context.Context, id uint) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.WithContext(ctx).First(&pet, id).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) FindAll(ctx context.Context) ([]models.Pet, error) {
	var pets []models.Pet
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("id ASC").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) FindByCustomer(ctx context.Context, customerID uint) ([]models.Pet, error) {
	var pets []models.Pet
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Preload("Customer").
		Order("id ASC").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}
