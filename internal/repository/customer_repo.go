package repository

import (
	"context"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, customer *models.Customer) error
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Save(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) error
	GetDB() *gorm.DB
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *customerRepository) Create(ctx context.Context, tx *gorm.DB, customer *models.Customer) error {
	return tx.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Customer{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *customerRepository) Save(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes a customer together with their pets, bookings and login
// sessions in one transaction.
func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Pet{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.AuthSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Customer{}, id).Error
	})
}
