package service

import (
	"context"
	"errors"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/repository"
	"gorm.io/gorm"
)

type PetService interface {
	List(ctx context.Context) ([]models.Pet, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Pet, error)
	Create(ctx context.Context, pet *models.Pet) error
}

type petService struct {
	pets      repository.PetRepository
	customers repository.CustomerRepository
}

func NewPetService(pets repository.PetRepository, customers repository.CustomerRepository) PetService {
	return &petService{pets: pets, customers: customers}
}

func (s *petService) List(ctx context.Context) ([]models.Pet, error) {
	return s.pets.FindAll(ctx)
}

func (s *petService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Pet, error) {
	return s.pets.FindByCustomer(ctx, customerID)
}

// Create inserts a pet for an existing customer. Duplicate names per
// customer are allowed.
func (s *petService) Create(ctx context.Context, pet *models.Pet) error {
	if _, err := s.customers.FindByID(ctx, pet.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return s.pets.Create(ctx, pet)
}
