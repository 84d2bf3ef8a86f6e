package service

import (
	"context"
	"errors"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrClassNotFound   = errors.New("class not found")
	ErrClassIDMismatch = errors.New("class id does not match request path")
)

type ClassService interface {
	List(ctx context.Context, q repository.ClassQuery) ([]models.Class, error)
	Get(ctx context.Context, id uint) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, id uint, class *models.Class) error
	Delete(ctx context.Context, id uint) error
	ListByTrainer(ctx context.Context, trainerID uint) ([]models.Class, error)
}

type classService struct {
	classes repository.ClassRepository
}

func NewClassService(classes repository.ClassRepository) ClassService {
	return &classService{classes: classes}
}

func (s *classService) List(ctx context.Context, q repository.ClassQuery) ([]models.Class, error) {
	return s.classes.FindAll(ctx, q)
}

func (s *classService) Get(ctx context.Context, id uint) (*models.Class, error) {
	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

func (s *classService) Create(ctx context.Context, class *models.Class) error {
	return s.classes.Create(ctx, class)
}

func (s *classService) Update(ctx context.Context, id uint, class *models.Class) error {
	if class.ID != id {
		return ErrClassIDMismatch
	}
	exists, err := s.classes.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrClassNotFound
	}

	rows, err := s.classes.Save(ctx, class)
	if err != nil {
		return err
	}
	// Row deleted between the existence check and the write.
	if rows == 0 {
		return ErrClassNotFound
	}
	return nil
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	exists, err := s.classes.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrClassNotFound
	}
	return s.classes.Delete(ctx, id)
}

func (s *classService) ListByTrainer(ctx context.Context, trainerID uint) ([]models.Class, error) {
	return s.classes.FindByTrainer(ctx, trainerID)
}
