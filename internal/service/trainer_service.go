package service

import (
	"context"
	"errors"
	"time"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/repository"
)

var ErrTrainerNotFound = errors.New("trainer not found")

type TrainerService interface {
	List(ctx context.Context) ([]models.Trainer, error)
	Classes(ctx context.Context, trainerID uint) ([]models.Class, error)
	Bookings(ctx context.Context, trainerID uint) ([]models.Booking, error)
	UpcomingBookings(ctx context.Context, trainerID uint) ([]models.Booking, error)
}

type trainerService struct {
	staff    repository.StaffRepository
	classes  repository.ClassRepository
	bookings repository.BookingRepository
}

func NewTrainerService(
	staff repository.StaffRepository,
	classes repository.ClassRepository,
	bookings repository.BookingRepository,
) TrainerService {
	return &trainerService{staff: staff, classes: classes, bookings: bookings}
}

func (s *trainerService) List(ctx context.Context) ([]models.Trainer, error) {
	return s.staff.FindTrainers(ctx)
}

func (s *trainerService) Classes(ctx context.Context, trainerID uint) ([]models.Class, error) {
	if err := s.requireTrainer(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.classes.FindByTrainerWithRoster(ctx, trainerID)
}

func (s *trainerService) Bookings(ctx context.Context, trainerID uint) ([]models.Booking, error) {
	if err := s.requireTrainer(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.bookings.FindByTrainer(ctx, trainerID)
}

// UpcomingBookings returns non-cancelled bookings whose session time is at
// or after now, chronologically ascending.
func (s *trainerService) UpcomingBookings(ctx context.Context, trainerID uint) ([]models.Booking, error) {
	if err := s.requireTrainer(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.bookings.FindUpcomingByTrainer(ctx, trainerID, time.Now())
}

func (s *trainerService) requireTrainer(ctx context.Context, trainerID uint) error {
	exists, err := s.staff.TrainerExists(ctx, trainerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTrainerNotFound
	}
	return nil
}
