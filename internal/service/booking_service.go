package service

import (
	"context"
	"errors"
	"time"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingIDMismatch = errors.New("booking id does not match request path")
	ErrPetNotFound       = errors.New("pet not found")
	ErrPetNotOwned       = errors.New("pet does not belong to the booking customer")
	ErrInvalidStatus     = errors.New("unknown booking status")
	ErrInvalidTransition = errors.New("illegal booking status transition")
)

const defaultPaymentMethod = "Credit Card"

type BookingService interface {
	List(ctx context.Context, q repository.BookingQuery) ([]models.Booking, error)
	Get(ctx context.Context, id uint) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, id uint, booking *models.Booking) error
	Delete(ctx context.Context, id uint) error
	Cancel(ctx context.Context, id uint) (*models.Booking, error)
	Confirm(ctx context.Context, id uint) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uint, status models.BookingStatus, notes *string) (*models.Booking, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	classes  repository.ClassRepository
	pets     repository.PetRepository
}

func NewBookingService(
	bookings repository.BookingRepository,
	classes repository.ClassRepository,
	pets repository.PetRepository,
) BookingService {
	return &bookingService{bookings: bookings, classes: classes, pets: pets}
}

func (s *bookingService) List(ctx context.Context, q repository.BookingQuery) ([]models.Booking, error) {
	return s.bookings.FindAll(ctx, q)
}

func (s *bookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Create(ctx context.Context, booking *models.Booking) error {
	class, err := s.classes.FindByID(ctx, booking.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	if err := s.checkPetOwnership(ctx, booking); err != nil {
		return err
	}

	if booking.SessionAt.IsZero() {
		booking.SessionAt = class.StartsAt
	}
	if booking.Status == "" {
		booking.Status = models.StatusPending
	}
	if !booking.Status.Valid() {
		return ErrInvalidStatus
	}
	if booking.PaymentMethod == "" {
		booking.PaymentMethod = defaultPaymentMethod
	}
	// Booking-creation time is always server-set.
	booking.CreatedAt = time.Time{}
	booking.UpdatedAt = time.Time{}

	return s.bookings.Create(ctx, booking)
}

func (s *bookingService) Update(ctx context.Context, id uint, booking *models.Booking) error {
	if booking.ID != id {
		return ErrBookingIDMismatch
	}

	existing, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	if !booking.Status.Valid() {
		return ErrInvalidStatus
	}
	if !existing.Status.CanTransition(booking.Status) {
		return ErrInvalidTransition
	}
	if err := s.checkPetOwnership(ctx, booking); err != nil {
		return err
	}

	booking.CreatedAt = existing.CreatedAt
	rows, err := s.bookings.Save(ctx, booking)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id uint) error {
	if _, err := s.bookings.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	return s.bookings.Delete(ctx, id)
}

func (s *bookingService) Cancel(ctx context.Context, id uint) (*models.Booking, error) {
	return s.UpdateStatus(ctx, id, models.StatusCancelled, nil)
}

func (s *bookingService) Confirm(ctx context.Context, id uint) (*models.Booking, error) {
	return s.UpdateStatus(ctx, id, models.StatusConfirmed, nil)
}

// UpdateStatus applies a state-machine-checked status transition. Notes are
// only written when a non-empty value is provided.
func (s *bookingService) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus, notes *string) (*models.Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var result *models.Booking
	err := s.bookings.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookings.FindByIDInTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if !booking.Status.CanTransition(status) {
			return ErrInvalidTransition
		}

		if err := s.bookings.UpdateStatus(ctx, tx, id, status, notes); err != nil {
			return err
		}

		booking.Status = status
		if notes != nil && *notes != "" {
			booking.Notes = *notes
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *bookingService) checkPetOwnership(ctx context.Context, booking *models.Booking) error {
	pet, err := s.pets.FindByID(ctx, booking.PetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPetNotFound
		}
		return err
	}
	if booking.CustomerID == 0 {
		booking.CustomerID = pet.CustomerID
	}
	if pet.CustomerID != booking.CustomerID {
		return ErrPetNotOwned
	}
	return nil
}
