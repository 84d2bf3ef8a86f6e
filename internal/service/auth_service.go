package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrMissingFields      = errors.New("first name, email and password are required")
	ErrUnknownRole        = errors.New("unknown role")
	ErrSessionNotFound    = errors.New("session not found")
)

const (
	RoleCustomer = "Customer"
	RoleTrainer  = "Trainer"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	Password  string
	Role      string

	// Trainer-role extras.
	HourlyRate  int
	Specialties string
}

// UpdateProfileInput applies only non-nil fields.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Password  *string
}

// Profile pairs a customer with their resolved role and, for trainers, the
// linked employee id.
type Profile struct {
	Customer   *models.Customer
	Role       string
	EmployeeID *uint
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Profile, error)
	Login(ctx context.Context, email, password string) (*Profile, *models.AuthSession, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, id uint) (*Profile, error)
	UpdateProfile(ctx context.Context, id uint, in UpdateProfileInput) (*Profile, error)
	DeleteProfile(ctx context.Context, id uint) error
}

type authService struct {
	customers  repository.CustomerRepository
	staff      repository.StaffRepository
	sessions   repository.AuthSessionRepository
	sessionTTL time.Duration
}

func NewAuthService(
	customers repository.CustomerRepository,
	staff repository.StaffRepository,
	sessions repository.AuthSessionRepository,
	sessionTTL time.Duration,
) AuthService {
	return &authService{
		customers:  customers,
		staff:      staff,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*Profile, error) {
	if in.FirstName == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	role := in.Role
	if role == "" {
		role = RoleCustomer
	}
	if role != RoleCustomer && role != RoleTrainer {
		return nil, ErrUnknownRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &Profile{Role: role}

	// Customer plus optional trainer extension are created in a single
	// transaction so a failed step never leaves a half-registered account.
	err = s.customers.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.customers.EmailExists(ctx, tx, in.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		customer := &models.Customer{
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			Phone:        in.Phone,
			Address:      in.Address,
			PasswordHash: string(hash),
		}
		if err := s.customers.Create(ctx, tx, customer); err != nil {
			return err
		}
		profile.Customer = customer

		if role == RoleTrainer {
			employee := &models.Employee{
				FirstName:    in.FirstName,
				LastName:     in.LastName,
				Email:        in.Email,
				Phone:        in.Phone,
				Position:     RoleTrainer,
				HireDate:     time.Now(),
				PasswordHash: string(hash),
			}
			if err := s.staff.CreateEmployee(ctx, tx, employee); err != nil {
				return err
			}
			trainer := &models.Trainer{
				EmployeeID:  employee.ID,
				HourlyRate:  in.HourlyRate,
				Specialties: in.Specialties,
			}
			if err := s.staff.CreateTrainer(ctx, tx, trainer); err != nil {
				return err
			}
			profile.EmployeeID = &employee.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*Profile, *models.AuthSession, error) {
	customer, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password surface identically.
		return nil, nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session := &models.AuthSession{
		Token:      uuid.NewString(),
		CustomerID: customer.ID,
		ExpiresAt:  time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	profile, err := s.resolveProfile(ctx, customer)
	if err != nil {
		return nil, nil, err
	}
	return profile, session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if _, err := s.sessions.FindByToken(ctx, token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return s.sessions.DeleteByToken(ctx, token)
}

func (s *authService) GetProfile(ctx context.Context, id uint) (*Profile, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.resolveProfile(ctx, customer)
}

func (s *authService) UpdateProfile(ctx context.Context, id uint, in UpdateProfileInput) (*Profile, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if in.FirstName != nil {
		customer.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		customer.LastName = *in.LastName
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		customer.PasswordHash = string(hash)
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return s.resolveProfile(ctx, customer)
}

func (s *authService) DeleteProfile(ctx context.Context, id uint) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return s.customers.Delete(ctx, id)
}

// resolveProfile decides the account role by looking for a trainer
// extension registered under the same email. A missing staff record means
// a plain customer; any other lookup failure is propagated.
func (s *authService) resolveProfile(ctx context.Context, customer *models.Customer) (*Profile, error) {
	profile := &Profile{Customer: customer, Role: RoleCustomer}
	employee, err := s.staff.FindEmployeeByEmail(ctx, customer.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profile, nil
		}
		return nil, err
	}
	if employee.Trainer != nil {
		profile.Role = RoleTrainer
		profile.EmployeeID = &employee.ID
	}
	return profile, nil
}
