package dto

import (
	"time"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/service"
)

// CustomerProfile is the credential-free view of an account.
type CustomerProfile struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Role       string `json:"role"`
	EmployeeID *uint  `json:"employee_id,omitempty"`
}

// AuthResponse wraps a profile under "user"; login additionally carries the
// issued session token.
type AuthResponse struct {
	User      CustomerProfile `json:"user"`
	Token     string          `json:"token,omitempty"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToCustomerProfile(p *service.Profile) CustomerProfile {
	return CustomerProfile{
		ID:         p.Customer.ID,
		FirstName:  p.Customer.FirstName,
		LastName:   p.Customer.LastName,
		Email:      p.Customer.Email,
		Phone:      p.Customer.Phone,
		Address:    p.Customer.Address,
		Role:       p.Role,
		EmployeeID: p.EmployeeID,
	}
}

func ToAuthResponse(p *service.Profile, session *models.AuthSession) AuthResponse {
	resp := AuthResponse{User: ToCustomerProfile(p)}
	if session != nil {
		resp.Token = session.Token
		resp.ExpiresAt = &session.ExpiresAt
	}
	return resp
}
