package dto

import "time"

type RegisterRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	HourlyRate  int    `json:"hourly_rate"`
	Specialties string `json:"specialties"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LogoutRequest struct {
	Token string `json:"token"`
}

// UpdateProfileRequest fields are pointers so absent keys leave the stored
// values untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Password  *string `json:"password"`
}

type CreateBookingRequest struct {
	CustomerID    uint       `json:"customer_id"`
	PetID         uint       `json:"pet_id"`
	ClassID       uint       `json:"class_id"`
	SessionAt     *time.Time `json:"session_at"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	Notes         string     `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}
