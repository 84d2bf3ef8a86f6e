package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from s to next.
// Same-state writes are allowed so repeated cancel/confirm calls stay
// idempotent. Completed and Cancelled are terminal.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

type Booking struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CustomerID    uint          `gorm:"not null;index" json:"customer_id"`
	PetID         uint          `gorm:"not null;index" json:"pet_id"`
	ClassID       uint          `gorm:"not null;index" json:"class_id"`
	SessionAt     time.Time     `gorm:"not null" json:"session_at"`
	Status        BookingStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	PaymentMethod string        `gorm:"type:varchar(40)" json:"payment_method"`
	Notes         string        `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer,omitempty"`
	Pet      *Pet      `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE" json:"pet,omitempty"`
	Class    *Class    `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"class,omitempty"`
}
