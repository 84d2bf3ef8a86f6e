package models

import "time"

type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"type:varchar(32)" json:"phone"`
	Address      string    `json:"address"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Pets     []Pet     `gorm:"foreignKey:CustomerID" json:"pets,omitempty"`
	Bookings []Booking `gorm:"foreignKey:CustomerID" json:"bookings,omitempty"`
}
