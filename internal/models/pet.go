package models

import "time"

type Pet struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Species    string    `json:"species"`
	Breed      string    `json:"breed"`
	Gender     string    `gorm:"type:varchar(16)" json:"gender"`
	BirthDate  time.Time `json:"birth_date"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer,omitempty"`
	Bookings []Booking `gorm:"foreignKey:PetID" json:"bookings,omitempty"`
}
