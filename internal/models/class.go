package models

import "time"

// Class is a bookable training offering led by a trainer. The public API
// exposes classes under /api/sessions, so "session" in route names refers
// to this type.
type Class struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Type            string    `gorm:"not null;index" json:"type"`
	DifficultyLevel string    `gorm:"type:varchar(32)" json:"difficulty_level"`
	Location        string    `json:"location"`
	StartsAt        time.Time `gorm:"not null" json:"starts_at"`
	EndsAt          time.Time `gorm:"not null" json:"ends_at"`
	Price           float64   `gorm:"not null" json:"price"`
	Capacity        int       `gorm:"not null" json:"capacity"`
	TrainerID       uint      `gorm:"not null;index" json:"trainer_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Trainer  *Trainer  `gorm:"foreignKey:TrainerID;references:EmployeeID;constraint:OnDelete:CASCADE" json:"trainer,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ClassID" json:"bookings,omitempty"`
}
