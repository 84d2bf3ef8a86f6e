package models

import "time"

type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"type:varchar(32)" json:"phone"`
	Position     string    `json:"position"`
	HireDate     time.Time `json:"hire_date"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Trainer *Trainer `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"trainer,omitempty"`
}

// Trainer is a one-to-one extension of an Employee record. Its primary key
// is the owning employee's id, and classes reference trainers through it.
type Trainer struct {
	EmployeeID  uint   `gorm:"primaryKey" json:"employee_id"`
	HourlyRate  int    `json:"hourly_rate"`
	Specialties string `json:"specialties"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Classes  []Class   `gorm:"foreignKey:TrainerID;references:EmployeeID" json:"classes,omitempty"`
}
