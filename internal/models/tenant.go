package models

import "gorm.io/gorm"

// Tenant represents a person renting a property.
type Tenant struct {
	gorm.Model
	FirstName      string  `gorm:"not null" json:"first_name"`
	LastName       string  `gorm:"not null" json:"last_name"`
	Email          string  `gorm:"not null" json:"email"`
	Phone          string  `json:"phone"`
	IDNumber       string  `gorm:"column:id_number" json:"id_number"`
	Employer       string  `json:"employer"`
	MonthlyIncome  float64 `gorm:"type:decimal(12,2)" json:"monthly_income"`
	EmergencyName  string  `json:"emergency_name"`
	EmergencyPhone string  `json:"emergency_phone"`
}
