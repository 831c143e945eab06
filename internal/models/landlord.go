package models

import "gorm.io/gorm"

// Landlord represents a property owner managed through the dashboard.
type Landlord struct {
	gorm.Model
	FirstName    string        `gorm:"not null" json:"first_name"`
	LastName     string        `gorm:"not null" json:"last_name"`
	Email        string        `gorm:"not null" json:"email"`
	Phone        string        `json:"phone"`
	IDNumber     string        `gorm:"column:id_number" json:"id_number"`
	Notes        string        `json:"notes"`
	Properties   []Property    `gorm:"foreignKey:LandlordID" json:"properties,omitempty"`
	BankAccounts []BankAccount `gorm:"foreignKey:LandlordID" json:"bank_accounts,omitempty"`
}
