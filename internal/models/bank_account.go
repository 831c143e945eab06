package models

import "gorm.io/gorm"

// Bank account types accepted on landlord payout accounts.
const (
	AccountTypeCheque       = "cheque"
	AccountTypeSavings      = "savings"
	AccountTypeTransmission = "transmission"
)

// BankAccount is a payout account attached to a landlord.
type BankAccount struct {
	gorm.Model
	LandlordID    uint      `gorm:"not null;index" json:"landlord_id"`
	Landlord      *Landlord `gorm:"foreignKey:LandlordID" json:"landlord,omitempty"`
	BankName      string    `gorm:"not null" json:"bank_name"`
	BranchCode    string    `json:"branch_code"`
	AccountNumber string    `gorm:"not null" json:"account_number"`
	AccountType   string    `gorm:"default:'cheque'" json:"account_type"`
	Primary       bool      `json:"primary"`
}
