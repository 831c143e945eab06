package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment methods accepted on the capture form.
const (
	PaymentMethodEFT        = "eft"
	PaymentMethodCash       = "cash"
	PaymentMethodCard       = "card"
	PaymentMethodDebitOrder = "debit_order"
)

// Payment records money received against a lease, optionally settling a
// specific invoice.
type Payment struct {
	gorm.Model
	LeaseID   uint      `gorm:"not null;index" json:"lease_id"`
	Lease     *Lease    `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
	InvoiceID *uint     `gorm:"index" json:"invoice_id,omitempty"`
	Invoice   *Invoice  `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
	Amount    float64   `gorm:"type:decimal(12,2)" json:"amount"`
	Method    string    `gorm:"default:'eft'" json:"method"`
	PaidAt    time.Time `json:"paid_at"`
	Reference string    `gorm:"uniqueIndex;not null" json:"reference"`
}
