package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice billing states.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Invoice bills a lease for a rental period.
type Invoice struct {
	gorm.Model
	LeaseID     uint      `gorm:"not null;index" json:"lease_id"`
	Lease       *Lease    `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
	Number      string    `gorm:"uniqueIndex;not null" json:"number"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Amount      float64   `gorm:"type:decimal(12,2)" json:"amount"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `gorm:"default:'draft';index" json:"status"`
}
