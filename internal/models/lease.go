package models

import (
	"time"

	"gorm.io/gorm"
)

// Lease lifecycle states.
const (
	LeaseStatusPending    = "pending"
	LeaseStatusActive     = "active"
	LeaseStatusExpired    = "expired"
	LeaseStatusTerminated = "terminated"
)

// Lease binds a tenant to a property for a period at an agreed rent.
type Lease struct {
	gorm.Model
	PropertyID        uint      `gorm:"not null;index" json:"property_id"`
	Property          *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	TenantID          uint      `gorm:"not null;index" json:"tenant_id"`
	Tenant            *Tenant   `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	StartDate         time.Time `gorm:"not null" json:"start_date"`
	EndDate           time.Time `gorm:"not null" json:"end_date"`
	MonthlyRent       float64   `gorm:"type:decimal(12,2)" json:"monthly_rent"`
	DepositAmount     float64   `gorm:"type:decimal(12,2)" json:"deposit_amount"`
	EscalationPct     float64   `json:"escalation_pct"`
	PaymentDayOfMonth int       `gorm:"default:1" json:"payment_day_of_month"`
	Status            string    `gorm:"default:'pending';index" json:"status"`
}
