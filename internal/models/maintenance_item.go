package models

import (
	"time"

	"gorm.io/gorm"
)

// Maintenance categories and priorities from the reporting form.
const (
	MaintenanceCategoryPlumbing   = "plumbing"
	MaintenanceCategoryElectrical = "electrical"
	MaintenanceCategoryStructural = "structural"
	MaintenanceCategoryAppliance  = "appliance"
	MaintenanceCategoryGarden     = "garden"
	MaintenanceCategoryOther      = "other"

	MaintenancePriorityLow    = "low"
	MaintenancePriorityMedium = "medium"
	MaintenancePriorityHigh   = "high"
	MaintenancePriorityUrgent = "urgent"

	MaintenanceStatusOpen       = "open"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
	MaintenanceStatusCancelled  = "cancelled"
)

// MaintenanceItem is a reported issue against a property.
type MaintenanceItem struct {
	gorm.Model
	PropertyID  uint       `gorm:"not null;index" json:"property_id"`
	Property    *Property  `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Category    string     `gorm:"default:'other'" json:"category"`
	Priority    string     `gorm:"default:'medium';index" json:"priority"`
	Status      string     `gorm:"default:'open';index" json:"status"`
	ReportedAt  time.Time  `json:"reported_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	QuoteAmount float64    `gorm:"type:decimal(12,2)" json:"quote_amount"`
	ActualCost  float64    `gorm:"type:decimal(12,2)" json:"actual_cost"`
}
