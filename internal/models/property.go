package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property types shown in the dashboard filters.
const (
	PropertyTypeHouse      = "house"
	PropertyTypeApartment  = "apartment"
	PropertyTypeTownhouse  = "townhouse"
	PropertyTypeCommercial = "commercial"
	PropertyTypeComplex    = "complex"
)

// Property occupancy states.
const (
	PropertyStatusVacant      = "vacant"
	PropertyStatusOccupied    = "occupied"
	PropertyStatusMaintenance = "maintenance"
)

// Property represents a rentable property. A sub-property references its
// parent through ParentPropertyID; top-level properties leave it nil.
type Property struct {
	gorm.Model
	LandlordID       uint           `gorm:"not null;index" json:"landlord_id"`
	Landlord         *Landlord      `gorm:"foreignKey:LandlordID" json:"landlord,omitempty"`
	ParentPropertyID *uint          `gorm:"index" json:"parent_property_id,omitempty"`
	ParentProperty   *Property      `gorm:"foreignKey:ParentPropertyID" json:"parent_property,omitempty"`
	Name             string         `gorm:"not null" json:"name"`
	UnitRef          string         `gorm:"index" json:"unit_ref"`
	Type             string         `gorm:"default:'house'" json:"type"`
	Street           string         `json:"street"`
	Suburb           string         `json:"suburb"`
	City             string         `json:"city"`
	Province         string         `json:"province"`
	PostalCode       string         `json:"postal_code"`
	Bedrooms         int            `json:"bedrooms"`
	Bathrooms        int            `json:"bathrooms"`
	SizeSqm          float64        `json:"size_sqm"`
	MonthlyRent      float64        `gorm:"type:decimal(12,2)" json:"monthly_rent"`
	Status           string         `gorm:"default:'vacant'" json:"status"`
	ImageURLs        datatypes.JSON `json:"image_urls,omitempty"`
	Description      string         `json:"description"`
}

// IsSubProperty reports whether the property belongs to a parent.
func (p *Property) IsSubProperty() bool {
	return p.ParentPropertyID != nil
}
