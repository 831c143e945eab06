package seed

import "fmt"

// Preset selects the size of the generated dataset.
type Preset string

const (
	// PresetMinimal seeds a handful of records for quick manual testing.
	PresetMinimal Preset = "minimal"
	// PresetDemo seeds a dataset large enough to exercise every dashboard
	// page, including pagination.
	PresetDemo Preset = "demo"
	// PresetLoad seeds enough rows to make slow queries visible.
	PresetLoad Preset = "load"
)

// Scale holds the record counts for a preset.
type Scale struct {
	Landlords           int
	PropertiesPer       int // top-level properties per landlord
	ComplexRatio        int // one in N properties is a complex with units
	UnitsPerComplex     int
	TenantFactor        int // tenants per landlord
	LeaseOccupancyPct   int // percentage of properties with a lease
	MaintenancePerLease int
}

// ParsePreset maps a preset name to its scale.
func ParsePreset(name string) (Scale, error) {
	switch Preset(name) {
	case PresetMinimal:
		return Scale{
			Landlords: 2, PropertiesPer: 2, ComplexRatio: 2, UnitsPerComplex: 3,
			TenantFactor: 2, LeaseOccupancyPct: 50, MaintenancePerLease: 1,
		}, nil
	case PresetDemo, "":
		return Scale{
			Landlords: 8, PropertiesPer: 4, ComplexRatio: 4, UnitsPerComplex: 6,
			TenantFactor: 4, LeaseOccupancyPct: 70, MaintenancePerLease: 2,
		}, nil
	case PresetLoad:
		return Scale{
			Landlords: 40, PropertiesPer: 8, ComplexRatio: 4, UnitsPerComplex: 10,
			TenantFactor: 8, LeaseOccupancyPct: 80, MaintenancePerLease: 3,
		}, nil
	default:
		return Scale{}, fmt.Errorf("unknown preset %q", name)
	}
}
