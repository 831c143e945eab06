package models

// ModelTypeRegistry lists every schema-managed model. Regenerate with
// `migrate register internal/models` after adding a model file.
var ModelTypeRegistry = map[string]interface{}{
	"BankAccount":     BankAccount{},
	"Invoice":         Invoice{},
	"Landlord":        Landlord{},
	"Lease":           Lease{},
	"MaintenanceItem": MaintenanceItem{},
	"Payment":         Payment{},
	"Property":        Property{},
	"Tenant":          Tenant{},
}
