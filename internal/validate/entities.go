package validate

import (
	"github.com/khayaprop/khaya/internal/models"
)

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Landlord validates a landlord record.
func Landlord(l *models.Landlord) Errors {
	e := Errors{}
	e.Require("first_name", l.FirstName)
	e.Require("last_name", l.LastName)
	e.Require("email", l.Email)
	e.Check("email", Email(l.Email), "must be a valid email address")
	if l.Phone != "" {
		e.Check("phone", Phone(l.Phone), "must be a valid SA phone number")
	}
	if l.IDNumber != "" {
		e.Check("id_number", IDNumber(l.IDNumber), "must be a valid 13-digit ID number")
	}
	return e
}

// BankAccount validates a landlord bank account.
func BankAccount(b *models.BankAccount) Errors {
	e := Errors{}
	if b.LandlordID == 0 {
		e["landlord_id"] = "is required"
	}
	e.Require("bank_name", b.BankName)
	e.Require("account_number", b.AccountNumber)
	if b.BranchCode != "" {
		e.Check("branch_code", BranchCode(b.BranchCode), "must be a 6-digit branch code")
	}
	e.Check("account_type", oneOf(b.AccountType,
		models.AccountTypeCheque, models.AccountTypeSavings, models.AccountTypeTransmission),
		"must be cheque, savings or transmission")
	return e
}

// Property validates a property record.
func Property(p *models.Property) Errors {
	e := Errors{}
	if p.LandlordID == 0 {
		e["landlord_id"] = "is required"
	}
	e.Require("name", p.Name)
	e.Check("type", oneOf(p.Type,
		models.PropertyTypeHouse, models.PropertyTypeApartment, models.PropertyTypeTownhouse,
		models.PropertyTypeCommercial, models.PropertyTypeComplex),
		"must be a known property type")
	e.Check("status", oneOf(p.Status,
		models.PropertyStatusVacant, models.PropertyStatusOccupied, models.PropertyStatusMaintenance),
		"must be vacant, occupied or maintenance")
	if p.Province != "" {
		e.Check("province", Province(p.Province), "must be one of the nine provinces")
	}
	if p.PostalCode != "" {
		e.Check("postal_code", PostalCode(p.PostalCode), "must be a 4-digit postal code")
	}
	e.Check("monthly_rent", p.MonthlyRent >= 0, "must not be negative")
	e.Check("bedrooms", p.Bedrooms >= 0, "must not be negative")
	e.Check("bathrooms", p.Bathrooms >= 0, "must not be negative")
	return e
}

// Tenant validates a tenant record.
func Tenant(t *models.Tenant) Errors {
	e := Errors{}
	e.Require("first_name", t.FirstName)
	e.Require("last_name", t.LastName)
	e.Require("email", t.Email)
	e.Check("email", Email(t.Email), "must be a valid email address")
	if t.Phone != "" {
		e.Check("phone", Phone(t.Phone), "must be a valid SA phone number")
	}
	if t.IDNumber != "" {
		e.Check("id_number", IDNumber(t.IDNumber), "must be a valid 13-digit ID number")
	}
	e.Check("monthly_income", t.MonthlyIncome >= 0, "must not be negative")
	return e
}

// Lease validates a lease record.
func Lease(l *models.Lease) Errors {
	e := Errors{}
	if l.PropertyID == 0 {
		e["property_id"] = "is required"
	}
	if l.TenantID == 0 {
		e["tenant_id"] = "is required"
	}
	if l.StartDate.IsZero() {
		e["start_date"] = "is required"
	}
	if l.EndDate.IsZero() {
		e["end_date"] = "is required"
	} else if !l.StartDate.IsZero() {
		e.Check("end_date", l.EndDate.After(l.StartDate), "must be after start date")
	}
	e.Check("monthly_rent", l.MonthlyRent >= 0, "must not be negative")
	e.Check("deposit_amount", l.DepositAmount >= 0, "must not be negative")
	e.Check("escalation_pct", l.EscalationPct >= 0 && l.EscalationPct <= 100, "must be between 0 and 100")
	e.Check("payment_day_of_month", l.PaymentDayOfMonth >= 1 && l.PaymentDayOfMonth <= 28, "must be between 1 and 28")
	e.Check("status", oneOf(l.Status,
		models.LeaseStatusPending, models.LeaseStatusActive,
		models.LeaseStatusExpired, models.LeaseStatusTerminated),
		"must be a known lease status")
	return e
}

// MaintenanceItem validates a maintenance record.
func MaintenanceItem(m *models.MaintenanceItem) Errors {
	e := Errors{}
	if m.PropertyID == 0 {
		e["property_id"] = "is required"
	}
	e.Require("title", m.Title)
	e.Check("category", oneOf(m.Category,
		models.MaintenanceCategoryPlumbing, models.MaintenanceCategoryElectrical,
		models.MaintenanceCategoryStructural, models.MaintenanceCategoryAppliance,
		models.MaintenanceCategoryGarden, models.MaintenanceCategoryOther),
		"must be a known category")
	e.Check("priority", oneOf(m.Priority,
		models.MaintenancePriorityLow, models.MaintenancePriorityMedium,
		models.MaintenancePriorityHigh, models.MaintenancePriorityUrgent),
		"must be a known priority")
	e.Check("status", oneOf(m.Status,
		models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress,
		models.MaintenanceStatusCompleted, models.MaintenanceStatusCancelled),
		"must be a known status")
	e.Check("quote_amount", m.QuoteAmount >= 0, "must not be negative")
	e.Check("actual_cost", m.ActualCost >= 0, "must not be negative")
	return e
}

// Invoice validates an invoice record.
func Invoice(i *models.Invoice) Errors {
	e := Errors{}
	if i.LeaseID == 0 {
		e["lease_id"] = "is required"
	}
	e.Require("number", i.Number)
	e.Check("amount", i.Amount >= 0, "must not be negative")
	if i.DueDate.IsZero() {
		e["due_date"] = "is required"
	}
	e.Check("status", oneOf(i.Status,
		models.InvoiceStatusDraft, models.InvoiceStatusSent,
		models.InvoiceStatusPaid, models.InvoiceStatusOverdue),
		"must be a known invoice status")
	return e
}

// Payment validates a payment record.
func Payment(p *models.Payment) Errors {
	e := Errors{}
	if p.LeaseID == 0 {
		e["lease_id"] = "is required"
	}
	e.Check("amount", p.Amount > 0, "must be positive")
	e.Require("reference", p.Reference)
	if p.PaidAt.IsZero() {
		e["paid_at"] = "is required"
	}
	e.Check("method", oneOf(p.Method,
		models.PaymentMethodEFT, models.PaymentMethodCash,
		models.PaymentMethodCard, models.PaymentMethodDebitOrder),
		"must be a known payment method")
	return e
}
