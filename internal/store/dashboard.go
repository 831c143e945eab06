package store

import (
	"context"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
)

// DashboardSummary backs the landing-page cards.
type DashboardSummary struct {
	Landlords            int64            `json:"landlords"`
	Properties           int64            `json:"properties"`
	Tenants              int64            `json:"tenants"`
	ActiveLeases         int64            `json:"active_leases"`
	VacantProperties     int64            `json:"vacant_properties"`
	OccupiedProperties   int64            `json:"occupied_properties"`
	OpenMaintenance      map[string]int64 `json:"open_maintenance_by_priority"`
	OverdueInvoices      int64            `json:"overdue_invoices"`
	OverdueInvoiceAmount float64          `json:"overdue_invoice_amount"`
}

// GetDashboardSummary computes the counts shown on the dashboard.
func (s *Store) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	db := s.db.WithContext(ctx)
	sum := &DashboardSummary{OpenMaintenance: make(map[string]int64)}

	counts := []struct {
		dst   *int64
		model interface{}
	}{
		{&sum.Landlords, &models.Landlord{}},
		{&sum.Properties, &models.Property{}},
		{&sum.Tenants, &models.Tenant{}},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, apperr.Wrap(apperr.CodeUnknown, "dashboard counts", err)
		}
	}

	if err := db.Model(&models.Lease{}).
		Where("status = ?", models.LeaseStatusActive).
		Count(&sum.ActiveLeases).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "dashboard lease count", err)
	}
	if err := db.Model(&models.Property{}).
		Where("status = ?", models.PropertyStatusVacant).
		Count(&sum.VacantProperties).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "dashboard vacancy count", err)
	}
	if err := db.Model(&models.Property{}).
		Where("status = ?", models.PropertyStatusOccupied).
		Count(&sum.OccupiedProperties).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "dashboard occupancy count", err)
	}

	type priorityCount struct {
		Priority string
		N        int64
	}
	var rows []priorityCount
	if err := db.Model(&models.MaintenanceItem{}).
		Select("priority, count(*) as n").
		Where("status IN ?", []string{models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress}).
		Group("priority").
		Scan(&rows).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "dashboard maintenance counts", err)
	}
	for _, r := range rows {
		sum.OpenMaintenance[r.Priority] = r.N
	}

	type overdue struct {
		N      int64
		Amount float64
	}
	var od overdue
	if err := db.Model(&models.Invoice{}).
		Select("count(*) as n, coalesce(sum(amount), 0) as amount").
		Where("status = ?", models.InvoiceStatusOverdue).
		Scan(&od).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "dashboard overdue invoices", err)
	}
	sum.OverdueInvoices = od.N
	sum.OverdueInvoiceAmount = od.Amount

	return sum, nil
}
