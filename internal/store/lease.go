package store

import (
	"context"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/validate"
)

// LeaseFilter narrows lease lists.
type LeaseFilter struct {
	ListParams
	PropertyID uint
	TenantID   uint
	Status     string
}

// LeaseFinancials is the lease-detail finance view: all invoices and
// payments for the lease plus the running totals.
type LeaseFinancials struct {
	Lease       models.Lease     `json:"lease"`
	Invoices    []models.Invoice `json:"invoices"`
	Payments    []models.Payment `json:"payments"`
	TotalBilled float64          `json:"total_billed"`
	TotalPaid   float64          `json:"total_paid"`
	Balance     float64          `json:"balance"`
}

// CreateLease validates and inserts a lease.
func (s *Store) CreateLease(ctx context.Context, l *models.Lease) error {
	if l.Status == "" {
		l.Status = models.LeaseStatusPending
	}
	if l.PaymentDayOfMonth == 0 {
		l.PaymentDayOfMonth = 1
	}
	if e := validate.Lease(l); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Property{}, l.PropertyID, "property_id"); err != nil {
		return err
	}
	if err := s.checkRef(ctx, &models.Tenant{}, l.TenantID, "tenant_id"); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "create lease", err)
	}
	return nil
}

// GetLease fetches a lease by id.
func (s *Store) GetLease(ctx context.Context, id uint) (*models.Lease, error) {
	var l models.Lease
	if err := s.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, notFoundOr(err, "lease")
	}
	return &l, nil
}

// UpdateLease replaces the stored lease.
func (s *Store) UpdateLease(ctx context.Context, id uint, l *models.Lease) error {
	existing, err := s.GetLease(ctx, id)
	if err != nil {
		return err
	}
	if l.Status == "" {
		l.Status = models.LeaseStatusPending
	}
	if l.PaymentDayOfMonth == 0 {
		l.PaymentDayOfMonth = 1
	}
	if e := validate.Lease(l); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Property{}, l.PropertyID, "property_id"); err != nil {
		return err
	}
	if err := s.checkRef(ctx, &models.Tenant{}, l.TenantID, "tenant_id"); err != nil {
		return err
	}
	l.ID = existing.ID
	l.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(l).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "update lease", err)
	}
	return nil
}

// DeleteLease soft-deletes a lease.
func (s *Store) DeleteLease(ctx context.Context, id uint) error {
	if _, err := s.GetLease(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Lease{}, id).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "delete lease", err)
	}
	return nil
}

// ListLeases returns a page of leases matching the filter.
func (s *Store) ListLeases(ctx context.Context, f LeaseFilter) (*Page[models.Lease], error) {
	f.Normalize()
	q := s.db.WithContext(ctx).Model(&models.Lease{})
	if f.PropertyID != 0 {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if f.TenantID != 0 {
		q = q.Where("tenant_id = ?", f.TenantID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "count leases", err)
	}
	var items []models.Lease
	if err := q.Order("id").Offset(f.Offset()).Limit(f.PageSize).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list leases", err)
	}
	return &Page[models.Lease]{Items: items, Page: f.Page, PageSize: f.PageSize, Total: total}, nil
}

// GetLeaseFinancials builds the finance tab rollup for a lease: invoices,
// payments and the outstanding balance.
func (s *Store) GetLeaseFinancials(ctx context.Context, id uint) (*LeaseFinancials, error) {
	lease, err := s.GetLease(ctx, id)
	if err != nil {
		return nil, err
	}

	fin := &LeaseFinancials{Lease: *lease}
	if err := s.db.WithContext(ctx).
		Where("lease_id = ?", id).
		Order("due_date, id").
		Find(&fin.Invoices).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list lease invoices", err)
	}
	if err := s.db.WithContext(ctx).
		Where("lease_id = ?", id).
		Order("paid_at, id").
		Find(&fin.Payments).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list lease payments", err)
	}

	for _, inv := range fin.Invoices {
		if inv.Status != models.InvoiceStatusDraft {
			fin.TotalBilled += inv.Amount
		}
	}
	for _, p := range fin.Payments {
		fin.TotalPaid += p.Amount
	}
	fin.Balance = fin.TotalBilled - fin.TotalPaid
	return fin, nil
}
