package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/validate"
)

// InvoiceFilter narrows invoice lists.
type InvoiceFilter struct {
	ListParams
	LeaseID uint
	Status  string
}

// PaymentFilter narrows payment lists.
type PaymentFilter struct {
	ListParams
	LeaseID uint
}

// NewInvoiceNumber returns a fresh invoice number.
func NewInvoiceNumber() string {
	return "INV-" + uuid.NewString()[:8]
}

// NewPaymentReference returns a fresh payment reference.
func NewPaymentReference() string {
	return "PAY-" + uuid.NewString()[:12]
}

// CreateInvoice validates and inserts an invoice. An empty number is
// assigned automatically; a duplicate number is a conflict.
func (s *Store) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	if inv.Number == "" {
		inv.Number = NewInvoiceNumber()
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	if e := validate.Invoice(inv); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Lease{}, inv.LeaseID, "lease_id"); err != nil {
		return err
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("number = ?", inv.Number).Count(&n).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "check invoice number", err)
	}
	if n > 0 {
		return apperr.New(apperr.CodeConflict, "invoice number already exists")
	}
	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "create invoice", err)
	}
	return nil
}

// GetInvoice fetches an invoice by id.
func (s *Store) GetInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, notFoundOr(err, "invoice")
	}
	return &inv, nil
}

// UpdateInvoice replaces the stored invoice.
func (s *Store) UpdateInvoice(ctx context.Context, id uint, inv *models.Invoice) error {
	existing, err := s.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	if inv.Number == "" {
		inv.Number = existing.Number
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	if e := validate.Invoice(inv); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Lease{}, inv.LeaseID, "lease_id"); err != nil {
		return err
	}
	if inv.Number != existing.Number {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Invoice{}).
			Where("number = ?", inv.Number).Count(&n).Error; err != nil {
			return apperr.Wrap(apperr.CodeUnknown, "check invoice number", err)
		}
		if n > 0 {
			return apperr.New(apperr.CodeConflict, "invoice number already exists")
		}
	}
	inv.ID = existing.ID
	inv.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(inv).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "update invoice", err)
	}
	return nil
}

// DeleteInvoice soft-deletes an invoice.
func (s *Store) DeleteInvoice(ctx context.Context, id uint) error {
	if _, err := s.GetInvoice(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Invoice{}, id).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "delete invoice", err)
	}
	return nil
}

// ListInvoices returns a page of invoices matching the filter.
func (s *Store) ListInvoices(ctx context.Context, f InvoiceFilter) (*Page[models.Invoice], error) {
	f.Normalize()
	q := s.db.WithContext(ctx).Model(&models.Invoice{})
	if f.LeaseID != 0 {
		q = q.Where("lease_id = ?", f.LeaseID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Query != "" {
		q = q.Where("number LIKE ?", "%"+f.Query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "count invoices", err)
	}
	var items []models.Invoice
	if err := q.Order("id").Offset(f.Offset()).Limit(f.PageSize).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list invoices", err)
	}
	return &Page[models.Invoice]{Items: items, Page: f.Page, PageSize: f.PageSize, Total: total}, nil
}

// CreatePayment validates and inserts a payment. A payment against a sent
// or overdue invoice that covers its amount marks the invoice paid.
func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	if p.Reference == "" {
		p.Reference = NewPaymentReference()
	}
	if p.Method == "" {
		p.Method = models.PaymentMethodEFT
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now()
	}
	if e := validate.Payment(p); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Lease{}, p.LeaseID, "lease_id"); err != nil {
		return err
	}
	if p.InvoiceID != nil {
		if err := s.checkRef(ctx, &models.Invoice{}, *p.InvoiceID, "invoice_id"); err != nil {
			return err
		}
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("reference = ?", p.Reference).Count(&n).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "check payment reference", err)
	}
	if n > 0 {
		return apperr.New(apperr.CodeConflict, "payment reference already exists")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return apperr.Wrap(apperr.CodeUnknown, "create payment", err)
		}
		if p.InvoiceID == nil {
			return nil
		}
		var inv models.Invoice
		if err := tx.First(&inv, *p.InvoiceID).Error; err != nil {
			return apperr.Wrap(apperr.CodeUnknown, "load invoice", err)
		}
		if inv.Status != models.InvoiceStatusPaid && p.Amount >= inv.Amount {
			inv.Status = models.InvoiceStatusPaid
			if err := tx.Save(&inv).Error; err != nil {
				return apperr.Wrap(apperr.CodeUnknown, "mark invoice paid", err)
			}
		}
		return nil
	})
}

// GetPayment fetches a payment by id.
func (s *Store) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFoundOr(err, "payment")
	}
	return &p, nil
}

// UpdatePayment replaces the stored payment.
func (s *Store) UpdatePayment(ctx context.Context, id uint, p *models.Payment) error {
	existing, err := s.GetPayment(ctx, id)
	if err != nil {
		return err
	}
	if p.Reference == "" {
		p.Reference = existing.Reference
	}
	if p.Method == "" {
		p.Method = models.PaymentMethodEFT
	}
	if e := validate.Payment(p); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Lease{}, p.LeaseID, "lease_id"); err != nil {
		return err
	}
	if p.InvoiceID != nil {
		if err := s.checkRef(ctx, &models.Invoice{}, *p.InvoiceID, "invoice_id"); err != nil {
			return err
		}
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "update payment", err)
	}
	return nil
}

// DeletePayment soft-deletes a payment.
func (s *Store) DeletePayment(ctx context.Context, id uint) error {
	if _, err := s.GetPayment(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Payment{}, id).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "delete payment", err)
	}
	return nil
}

// ListPayments returns a page of payments matching the filter.
func (s *Store) ListPayments(ctx context.Context, f PaymentFilter) (*Page[models.Payment], error) {
	f.Normalize()
	q := s.db.WithContext(ctx).Model(&models.Payment{})
	if f.LeaseID != 0 {
		q = q.Where("lease_id = ?", f.LeaseID)
	}
	if f.Query != "" {
		q = q.Where("reference LIKE ?", "%"+f.Query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "count payments", err)
	}
	var items []models.Payment
	if err := q.Order("id").Offset(f.Offset()).Limit(f.PageSize).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list payments", err)
	}
	return &Page[models.Payment]{Items: items, Page: f.Page, PageSize: f.PageSize, Total: total}, nil
}

// MarkOverdueInvoices flags sent invoices whose due date passed. Returns the
// number of invoices flagged.
func (s *Store) MarkOverdueInvoices(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("status = ? AND due_date < ?", models.InvoiceStatusSent, now).
		Update("status", models.InvoiceStatusOverdue)
	if res.Error != nil {
		return 0, apperr.Wrap(apperr.CodeUnknown, "mark overdue invoices", res.Error)
	}
	return res.RowsAffected, nil
}
