package store

import (
	"context"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/validate"
)

// BankAccountFilter narrows bank account lists.
type BankAccountFilter struct {
	ListParams
	LandlordID uint
}

// CreateBankAccount validates and inserts a bank account.
func (s *Store) CreateBankAccount(ctx context.Context, b *models.BankAccount) error {
	if b.AccountType == "" {
		b.AccountType = models.AccountTypeCheque
	}
	if e := validate.BankAccount(b); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Landlord{}, b.LandlordID, "landlord_id"); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "create bank account", err)
	}
	return nil
}

// GetBankAccount fetches a bank account by id.
func (s *Store) GetBankAccount(ctx context.Context, id uint) (*models.BankAccount, error) {
	var b models.BankAccount
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFoundOr(err, "bank account")
	}
	return &b, nil
}

// UpdateBankAccount replaces the stored bank account.
func (s *Store) UpdateBankAccount(ctx context.Context, id uint, b *models.BankAccount) error {
	existing, err := s.GetBankAccount(ctx, id)
	if err != nil {
		return err
	}
	if b.AccountType == "" {
		b.AccountType = models.AccountTypeCheque
	}
	if e := validate.BankAccount(b); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Landlord{}, b.LandlordID, "landlord_id"); err != nil {
		return err
	}
	b.ID = existing.ID
	b.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(b).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "update bank account", err)
	}
	return nil
}

// DeleteBankAccount soft-deletes a bank account.
func (s *Store) DeleteBankAccount(ctx context.Context, id uint) error {
	if _, err := s.GetBankAccount(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.BankAccount{}, id).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "delete bank account", err)
	}
	return nil
}

// ListBankAccounts returns a page of bank accounts.
func (s *Store) ListBankAccounts(ctx context.Context, f BankAccountFilter) (*Page[models.BankAccount], error) {
	f.Normalize()
	q := s.db.WithContext(ctx).Model(&models.BankAccount{})
	if f.LandlordID != 0 {
		q = q.Where("landlord_id = ?", f.LandlordID)
	}
	if f.Query != "" {
		q = q.Where("bank_name LIKE ?", "%"+f.Query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "count bank accounts", err)
	}
	var items []models.BankAccount
	if err := q.Order("id").Offset(f.Offset()).Limit(f.PageSize).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list bank accounts", err)
	}
	return &Page[models.BankAccount]{Items: items, Page: f.Page, PageSize: f.PageSize, Total: total}, nil
}
