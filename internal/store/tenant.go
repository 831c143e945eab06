package store

import (
	"context"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/validate"
)

// CreateTenant validates and inserts a tenant.
func (s *Store) CreateTenant(ctx context.Context, t *models.Tenant) error {
	if e := validate.Tenant(t); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "create tenant", err)
	}
	return nil
}

// GetTenant fetches a tenant by id.
func (s *Store) GetTenant(ctx context.Context, id uint) (*models.Tenant, error) {
	var t models.Tenant
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFoundOr(err, "tenant")
	}
	return &t, nil
}

// UpdateTenant replaces the stored tenant.
func (s *Store) UpdateTenant(ctx context.Context, id uint, t *models.Tenant) error {
	existing, err := s.GetTenant(ctx, id)
	if err != nil {
		return err
	}
	if e := validate.Tenant(t); !e.OK() {
		return apperr.Validation(e)
	}
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "update tenant", err)
	}
	return nil
}

// DeleteTenant soft-deletes a tenant.
func (s *Store) DeleteTenant(ctx context.Context, id uint) error {
	if _, err := s.GetTenant(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Tenant{}, id).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "delete tenant", err)
	}
	return nil
}

// ListTenants returns a page of tenants, optionally narrowed by a name or
// email search.
func (s *Store) ListTenants(ctx context.Context, p ListParams) (*Page[models.Tenant], error) {
	p.Normalize()
	q := s.db.WithContext(ctx).Model(&models.Tenant{})
	if p.Query != "" {
		like := "%" + p.Query + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "count tenants", err)
	}
	var items []models.Tenant
	if err := q.Order("id").Offset(p.Offset()).Limit(p.PageSize).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list tenants", err)
	}
	return &Page[models.Tenant]{Items: items, Page: p.Page, PageSize: p.PageSize, Total: total}, nil
}
