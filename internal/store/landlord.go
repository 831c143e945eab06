package store

import (
	"context"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/validate"
)

// CreateLandlord validates and inserts a landlord.
func (s *Store) CreateLandlord(ctx context.Context, l *models.Landlord) error {
	if e := validate.Landlord(l); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "create landlord", err)
	}
	return nil
}

// GetLandlord fetches a landlord by id.
func (s *Store) GetLandlord(ctx context.Context, id uint) (*models.Landlord, error) {
	var l models.Landlord
	if err := s.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, notFoundOr(err, "landlord")
	}
	return &l, nil
}

// UpdateLandlord replaces the stored landlord with the given record.
func (s *Store) UpdateLandlord(ctx context.Context, id uint, l *models.Landlord) error {
	existing, err := s.GetLandlord(ctx, id)
	if err != nil {
		return err
	}
	if e := validate.Landlord(l); !e.OK() {
		return apperr.Validation(e)
	}
	l.ID = existing.ID
	l.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(l).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "update landlord", err)
	}
	return nil
}

// DeleteLandlord soft-deletes a landlord.
func (s *Store) DeleteLandlord(ctx context.Context, id uint) error {
	if _, err := s.GetLandlord(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Landlord{}, id).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "delete landlord", err)
	}
	return nil
}

// ListLandlords returns a page of landlords, optionally narrowed by a name
// or email search.
func (s *Store) ListLandlords(ctx context.Context, p ListParams) (*Page[models.Landlord], error) {
	p.Normalize()
	q := s.db.WithContext(ctx).Model(&models.Landlord{})
	if p.Query != "" {
		like := "%" + p.Query + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "count landlords", err)
	}
	var items []models.Landlord
	if err := q.Order("id").Offset(p.Offset()).Limit(p.PageSize).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list landlords", err)
	}
	return &Page[models.Landlord]{Items: items, Page: p.Page, PageSize: p.PageSize, Total: total}, nil
}
