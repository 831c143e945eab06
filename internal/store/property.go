package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/validate"
)

// PropertyFilter narrows property lists.
type PropertyFilter struct {
	ListParams
	LandlordID uint
	ParentID   uint
	Province   string
	Status     string
	Type       string
}

func propertyDefaults(p *models.Property) {
	if p.Type == "" {
		p.Type = models.PropertyTypeHouse
	}
	if p.Status == "" {
		p.Status = models.PropertyStatusVacant
	}
}

// CreateProperty validates and inserts a property.
func (s *Store) CreateProperty(ctx context.Context, p *models.Property) error {
	propertyDefaults(p)
	if e := validate.Property(p); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Landlord{}, p.LandlordID, "landlord_id"); err != nil {
		return err
	}
	if p.ParentPropertyID != nil {
		if err := s.checkRef(ctx, &models.Property{}, *p.ParentPropertyID, "parent_property_id"); err != nil {
			return err
		}
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "create property", err)
	}
	return nil
}

// CreateProperties inserts a batch of properties in one transaction. Used by
// the sub-property commit; any failure aborts the whole batch.
func (s *Store) CreateProperties(ctx context.Context, ps []*models.Property) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range ps {
			propertyDefaults(p)
			if e := validate.Property(p); !e.OK() {
				return apperr.Validation(e)
			}
			if err := tx.Create(p).Error; err != nil {
				return apperr.Wrap(apperr.CodeUnknown, "create property", err)
			}
		}
		return nil
	})
}

// GetProperty fetches a property by id.
func (s *Store) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFoundOr(err, "property")
	}
	return &p, nil
}

// UpdateProperty replaces the stored property.
func (s *Store) UpdateProperty(ctx context.Context, id uint, p *models.Property) error {
	existing, err := s.GetProperty(ctx, id)
	if err != nil {
		return err
	}
	propertyDefaults(p)
	if e := validate.Property(p); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Landlord{}, p.LandlordID, "landlord_id"); err != nil {
		return err
	}
	if p.ParentPropertyID != nil {
		if err := s.checkRef(ctx, &models.Property{}, *p.ParentPropertyID, "parent_property_id"); err != nil {
			return err
		}
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "update property", err)
	}
	return nil
}

// DeleteProperty soft-deletes a property.
func (s *Store) DeleteProperty(ctx context.Context, id uint) error {
	if _, err := s.GetProperty(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Property{}, id).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "delete property", err)
	}
	return nil
}

// ListProperties returns a page of properties matching the filter.
func (s *Store) ListProperties(ctx context.Context, f PropertyFilter) (*Page[models.Property], error) {
	f.Normalize()
	q := s.db.WithContext(ctx).Model(&models.Property{})
	if f.LandlordID != 0 {
		q = q.Where("landlord_id = ?", f.LandlordID)
	}
	if f.ParentID != 0 {
		q = q.Where("parent_property_id = ?", f.ParentID)
	}
	if f.Province != "" {
		q = q.Where("province = ?", f.Province)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("name LIKE ? OR suburb LIKE ? OR city LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "count properties", err)
	}
	var items []models.Property
	if err := q.Order("id").Offset(f.Offset()).Limit(f.PageSize).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list properties", err)
	}
	return &Page[models.Property]{Items: items, Page: f.Page, PageSize: f.PageSize, Total: total}, nil
}

// ListSubProperties returns every live child of a parent property.
func (s *Store) ListSubProperties(ctx context.Context, parentID uint) ([]models.Property, error) {
	var items []models.Property
	err := s.db.WithContext(ctx).
		Where("parent_property_id = ?", parentID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list sub-properties", err)
	}
	return items, nil
}
