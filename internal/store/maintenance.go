package store

import (
	"context"
	"time"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/validate"
)

// MaintenanceFilter narrows maintenance lists.
type MaintenanceFilter struct {
	ListParams
	PropertyID uint
	Status     string
	Priority   string
}

func maintenanceDefaults(m *models.MaintenanceItem) {
	if m.Category == "" {
		m.Category = models.MaintenanceCategoryOther
	}
	if m.Priority == "" {
		m.Priority = models.MaintenancePriorityMedium
	}
	if m.Status == "" {
		m.Status = models.MaintenanceStatusOpen
	}
	if m.ReportedAt.IsZero() {
		m.ReportedAt = time.Now()
	}
}

// CreateMaintenanceItem validates and inserts a maintenance item.
func (s *Store) CreateMaintenanceItem(ctx context.Context, m *models.MaintenanceItem) error {
	maintenanceDefaults(m)
	if e := validate.MaintenanceItem(m); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Property{}, m.PropertyID, "property_id"); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "create maintenance item", err)
	}
	return nil
}

// GetMaintenanceItem fetches a maintenance item by id.
func (s *Store) GetMaintenanceItem(ctx context.Context, id uint) (*models.MaintenanceItem, error) {
	var m models.MaintenanceItem
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFoundOr(err, "maintenance item")
	}
	return &m, nil
}

// UpdateMaintenanceItem replaces the stored maintenance item. Moving to
// completed stamps CompletedAt when the caller left it unset.
func (s *Store) UpdateMaintenanceItem(ctx context.Context, id uint, m *models.MaintenanceItem) error {
	existing, err := s.GetMaintenanceItem(ctx, id)
	if err != nil {
		return err
	}
	maintenanceDefaults(m)
	if e := validate.MaintenanceItem(m); !e.OK() {
		return apperr.Validation(e)
	}
	if err := s.checkRef(ctx, &models.Property{}, m.PropertyID, "property_id"); err != nil {
		return err
	}
	if m.Status == models.MaintenanceStatusCompleted && m.CompletedAt == nil {
		now := time.Now()
		m.CompletedAt = &now
	}
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "update maintenance item", err)
	}
	return nil
}

// DeleteMaintenanceItem soft-deletes a maintenance item.
func (s *Store) DeleteMaintenanceItem(ctx context.Context, id uint) error {
	if _, err := s.GetMaintenanceItem(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.MaintenanceItem{}, id).Error; err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "delete maintenance item", err)
	}
	return nil
}

// ListMaintenanceItems returns a page of maintenance items matching the
// filter.
func (s *Store) ListMaintenanceItems(ctx context.Context, f MaintenanceFilter) (*Page[models.MaintenanceItem], error) {
	f.Normalize()
	q := s.db.WithContext(ctx).Model(&models.MaintenanceItem{})
	if f.PropertyID != 0 {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "count maintenance items", err)
	}
	var items []models.MaintenanceItem
	if err := q.Order("id").Offset(f.Offset()).Limit(f.PageSize).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "list maintenance items", err)
	}
	return &Page[models.MaintenanceItem]{Items: items, Page: f.Page, PageSize: f.PageSize, Total: total}, nil
}
