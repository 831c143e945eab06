package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	st := New(db)
	require.NoError(t, st.AutoMigrate())
	return st
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedLandlord(t *testing.T, st *Store) *models.Landlord {
	t.Helper()
	l := &models.Landlord{
		FirstName: "Thabo",
		LastName:  "Nkosi",
		Email:     fmt.Sprintf("thabo%d@example.co.za", time.Now().UnixNano()),
	}
	require.NoError(t, st.CreateLandlord(context.Background(), l))
	return l
}

func seedProperty(t *testing.T, st *Store, landlordID uint) *models.Property {
	t.Helper()
	p := &models.Property{
		LandlordID: landlordID,
		Name:       "Protea House",
		Type:       models.PropertyTypeHouse,
		Province:   "Gauteng",
		City:       "Johannesburg",
		PostalCode: "2196",
	}
	require.NoError(t, st.CreateProperty(context.Background(), p))
	return p
}

func seedTenant(t *testing.T, st *Store) *models.Tenant {
	t.Helper()
	tn := &models.Tenant{
		FirstName: "Lerato",
		LastName:  "Mokoena",
		Email:     fmt.Sprintf("lerato%d@example.co.za", time.Now().UnixNano()),
	}
	require.NoError(t, st.CreateTenant(context.Background(), tn))
	return tn
}

func seedLease(t *testing.T, st *Store, propertyID, tenantID uint) *models.Lease {
	t.Helper()
	l := &models.Lease{
		PropertyID:        propertyID,
		TenantID:          tenantID,
		StartDate:         date(2026, 1, 1),
		EndDate:           date(2026, 12, 31),
		MonthlyRent:       8500,
		PaymentDayOfMonth: 1,
		Status:            models.LeaseStatusActive,
	}
	require.NoError(t, st.CreateLease(context.Background(), l))
	return l
}

func TestCreateLandlordValidation(t *testing.T) {
	st := newTestStore(t)
	err := st.CreateLandlord(context.Background(), &models.Landlord{FirstName: "Thabo"})
	require.Error(t, err)

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeValidationFailed, ae.Code)
	assert.Contains(t, ae.Fields, "last_name")
	assert.Contains(t, ae.Fields, "email")
}

func TestLandlordCRUD(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	l := seedLandlord(t, st)
	require.NotZero(t, l.ID)

	got, err := st.GetLandlord(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thabo", got.FirstName)

	got.Notes = "prefers email"
	require.NoError(t, st.UpdateLandlord(ctx, l.ID, got))
	got, err = st.GetLandlord(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "prefers email", got.Notes)

	require.NoError(t, st.DeleteLandlord(ctx, l.ID))
	_, err = st.GetLandlord(ctx, l.ID)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeNotFound, ae.Code)
}

func TestCreatePropertyMissingLandlord(t *testing.T) {
	st := newTestStore(t)
	err := st.CreateProperty(context.Background(), &models.Property{
		LandlordID: 99,
		Name:       "Orphan",
	})
	require.Error(t, err)

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeReferenceNotFound, ae.Code)
	assert.Contains(t, ae.Fields, "landlord_id")
}

func TestPropertyDefaults(t *testing.T) {
	st := newTestStore(t)
	l := seedLandlord(t, st)

	p := &models.Property{LandlordID: l.ID, Name: "Bare"}
	require.NoError(t, st.CreateProperty(context.Background(), p))
	assert.Equal(t, models.PropertyTypeHouse, p.Type)
	assert.Equal(t, models.PropertyStatusVacant, p.Status)
}

func TestListPropertiesFilterAndPaging(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)

	for i := 0; i < 25; i++ {
		province := "Gauteng"
		if i%5 == 0 {
			province = "Western Cape"
		}
		p := &models.Property{
			LandlordID: l.ID,
			Name:       fmt.Sprintf("Unit %d", i),
			Province:   province,
		}
		require.NoError(t, st.CreateProperty(ctx, p))
	}

	page, err := st.ListProperties(ctx, PropertyFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Len(t, page.Items, defaultPageSize)
	assert.Equal(t, 1, page.Page)

	page, err = st.ListProperties(ctx, PropertyFilter{ListParams: ListParams{Page: 2}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)

	page, err = st.ListProperties(ctx, PropertyFilter{Province: "Western Cape"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)

	page, err = st.ListProperties(ctx, PropertyFilter{ListParams: ListParams{Query: "Unit 7"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestPageSizeClamped(t *testing.T) {
	p := ListParams{Page: -3, PageSize: 1000}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, maxPageSize, p.PageSize)
}

func TestCreatePropertiesTransactional(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)

	batch := []*models.Property{
		{LandlordID: l.ID, Name: "Unit 1"},
		{LandlordID: l.ID, Name: ""}, // invalid, aborts the batch
	}
	err := st.CreateProperties(ctx, batch)
	require.Error(t, err)

	page, err := st.ListProperties(ctx, PropertyFilter{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestLeaseLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)
	tn := seedTenant(t, st)

	lease := seedLease(t, st, p.ID, tn.ID)
	require.NotZero(t, lease.ID)

	err := st.CreateLease(ctx, &models.Lease{
		PropertyID: p.ID,
		TenantID:   999,
		StartDate:  date(2026, 1, 1),
		EndDate:    date(2026, 12, 31),
	})
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeReferenceNotFound, ae.Code)

	page, err := st.ListLeases(ctx, LeaseFilter{Status: models.LeaseStatusActive})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestInvoiceNumberConflict(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)
	tn := seedTenant(t, st)
	lease := seedLease(t, st, p.ID, tn.ID)

	inv := &models.Invoice{
		LeaseID: lease.ID,
		Number:  "INV-TEST-1",
		Amount:  8500,
		DueDate: date(2026, 2, 1),
		Status:  models.InvoiceStatusSent,
	}
	require.NoError(t, st.CreateInvoice(ctx, inv))

	dup := &models.Invoice{
		LeaseID: lease.ID,
		Number:  "INV-TEST-1",
		Amount:  8500,
		DueDate: date(2026, 3, 1),
	}
	err := st.CreateInvoice(ctx, dup)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeConflict, ae.Code)
}

func TestPaymentSettlesInvoice(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)
	tn := seedTenant(t, st)
	lease := seedLease(t, st, p.ID, tn.ID)

	inv := &models.Invoice{
		LeaseID: lease.ID,
		Amount:  8500,
		DueDate: date(2026, 2, 1),
		Status:  models.InvoiceStatusSent,
	}
	require.NoError(t, st.CreateInvoice(ctx, inv))

	pay := &models.Payment{
		LeaseID:   lease.ID,
		InvoiceID: &inv.ID,
		Amount:    8500,
		PaidAt:    date(2026, 1, 28),
		Method:    models.PaymentMethodEFT,
	}
	require.NoError(t, st.CreatePayment(ctx, pay))
	assert.NotEmpty(t, pay.Reference)

	got, err := st.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, got.Status)
}

func TestCanceledContextStopsReferenceCheck(t *testing.T) {
	st := newTestStore(t)
	l := seedLandlord(t, st)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &models.Property{
		LandlordID: l.ID,
		Name:       "Protea House",
		Type:       models.PropertyTypeHouse,
		Province:   "Gauteng",
		City:       "Johannesburg",
		PostalCode: "2196",
	}
	require.Error(t, st.CreateProperty(ctx, p))
}

func TestUpdatePropertyMissingParent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)

	missing := uint(9999)
	upd := &models.Property{
		LandlordID:       l.ID,
		ParentPropertyID: &missing,
		Name:             "Protea House",
		Type:             models.PropertyTypeHouse,
		Province:         "Gauteng",
		City:             "Johannesburg",
		PostalCode:       "2196",
	}
	err := st.UpdateProperty(ctx, p.ID, upd)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeReferenceNotFound, ae.Code)
	assert.Contains(t, ae.Fields, "parent_property_id")

	got, err := st.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentPropertyID)
}

func TestUpdatePaymentMissingInvoice(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)
	tn := seedTenant(t, st)
	lease := seedLease(t, st, p.ID, tn.ID)

	pay := &models.Payment{
		LeaseID: lease.ID,
		Amount:  8500,
		PaidAt:  date(2026, 1, 28),
		Method:  models.PaymentMethodEFT,
	}
	require.NoError(t, st.CreatePayment(ctx, pay))

	missing := uint(9999)
	upd := &models.Payment{
		LeaseID:   lease.ID,
		InvoiceID: &missing,
		Amount:    8500,
		PaidAt:    date(2026, 1, 28),
		Method:    models.PaymentMethodEFT,
	}
	err := st.UpdatePayment(ctx, pay.ID, upd)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeReferenceNotFound, ae.Code)
	assert.Contains(t, ae.Fields, "invoice_id")

	got, err := st.GetPayment(ctx, pay.ID)
	require.NoError(t, err)
	assert.Nil(t, got.InvoiceID)
}

func TestFailedPaymentLeavesInvoiceUnsettled(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)
	tn := seedTenant(t, st)
	lease := seedLease(t, st, p.ID, tn.ID)

	inv := &models.Invoice{
		LeaseID: lease.ID,
		Amount:  8500,
		DueDate: date(2026, 2, 1),
		Status:  models.InvoiceStatusSent,
	}
	require.NoError(t, st.CreateInvoice(ctx, inv))

	first := &models.Payment{
		LeaseID: lease.ID,
		Amount:  1000,
		PaidAt:  date(2026, 1, 20),
		Method:  models.PaymentMethodEFT,
	}
	require.NoError(t, st.CreatePayment(ctx, first))

	// Colliding primary key makes the insert fail inside the
	// transaction; the invoice flip must roll back with it.
	clash := &models.Payment{
		Model:     gorm.Model{ID: first.ID},
		LeaseID:   lease.ID,
		InvoiceID: &inv.ID,
		Amount:    8500,
		PaidAt:    date(2026, 1, 28),
		Method:    models.PaymentMethodEFT,
	}
	require.Error(t, st.CreatePayment(ctx, clash))

	got, err := st.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, got.Status)

	var n int64
	require.NoError(t, st.DB().Model(&models.Payment{}).Where("invoice_id = ?", inv.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestMarkOverdueInvoices(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)
	tn := seedTenant(t, st)
	lease := seedLease(t, st, p.ID, tn.ID)

	past := &models.Invoice{LeaseID: lease.ID, Amount: 8500, DueDate: date(2026, 1, 1), Status: models.InvoiceStatusSent}
	future := &models.Invoice{LeaseID: lease.ID, Amount: 8500, DueDate: date(2026, 12, 1), Status: models.InvoiceStatusSent}
	require.NoError(t, st.CreateInvoice(ctx, past))
	require.NoError(t, st.CreateInvoice(ctx, future))

	n, err := st.MarkOverdueInvoices(ctx, date(2026, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := st.GetInvoice(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusOverdue, got.Status)
	got, err = st.GetInvoice(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, got.Status)
}

func TestLeaseFinancials(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)
	tn := seedTenant(t, st)
	lease := seedLease(t, st, p.ID, tn.ID)

	sent := &models.Invoice{LeaseID: lease.ID, Amount: 8500, DueDate: date(2026, 2, 1), Status: models.InvoiceStatusSent}
	draft := &models.Invoice{LeaseID: lease.ID, Amount: 8500, DueDate: date(2026, 3, 1), Status: models.InvoiceStatusDraft}
	require.NoError(t, st.CreateInvoice(ctx, sent))
	require.NoError(t, st.CreateInvoice(ctx, draft))

	require.NoError(t, st.CreatePayment(ctx, &models.Payment{
		LeaseID: lease.ID,
		Amount:  5000,
		PaidAt:  date(2026, 2, 1),
		Method:  models.PaymentMethodEFT,
	}))

	fin, err := st.GetLeaseFinancials(ctx, lease.ID)
	require.NoError(t, err)
	assert.Len(t, fin.Invoices, 2)
	assert.Len(t, fin.Payments, 1)
	// Drafts are excluded from the billed total.
	assert.Equal(t, 8500.0, fin.TotalBilled)
	assert.Equal(t, 5000.0, fin.TotalPaid)
	assert.Equal(t, 3500.0, fin.Balance)
}

func TestMaintenanceCompletionStamp(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)

	m := &models.MaintenanceItem{
		PropertyID: p.ID,
		Title:      "Leaking geyser",
		Category:   models.MaintenanceCategoryPlumbing,
		Priority:   models.MaintenancePriorityHigh,
		Status:     models.MaintenanceStatusOpen,
	}
	require.NoError(t, st.CreateMaintenanceItem(ctx, m))
	assert.Nil(t, m.CompletedAt)

	m.Status = models.MaintenanceStatusCompleted
	require.NoError(t, st.UpdateMaintenanceItem(ctx, m.ID, m))

	got, err := st.GetMaintenanceItem(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
}

func TestDashboardSummary(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)
	tn := seedTenant(t, st)
	lease := seedLease(t, st, p.ID, tn.ID)

	p.Status = models.PropertyStatusOccupied
	require.NoError(t, st.UpdateProperty(ctx, p.ID, p))

	require.NoError(t, st.CreateMaintenanceItem(ctx, &models.MaintenanceItem{
		PropertyID: p.ID,
		Title:      "Broken gate motor",
		Category:   models.MaintenanceCategoryElectrical,
		Priority:   models.MaintenancePriorityUrgent,
		Status:     models.MaintenanceStatusOpen,
	}))

	inv := &models.Invoice{LeaseID: lease.ID, Amount: 8500, DueDate: date(2026, 1, 1), Status: models.InvoiceStatusSent}
	require.NoError(t, st.CreateInvoice(ctx, inv))
	_, err := st.MarkOverdueInvoices(ctx, date(2026, 6, 1))
	require.NoError(t, err)

	sum, err := st.GetDashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.Landlords)
	assert.Equal(t, int64(1), sum.Properties)
	assert.Equal(t, int64(1), sum.Tenants)
	assert.Equal(t, int64(1), sum.ActiveLeases)
	assert.Equal(t, int64(0), sum.VacantProperties)
	assert.Equal(t, int64(1), sum.OccupiedProperties)
	assert.Equal(t, int64(1), sum.OpenMaintenance[models.MaintenancePriorityUrgent])
	assert.Equal(t, int64(1), sum.OverdueInvoices)
	assert.Equal(t, 8500.0, sum.OverdueInvoiceAmount)
}

func TestSoftDeleteHidesFromLists(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	l := seedLandlord(t, st)
	p := seedProperty(t, st, l.ID)

	require.NoError(t, st.DeleteProperty(ctx, p.ID))

	page, err := st.ListProperties(ctx, PropertyFilter{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	// The row is retained with a deletion mark.
	var n int64
	require.NoError(t, st.DB().Unscoped().Model(&models.Property{}).Where("id = ?", p.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
