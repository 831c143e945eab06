package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/store"
	"github.com/khayaprop/khaya/internal/validate"
)

func newSeededStore(t *testing.T, scale Scale) *store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.AutoMigrate())

	gen := New(st, Config{Scale: scale, Seed: 42}, zap.NewNop())
	require.NoError(t, gen.Run(context.Background()))
	return st
}

func TestParsePreset(t *testing.T) {
	s, err := ParsePreset("minimal")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Landlords)

	s, err = ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, 8, s.Landlords)

	_, err = ParsePreset("gigantic")
	assert.Error(t, err)
}

func TestIDNumberGeneratorProducesValidIDs(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	g := New(store.New(db), Config{Seed: 7}, zap.NewNop())

	for i := 0; i < 50; i++ {
		id := g.idNumber()
		assert.True(t, validate.IDNumber(id), "generated id %q failed the check digit", id)
	}
}

func TestRunSeedsCoherentDataset(t *testing.T) {
	scale, err := ParsePreset("minimal")
	require.NoError(t, err)
	st := newSeededStore(t, scale)
	ctx := context.Background()

	landlords, err := st.ListLandlords(ctx, store.ListParams{PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(scale.Landlords), landlords.Total)

	properties, err := st.ListProperties(ctx, store.PropertyFilter{ListParams: store.ListParams{PageSize: 100}})
	require.NoError(t, err)
	assert.NotZero(t, properties.Total)

	// Every property belongs to a seeded landlord, and units carry their
	// parent's province in the unit reference.
	byID := make(map[uint]bool)
	for _, l := range landlords.Items {
		byID[l.ID] = true
	}
	for _, p := range properties.Items {
		assert.True(t, byID[p.LandlordID], "property %d has unknown landlord", p.ID)
		if p.ParentPropertyID != nil {
			assert.NotEmpty(t, p.UnitRef)
		}
	}

	leases, err := st.ListLeases(ctx, store.LeaseFilter{ListParams: store.ListParams{PageSize: 100}})
	require.NoError(t, err)
	for _, l := range leases.Items {
		assert.True(t, l.EndDate.After(l.StartDate))
	}

	// Leased properties were flipped to occupied.
	for _, l := range leases.Items {
		if l.Status != models.LeaseStatusActive {
			continue
		}
		p, err := st.GetProperty(ctx, l.PropertyID)
		require.NoError(t, err)
		assert.Equal(t, models.PropertyStatusOccupied, p.Status)
	}

	// Financials reconcile per lease.
	for _, l := range leases.Items {
		fin, err := st.GetLeaseFinancials(ctx, l.ID)
		require.NoError(t, err)
		assert.InDelta(t, fin.TotalBilled-fin.TotalPaid, fin.Balance, 0.001)
	}
}

func TestRunIsDeterministicForSeed(t *testing.T) {
	scale, err := ParsePreset("minimal")
	require.NoError(t, err)

	a := newSeededStore(t, scale)
	b := newSeededStore(t, scale)
	ctx := context.Background()

	la, err := a.ListLandlords(ctx, store.ListParams{PageSize: 100})
	require.NoError(t, err)
	lb, err := b.ListLandlords(ctx, store.ListParams{PageSize: 100})
	require.NoError(t, err)

	require.Equal(t, la.Total, lb.Total)
	for i := range la.Items {
		assert.Equal(t, la.Items[i].FirstName, lb.Items[i].FirstName)
		assert.Equal(t, la.Items[i].Email, lb.Items[i].Email)
		assert.Equal(t, la.Items[i].IDNumber, lb.Items[i].IDNumber)
	}
}
