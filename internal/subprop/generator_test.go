package subprop

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/store"
)

func newTestGenerator(t *testing.T) (*Generator, *store.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.AutoMigrate())
	return New(st), st
}

func seedComplex(t *testing.T, st *store.Store) *models.Property {
	t.Helper()
	ctx := context.Background()
	l := &models.Landlord{FirstName: "Thabo", LastName: "Nkosi", Email: "thabo@example.co.za"}
	require.NoError(t, st.CreateLandlord(ctx, l))
	p := &models.Property{
		LandlordID: l.ID,
		Name:       "Acacia Court",
		Type:       models.PropertyTypeComplex,
		Street:     "12 Jan Smuts Ave",
		Suburb:     "Rosebank",
		City:       "Johannesburg",
		Province:   "Gauteng",
		PostalCode: "2196",
	}
	require.NoError(t, st.CreateProperty(ctx, p))
	return p
}

func TestGeneratePreview(t *testing.T) {
	gen, st := newTestGenerator(t)
	parent := seedComplex(t, st)

	preview, err := gen.Generate(context.Background(), parent.ID, Request{
		Template: "{parent} Unit {nn}",
		Count:    3,
	})
	require.NoError(t, err)
	require.Len(t, preview.Units, 3)

	first := preview.Units[0].Property
	assert.Equal(t, "Acacia Court Unit 01", first.Name)
	assert.Equal(t, "Acacia Court Unit 03", preview.Units[2].Property.Name)
	assert.Equal(t, parent.LandlordID, first.LandlordID)
	require.NotNil(t, first.ParentPropertyID)
	assert.Equal(t, parent.ID, *first.ParentPropertyID)
	assert.Equal(t, "Rosebank", first.Suburb)
	assert.Equal(t, models.PropertyStatusVacant, first.Status)

	// Nothing was written.
	subs, err := st.ListSubProperties(context.Background(), parent.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestGenerateUnitRef(t *testing.T) {
	gen, st := newTestGenerator(t)
	parent := seedComplex(t, st)

	preview, err := gen.Generate(context.Background(), parent.ID, Request{
		Template:    "{parent} {n}",
		Count:       2,
		StartNumber: 7,
	})
	require.NoError(t, err)
	require.Len(t, preview.Units, 2)
	assert.Equal(t, fmt.Sprintf("GP-%d-0007", parent.ID), preview.Units[0].Property.UnitRef)
	assert.Equal(t, fmt.Sprintf("GP-%d-0008", parent.ID), preview.Units[1].Property.UnitRef)
	assert.Equal(t, "Acacia Court 7", preview.Units[0].Property.Name)
}

func TestGenerateAppendsSequenceToken(t *testing.T) {
	gen, st := newTestGenerator(t)
	parent := seedComplex(t, st)

	preview, err := gen.Generate(context.Background(), parent.ID, Request{
		Template: "Flat",
		Count:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Flat 1", preview.Units[0].Property.Name)
	assert.Equal(t, "Flat 2", preview.Units[1].Property.Name)
}

func TestGenerateRejectsUnknownToken(t *testing.T) {
	gen, st := newTestGenerator(t)
	parent := seedComplex(t, st)

	_, err := gen.Generate(context.Background(), parent.ID, Request{
		Template: "Unit {abc}",
		Count:    2,
	})
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeValidationFailed, ae.Code)
	assert.Contains(t, ae.Fields, "template")
}

func TestGenerateCountBounds(t *testing.T) {
	gen, st := newTestGenerator(t)
	parent := seedComplex(t, st)

	_, err := gen.Generate(context.Background(), parent.ID, Request{Template: "Unit {n}", Count: 0})
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Fields, "count")

	_, err = gen.Generate(context.Background(), parent.ID, Request{Template: "Unit {n}", Count: MaxCount + 1})
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Fields, "count")
}

func TestGenerateRejectsNestedParent(t *testing.T) {
	gen, st := newTestGenerator(t)
	parent := seedComplex(t, st)
	ctx := context.Background()

	created, err := gen.Commit(ctx, parent.ID, []models.Property{
		{Name: "Acacia Court Unit 1"},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	_, err = gen.Generate(ctx, created[0].ID, Request{Template: "Room {n}", Count: 2})
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeValidationFailed, ae.Code)
	assert.Contains(t, ae.Fields, "parent_id")

	_, err = gen.Commit(ctx, created[0].ID, []models.Property{{Name: "Room 1"}})
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Fields, "parent_id")
}

func TestGenerateWarnsOnNameCollision(t *testing.T) {
	gen, st := newTestGenerator(t)
	parent := seedComplex(t, st)
	ctx := context.Background()

	_, err := gen.Commit(ctx, parent.ID, []models.Property{
		{Name: "Acacia Court Unit 1"},
	})
	require.NoError(t, err)

	preview, err := gen.Generate(ctx, parent.ID, Request{
		Template: "{parent} Unit {n}",
		Count:    2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, preview.Units[0].Warnings)
	assert.Empty(t, preview.Units[1].Warnings)
}

func TestCommitForcesParentage(t *testing.T) {
	gen, st := newTestGenerator(t)
	parent := seedComplex(t, st)
	ctx := context.Background()

	created, err := gen.Commit(ctx, parent.ID, []models.Property{
		{Name: "Unit A", LandlordID: 999}, // overridden by the parent's landlord
		{Name: "Unit B"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, c := range created {
		assert.Equal(t, parent.LandlordID, c.LandlordID)
		require.NotNil(t, c.ParentPropertyID)
		assert.Equal(t, parent.ID, *c.ParentPropertyID)
	}

	subs, err := st.ListSubProperties(ctx, parent.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestCommitAllOrNothing(t *testing.T) {
	gen, st := newTestGenerator(t)
	parent := seedComplex(t, st)
	ctx := context.Background()

	_, err := gen.Commit(ctx, parent.ID, []models.Property{
		{Name: "Unit A"},
		{Name: ""}, // invalid
	})
	require.Error(t, err)

	subs, err := st.ListSubProperties(ctx, parent.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestCommitRejectsEmptyBatch(t *testing.T) {
	gen, st := newTestGenerator(t)
	parent := seedComplex(t, st)

	_, err := gen.Commit(context.Background(), parent.ID, nil)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Fields, "units")
}

func TestExpand(t *testing.T) {
	assert.Equal(t, "Oak 007", expand("{parent} {nnn}", "Oak", 7))
	assert.Equal(t, "Oak 07", expand("{parent} {nn}", "Oak", 7))
	assert.Equal(t, "Oak 7", expand("{parent} {n}", "Oak", 7))
	assert.Equal(t, "Oak 123", expand("{parent} {nnn}", "Oak", 123))
}
