package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mockModelRegistry struct{}

func (r *mockModelRegistry) GetModels() map[string]interface{} {
	return map[string]interface{}{
		"TestModel": struct{ ID int }{},
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestValidateRegistry(t *testing.T) {
	orig := GlobalModelRegistry
	defer func() { GlobalModelRegistry = orig }()

	GlobalModelRegistry = nil
	assert.Error(t, ValidateRegistry())

	GlobalModelRegistry = &mockModelRegistry{}
	assert.NoError(t, ValidateRegistry())
}

func TestRegisterMigration(t *testing.T) {
	ResetMigrations()
	defer ResetMigrations()

	RegisterMigration(&Migration{Version: "20260101000000", Name: "first"})
	RegisterMigration(&Migration{Version: "20260102000000", Name: "second"})

	migrations := GetRegisteredMigrations()
	require.Len(t, migrations, 2)
	assert.Equal(t, "first", migrations[0].Name)
	assert.Equal(t, "second", migrations[1].Name)
}

func TestMigratorInitCreatesTrackingTable(t *testing.T) {
	db := newTestDB(t)
	m := NewMigrator(db)

	require.NoError(t, m.Init())
	assert.True(t, db.Migrator().HasTable("migration_records"))

	// Idempotent on an initialized database.
	require.NoError(t, m.Init())
}

func TestMigratorUpDown(t *testing.T) {
	ResetMigrations()
	defer ResetMigrations()

	db := newTestDB(t)
	m := NewMigrator(db)

	m.Register(&Migration{
		Version: "20260101000000",
		Name:    "create_things",
		Up: func(db *gorm.DB) error {
			return db.Exec(`CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)`).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE things`).Error
		},
	})

	require.NoError(t, m.Up())
	assert.True(t, db.Migrator().HasTable("things"))

	applied, err := m.GetAppliedVersions()
	require.NoError(t, err)
	assert.True(t, applied["20260101000000"])

	// A second run is a no-op.
	require.NoError(t, m.Up())

	require.NoError(t, m.Down())
	assert.False(t, db.Migrator().HasTable("things"))

	applied, err = m.GetAppliedVersions()
	require.NoError(t, err)
	assert.False(t, applied["20260101000000"])
}

func TestMigratorUpStopsOnError(t *testing.T) {
	ResetMigrations()
	defer ResetMigrations()

	db := newTestDB(t)
	m := NewMigrator(db)

	m.Register(&Migration{
		Version: "20260101000000",
		Name:    "broken",
		Up: func(db *gorm.DB) error {
			return db.Exec(`THIS IS NOT SQL`).Error
		},
	})

	require.Error(t, m.Up())

	applied, err := m.GetAppliedVersions()
	require.NoError(t, err)
	assert.False(t, applied["20260101000000"])
}
