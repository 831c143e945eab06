package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/khayaprop/khaya/migration"
)

const sampleMigration = `package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/khayaprop/khaya/migration"
)

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version:   "20260115093000",
		Name:      "create_notes",
		CreatedAt: time.Now(),
		Up: func(db *gorm.DB) error {
			if err := db.Exec(` + "`" + `CREATE TABLE notes (
    id INTEGER PRIMARY KEY,
    body TEXT NOT NULL
);` + "`" + `).Error; err != nil {
				return err
			}
			return nil
		},
		Down: func(db *gorm.DB) error {
			if err := db.Exec(` + "`" + `DROP TABLE IF EXISTS notes;` + "`" + `).Error; err != nil {
				return err
			}
			return nil
		},
	})
}
`

func writeMigrationFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func newLoaderDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestLoadMigrationsFromDirectory(t *testing.T) {
	migration.ResetMigrations()
	defer migration.ResetMigrations()

	dir := t.TempDir()
	writeMigrationFile(t, dir, "20260115093000_create_notes.go", sampleMigration)

	loader := NewMigrationLoader(dir, nil)
	migrations, err := loader.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Equal(t, "20260115093000", migrations[0].Version)
	assert.Equal(t, "create_notes", migrations[0].Name)
}

func TestLoadMigrationsSkipsRegisteredVersions(t *testing.T) {
	migration.ResetMigrations()
	defer migration.ResetMigrations()

	migration.RegisterMigration(&migration.Migration{
		Version: "20260115093000",
		Name:    "create_notes",
	})

	dir := t.TempDir()
	writeMigrationFile(t, dir, "20260115093000_create_notes.go", sampleMigration)

	loader := NewMigrationLoader(dir, nil)
	migrations, err := loader.LoadMigrations()
	require.NoError(t, err)
	assert.Len(t, migrations, 1)
}

func TestLoadMigrationsMissingDirectory(t *testing.T) {
	migration.ResetMigrations()
	defer migration.ResetMigrations()

	loader := NewMigrationLoader(filepath.Join(t.TempDir(), "nope"), nil)
	migrations, err := loader.LoadMigrations()
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestLoadedMigrationExecutesSQL(t *testing.T) {
	migration.ResetMigrations()
	defer migration.ResetMigrations()

	dir := t.TempDir()
	writeMigrationFile(t, dir, "20260115093000_create_notes.go", sampleMigration)

	loader := NewMigrationLoader(dir, nil)
	migrations, err := loader.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 1)

	db := newLoaderDB(t)
	require.NoError(t, migrations[0].Up(db))
	assert.True(t, db.Migrator().HasTable("notes"))

	require.NoError(t, migrations[0].Down(db))
	assert.False(t, db.Migrator().HasTable("notes"))
}

func TestExtractSQLFromFunction(t *testing.T) {
	loader := NewMigrationLoader(t.TempDir(), nil)

	stmts, err := loader.extractSQLFromFunction(sampleMigration, "Up")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "CREATE TABLE notes")
	assert.Contains(t, stmts[0], "body TEXT NOT NULL")

	stmts, err = loader.extractSQLFromFunction(sampleMigration, "Down")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "DROP TABLE IF EXISTS notes")
}

func TestExtractSQLUnclosedBacktick(t *testing.T) {
	loader := NewMigrationLoader(t.TempDir(), nil)

	broken := "Up: func(db *gorm.DB) error {\n\tdb.Exec(`CREATE TABLE broken (\n"
	_, err := loader.extractSQLFromFunction(broken, "Up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed backtick")
}

func TestGetPendingMigrations(t *testing.T) {
	migration.ResetMigrations()
	defer migration.ResetMigrations()

	migration.RegisterMigration(&migration.Migration{Version: "20260101000000", Name: "first"})
	migration.RegisterMigration(&migration.Migration{Version: "20260102000000", Name: "second"})

	db := newLoaderDB(t)
	require.NoError(t, db.AutoMigrate(&migration.MigrationRecord{}))
	require.NoError(t, db.Create(&migration.MigrationRecord{Version: "20260101000000", Name: "first"}).Error)

	loader := NewMigrationLoader(filepath.Join(t.TempDir(), "nope"), nil)
	pending, err := loader.GetPendingMigrations(db)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "second", pending[0].Name)
	assert.Equal(t, "20260102000000", pending[0].Version)
}
