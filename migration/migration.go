// Package migration tracks schema versions and applies registered
// migrations against the model registry.
package migration

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Migration is one reversible schema change.
type Migration struct {
	Version   string
	Name      string
	CreatedAt time.Time
	Up        func(*gorm.DB) error
	Down      func(*gorm.DB) error
}

// MigrationRecord is a row in the tracking table.
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

var (
	globalMigrations = make([]*Migration, 0)
	registryMutex    sync.RWMutex
)

// RegisterMigration adds a migration to the global registry. Generated
// migration files call this from init.
func RegisterMigration(m *Migration) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalMigrations = append(globalMigrations, m)
}

// GetRegisteredMigrations returns a copy of the global registry.
func GetRegisteredMigrations() []*Migration {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	migrations := make([]*Migration, len(globalMigrations))
	copy(migrations, globalMigrations)
	return migrations
}

// ResetMigrations clears the global registry. Test helper.
func ResetMigrations() {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalMigrations = make([]*Migration, 0)
}

// Migrator applies registered migrations in order.
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

// NewMigrator creates a Migrator preloaded with the global registry.
func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: GetRegisteredMigrations(),
	}
}

// Register adds a migration to this migrator only.
func (m *Migrator) Register(migration *Migration) {
	m.migrations = append(m.migrations, migration)
}

func (m *Migrator) ensureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

// Init bootstraps the tracking table so a fresh database can record
// applied versions.
func (m *Migrator) Init() error {
	return m.ensureVersionTable()
}

// GetAppliedVersions returns the set of applied migration versions.
func (m *Migrator) GetAppliedVersions() (map[string]bool, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}

	versions := make(map[string]bool)
	for _, record := range records {
		versions[record.Version] = true
	}
	return versions, nil
}

// Up applies every pending migration in registration order.
func (m *Migrator) Up() error {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return err
	}

	for _, mig := range m.migrations {
		if applied[mig.Version] {
			continue
		}
		if err := mig.Up(m.db); err != nil {
			return err
		}
		record := MigrationRecord{
			Version:   mig.Version,
			Name:      mig.Name,
			AppliedAt: time.Now(),
		}
		if err := m.db.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

// Down reverts the most recently applied migration.
func (m *Migrator) Down() error {
	var lastRecord MigrationRecord
	if err := m.db.Order("applied_at DESC").First(&lastRecord).Error; err != nil {
		return err
	}

	var target *Migration
	for _, mig := range m.migrations {
		if mig.Version == lastRecord.Version {
			target = mig
			break
		}
	}
	if target == nil {
		return nil
	}

	if err := target.Down(m.db); err != nil {
		return err
	}
	return m.db.Delete(&lastRecord).Error
}

// ModelRegistry supplies the models whose schema the tool manages.
type ModelRegistry interface {
	GetModels() map[string]interface{}
}

// GlobalModelRegistry is set by the CLI entrypoint before commands run.
var GlobalModelRegistry ModelRegistry

// ValidateRegistry fails when no registry was wired in.
func ValidateRegistry() error {
	if GlobalModelRegistry == nil {
		return fmt.Errorf("no model registry provided: set migration.GlobalModelRegistry before running commands")
	}
	return nil
}
