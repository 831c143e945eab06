// Package file loads migration files from disk and registers them.
package file

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MigrationFile represents a single migration file on disk.
type MigrationFile struct {
	Path      string
	Version   string
	Name      string
	CreatedAt time.Time
	Up        func(*gorm.DB) error
	Down      func(*gorm.DB) error
}

// MigrationTemplate defines the naming format for migration files.
type MigrationTemplate struct {
	Version string // time layout for version numbers
	Name    string // format string for migration names
}

// FormatName formats a migration name according to the template.
func (t *MigrationTemplate) FormatName(name string) string {
	if t.Name == "" {
		return name
	}
	return fmt.Sprintf(t.Name, name)
}

// MigrationLoader loads migration files from a directory.
type MigrationLoader struct {
	directory string
	template  *MigrationTemplate
}

// NewMigrationLoader creates a loader for the given directory.
func NewMigrationLoader(directory string, template *MigrationTemplate) *MigrationLoader {
	if template == nil {
		template = &MigrationTemplate{
			Version: "20060102150405",
			Name:    "%s",
		}
	}
	return &MigrationLoader{
		directory: directory,
		template:  template,
	}
}
