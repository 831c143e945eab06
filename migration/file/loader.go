package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/khayaprop/khaya/migration"
)

// LoadMigrations registers every migration file in the directory and
// returns the full registry sorted by version.
func (l *MigrationLoader) LoadMigrations() ([]*migration.Migration, error) {
	if _, err := os.Stat(l.directory); os.IsNotExist(err) {
		return migration.GetRegisteredMigrations(), nil
	}

	files, err := os.ReadDir(l.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	registered := make(map[string]bool)
	for _, m := range migration.GetRegisteredMigrations() {
		registered[m.Version] = true
	}

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".go") {
			continue
		}
		version := strings.SplitN(strings.TrimSuffix(f.Name(), ".go"), "_", 2)[0]
		if registered[version] {
			continue
		}
		if err := l.parseMigrationFile(filepath.Join(l.directory, f.Name())); err != nil {
			return nil, fmt.Errorf("failed to parse migration file %s: %w", f.Name(), err)
		}
	}

	migrations := migration.GetRegisteredMigrations()
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// parseMigrationFile builds a Migration whose Up and Down replay the
// SQL statements found in the file.
func (l *MigrationLoader) parseMigrationFile(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fileName := filepath.Base(filePath)
	parts := strings.SplitN(strings.TrimSuffix(fileName, ".go"), "_", 2)
	if len(parts) < 2 {
		return fmt.Errorf("invalid migration filename format: %s", fileName)
	}

	version := parts[0]
	name := parts[1]
	source := string(content)

	migration.RegisterMigration(&migration.Migration{
		Version:   version,
		Name:      name,
		CreatedAt: time.Now(),
		Up: func(db *gorm.DB) error {
			return l.executeMigrationSQL(db, source, "Up")
		},
		Down: func(db *gorm.DB) error {
			return l.executeMigrationSQL(db, source, "Down")
		},
	})

	return nil
}

func (l *MigrationLoader) executeMigrationSQL(db *gorm.DB, content, function string) error {
	statements, err := l.extractSQLFromFunction(content, function)
	if err != nil {
		return fmt.Errorf("failed to extract SQL from %s function: %w", function, err)
	}

	for _, statement := range statements {
		if err := db.Exec(statement).Error; err != nil {
			return fmt.Errorf("failed to execute SQL: %w", err)
		}
	}

	return nil
}

// extractSQLFromFunction pulls the db.Exec statements out of the named
// anonymous function in the file source.
func (l *MigrationLoader) extractSQLFromFunction(content, function string) ([]string, error) {
	var statements []string

	lines := strings.Split(content, "\n")
	inFunction := false

	for i, line := range lines {
		if strings.Contains(line, fmt.Sprintf("%s: func(db *gorm.DB)", function)) {
			inFunction = true
			continue
		}
		if inFunction && strings.Contains(strings.TrimSpace(line), "return nil") {
			break
		}
		if inFunction && strings.Contains(line, "db.Exec") {
			sql, err := l.extractBacktickSQL(lines, i)
			if err != nil {
				return nil, fmt.Errorf("failed to extract SQL at line %d: %w", i+1, err)
			}
			if sql != "" {
				statements = append(statements, sql)
			}
		}
	}

	return statements, nil
}

// extractBacktickSQL collects the backtick-quoted string starting on
// the given line, which may span multiple lines.
func (l *MigrationLoader) extractBacktickSQL(lines []string, startLine int) (string, error) {
	var sql strings.Builder
	backtickCount := 0
	inSQL := false

	for i := startLine; i < len(lines); i++ {
		for _, char := range lines[i] {
			if char == '`' {
				backtickCount++
				if backtickCount == 1 {
					inSQL = true
					continue
				}
				return sql.String(), nil
			}
			if inSQL {
				sql.WriteRune(char)
			}
		}
		if inSQL {
			sql.WriteString("\n")
		}
	}

	if inSQL {
		return "", fmt.Errorf("unclosed backtick in SQL at line %d", startLine+1)
	}
	return "", nil
}

// GetPendingMigrations returns migrations not yet recorded as applied.
func (l *MigrationLoader) GetPendingMigrations(db *gorm.DB) ([]*migration.Migration, error) {
	migrations, err := l.LoadMigrations()
	if err != nil {
		return nil, err
	}

	var appliedVersions []string
	if err := db.Table("migration_records").Pluck("version", &appliedVersions).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied versions: %w", err)
	}

	applied := make(map[string]bool)
	for _, version := range appliedVersions {
		applied[version] = true
	}

	var pending []*migration.Migration
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}

	return pending, nil
}
