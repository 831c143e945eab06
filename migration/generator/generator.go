// Package generator turns a schema diff into a versioned migration
// file.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm/schema"

	"github.com/khayaprop/khaya/migration/diff"
)

// Generator writes migration files from a schema diff.
type Generator struct {
	MigrationsDir string
	SchemaDiff    *diff.SchemaDiff
}

func NewGenerator(migrationsDir string) *Generator {
	return &Generator{MigrationsDir: migrationsDir}
}

func (g *Generator) SetSchemaDiff(d *diff.SchemaDiff) {
	g.SchemaDiff = d
}

// CreateMigration generates a new migration file for the current diff.
func (g *Generator) CreateMigration(name string) error {
	if g.SchemaDiff == nil {
		return fmt.Errorf("schema diff not set")
	}

	hasChanges := len(g.SchemaDiff.TablesToCreate) > 0 ||
		len(g.SchemaDiff.TablesToDrop) > 0 ||
		len(g.SchemaDiff.TablesToRename) > 0
	for _, tableMod := range g.SchemaDiff.TablesToModify {
		if !tableMod.IsEmpty() {
			hasChanges = true
			break
		}
	}
	if !hasChanges {
		return fmt.Errorf("no schema changes detected")
	}

	if err := g.validateSchemaDiff(g.SchemaDiff); err != nil {
		return fmt.Errorf("invalid schema diff: %w", err)
	}

	if err := os.MkdirAll(g.MigrationsDir, 0755); err != nil {
		return fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := time.Now().Format("20060102150405")
	filename := fmt.Sprintf("%s_%s.go", version, name)
	path := filepath.Join(g.MigrationsDir, filename)

	upSQL, err := g.generateUpSQL()
	if err != nil {
		return err
	}
	downSQL := g.generateDownSQL()

	content := fmt.Sprintf(`package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/khayaprop/khaya/migration"
)

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version:   "%s",
		Name:      "%s",
		CreatedAt: time.Now(),
		Up: func(db *gorm.DB) error {
			%s
			return nil
		},
		Down: func(db *gorm.DB) error {
			%s
			return nil
		},
	})
}
`, version, name, formatSQLAsExec(upSQL), formatSQLAsExec(downSQL))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create migration file: %w", err)
	}

	return nil
}

// formatSQLAsExec wraps each SQL statement in a db.Exec call with
// error handling.
func formatSQLAsExec(sql string) string {
	if sql == "" {
		return "// No schema changes"
	}
	var stmts []string
	for _, stmt := range splitSQLStatements(sql) {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		stmts = append(stmts, fmt.Sprintf("if err := db.Exec(`%s`).Error; err != nil {\n\t\t\t\treturn err\n\t\t\t}", trimmed))
	}
	return strings.Join(stmts, "\n\t\t\t")
}

// splitSQLStatements splits on semicolons while preserving multi-line
// statements.
func splitSQLStatements(sql string) []string {
	var stmts []string
	var current strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		current.WriteString(line)
		if strings.HasSuffix(trimmed, ";") {
			stmts = append(stmts, current.String())
			current.Reset()
		} else {
			current.WriteString("\n")
		}
	}
	if current.Len() > 0 {
		stmts = append(stmts, current.String())
	}
	return stmts
}

func mapGoTypeToSQLType(goType string) string {
	switch goType {
	case "time":
		return "timestamp"
	case "string":
		return "varchar(255)"
	case "int":
		return "integer"
	case "uint":
		return "bigint"
	case "float", "double":
		return "double precision"
	case "bool":
		return "boolean"
	case "json":
		return "jsonb"
	default:
		return goType
	}
}

// mapGoTypeToSQLTypeWithAutoIncrement uses SERIAL types for
// auto-increment primary keys.
func mapGoTypeToSQLTypeWithAutoIncrement(goType string, isPrimaryKey bool) string {
	if isPrimaryKey {
		switch goType {
		case "uint":
			return "BIGSERIAL"
		case "int":
			return "SERIAL"
		}
	}
	return mapGoTypeToSQLType(goType)
}

// topoSortTables orders tables so referenced tables come first.
func topoSortTables(tables []diff.TableDiff) ([]diff.TableDiff, error) {
	tableMap := make(map[string]diff.TableDiff)
	for _, t := range tables {
		tableMap[t.Schema.Table] = t
	}
	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	var sorted []diff.TableDiff
	var visit func(string) error
	visit = func(name string) error {
		if visited[name] {
			return nil
		}
		if visiting[name] {
			return fmt.Errorf("circular dependency detected at table %s", name)
		}
		visiting[name] = true
		t, ok := tableMap[name]
		if !ok {
			return fmt.Errorf("table %s not found", name)
		}
		for _, fk := range t.ForeignKeysToAdd {
			if fk.Schema.Table != "" && fk.Schema.Table != t.Schema.Table {
				if _, known := tableMap[fk.Schema.Table]; known {
					if err := visit(fk.Schema.Table); err != nil {
						return err
					}
				}
			}
		}
		visiting[name] = false
		visited[name] = true
		sorted = append(sorted, t)
		return nil
	}
	for _, t := range tables {
		if err := visit(t.Schema.Table); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}

func (g *Generator) generateUpSQL() (string, error) {
	if g.SchemaDiff == nil {
		return "", nil
	}

	var statements []string

	tablesToCreate, err := topoSortTables(g.SchemaDiff.TablesToCreate)
	if err != nil {
		return "", err
	}

	for _, table := range tablesToCreate {
		statements = append(statements, g.generateCreateTableSQL(table))
	}
	for _, table := range g.SchemaDiff.TablesToModify {
		statements = append(statements, g.generateModifyTableSQL(table)...)
	}

	return strings.Join(statements, "\n"), nil
}

func (g *Generator) generateDownSQL() string {
	if g.SchemaDiff == nil {
		return ""
	}

	var statements []string

	for _, table := range g.SchemaDiff.TablesToModify {
		for _, idx := range table.IndexesToAdd {
			statements = append(statements, fmt.Sprintf("DROP INDEX IF EXISTS %s;", normalizeIndexName(idx.Name)))
		}
	}
	for _, table := range g.SchemaDiff.TablesToModify {
		for _, fk := range table.ForeignKeysToAdd {
			if fk.Field != nil {
				statements = append(statements, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT IF EXISTS fk_%s_%s_fkey;",
					quoteIdentifier(table.Schema.Table),
					table.Schema.Table,
					fk.Field.DBName))
			}
		}
	}

	// Drop created tables children-first.
	tablesToDrop, err := topoSortTables(g.SchemaDiff.TablesToCreate)
	if err != nil {
		tablesToDrop = g.SchemaDiff.TablesToCreate
	}
	for i := len(tablesToDrop) - 1; i >= 0; i-- {
		statements = append(statements, fmt.Sprintf("DROP TABLE IF EXISTS %s;", quoteIdentifier(tablesToDrop[i].Schema.Table)))
	}

	return strings.Join(statements, "\n")
}

func (g *Generator) generateCreateTableSQL(table diff.TableDiff) string {
	var columns []string
	var tableConstraints []string
	var indexSQLs []string

	for _, col := range table.FieldsToAdd {
		sqlType := mapGoTypeToSQLTypeWithAutoIncrement(string(col.DataType), col.PrimaryKey)
		columnDef := fmt.Sprintf("%s %s", col.DBName, sqlType)
		if col.NotNull {
			columnDef += " NOT NULL"
		}
		if col.PrimaryKey {
			columnDef += " PRIMARY KEY"
		}
		if !col.PrimaryKey && col.DefaultValue != "" {
			columnDef += fmt.Sprintf(" DEFAULT %v", col.DefaultValue)
		}
		columns = append(columns, "    "+columnDef)
	}

	for _, fk := range table.ForeignKeysToAdd {
		if fk.Field != nil && fk.Schema != nil {
			fkDef := fmt.Sprintf("CONSTRAINT fk_%s_%s_fkey FOREIGN KEY (%s) REFERENCES %s(id) ON DELETE CASCADE",
				table.Schema.Table,
				fk.Field.DBName,
				quoteIdentifier(fk.Field.DBName),
				quoteIdentifier(fk.Schema.Table))
			tableConstraints = append(tableConstraints, "    "+fkDef)
		}
	}

	for _, idx := range table.IndexesToAdd {
		idxName := normalizeIndexName(idx.Name)
		fieldNames := make([]string, len(idx.Fields))
		for i, f := range idx.Fields {
			fieldNames[i] = quoteIdentifier(f.DBName)
		}
		if isUniqueIndex(idx) {
			tableConstraints = append(tableConstraints, fmt.Sprintf("    CONSTRAINT %s UNIQUE (%s)", idxName, strings.Join(fieldNames, ", ")))
		} else {
			indexSQLs = append(indexSQLs, fmt.Sprintf("CREATE INDEX %s ON %s (%s);", idxName, quoteIdentifier(table.Schema.Table), strings.Join(fieldNames, ", ")))
		}
	}

	lines := append(columns, tableConstraints...)
	createTableSQL := fmt.Sprintf("CREATE TABLE %s (\n%s\n);", quoteIdentifier(table.Schema.Table), strings.Join(lines, ",\n"))

	stmts := append([]string{createTableSQL}, indexSQLs...)
	return strings.Join(stmts, "\n")
}

func (g *Generator) generateModifyTableSQL(table diff.TableDiff) []string {
	var statements []string

	for _, col := range table.FieldsToAdd {
		sqlType := mapGoTypeToSQLTypeWithAutoIncrement(string(col.DataType), col.PrimaryKey)
		columnDef := fmt.Sprintf("%s %s", quoteIdentifier(col.DBName), sqlType)
		if col.NotNull {
			columnDef += " NOT NULL"
		}
		if col.DefaultValue != "" {
			columnDef += fmt.Sprintf(" DEFAULT %v", col.DefaultValue)
		}
		statements = append(statements, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", quoteIdentifier(table.Schema.Table), columnDef))
	}

	for _, col := range table.FieldsToDrop {
		statements = append(statements, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", quoteIdentifier(table.Schema.Table), quoteIdentifier(col.DBName)))
	}

	for _, col := range table.FieldsToModify {
		sqlType := mapGoTypeToSQLTypeWithAutoIncrement(string(col.DataType), col.PrimaryKey)
		statements = append(statements, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s;", quoteIdentifier(table.Schema.Table), quoteIdentifier(col.DBName), sqlType))
	}

	for _, fk := range table.ForeignKeysToAdd {
		if fk.Field != nil && fk.Schema != nil {
			statements = append(statements, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT fk_%s_%s_fkey FOREIGN KEY (%s) REFERENCES %s(id) ON DELETE CASCADE;",
				quoteIdentifier(table.Schema.Table),
				table.Schema.Table,
				fk.Field.DBName,
				quoteIdentifier(fk.Field.DBName),
				quoteIdentifier(fk.Schema.Table)))
		}
	}

	for _, idx := range table.IndexesToAdd {
		idxName := normalizeIndexName(idx.Name)
		fieldNames := make([]string, len(idx.Fields))
		for i, f := range idx.Fields {
			fieldNames[i] = quoteIdentifier(f.DBName)
		}
		unique := ""
		if isUniqueIndex(idx) {
			unique = "UNIQUE "
		}
		statements = append(statements, fmt.Sprintf("CREATE %sINDEX %s ON %s (%s);",
			unique, idxName, quoteIdentifier(table.Schema.Table), strings.Join(fieldNames, ", ")))
	}

	return statements
}

func (g *Generator) validateSchemaDiff(d *diff.SchemaDiff) error {
	if d == nil {
		return fmt.Errorf("schema diff cannot be nil")
	}

	columnNames := make(map[string]map[string]bool)

	for _, table := range d.TablesToCreate {
		if table.Schema.Table == "" {
			return fmt.Errorf("table name cannot be empty")
		}

		columnNames[table.Schema.Table] = make(map[string]bool)

		for _, col := range table.FieldsToAdd {
			if col.DBName == "" {
				return fmt.Errorf("column name cannot be empty in table %s", table.Schema.Table)
			}
			if columnNames[table.Schema.Table][col.DBName] {
				return fmt.Errorf("duplicate column name %s in table %s", col.DBName, table.Schema.Table)
			}
			columnNames[table.Schema.Table][col.DBName] = true

			if !isValidColumnType(string(col.DataType)) {
				return fmt.Errorf("unsupported column type %s for column %s in table %s", col.DataType, col.DBName, table.Schema.Table)
			}
		}

		for _, fk := range table.ForeignKeysToAdd {
			if fk.Field != nil && !columnNames[table.Schema.Table][fk.Field.DBName] {
				return fmt.Errorf("foreign key column %s does not exist in table %s", fk.Field.DBName, table.Schema.Table)
			}
		}

		for _, idx := range table.IndexesToAdd {
			for _, col := range idx.Fields {
				if !columnNames[table.Schema.Table][col.DBName] {
					return fmt.Errorf("index references non-existent column %s in table %s", col.DBName, table.Schema.Table)
				}
			}
		}
	}

	return nil
}

func isValidColumnType(columnType string) bool {
	validTypes := map[string]bool{
		"int":       true,
		"integer":   true,
		"bigint":    true,
		"uint":      true,
		"string":    true,
		"text":      true,
		"varchar":   true,
		"bool":      true,
		"boolean":   true,
		"float":     true,
		"float64":   true,
		"double":    true,
		"decimal":   true,
		"time":      true,
		"timestamp": true,
		"json":      true,
		"jsonb":     true,
		"uuid":      true,
	}

	re := regexp.MustCompile(`^([a-zA-Z_ ]+)(\(.*\))?$`)
	matches := re.FindStringSubmatch(columnType)
	if len(matches) > 1 {
		return validTypes[strings.ToLower(strings.TrimSpace(matches[1]))]
	}
	return false
}

// isUniqueIndex covers both GORM-parsed indexes (Class) and
// introspected ones (Option).
func isUniqueIndex(idx *schema.Index) bool {
	return strings.EqualFold(idx.Class, "UNIQUE") || strings.EqualFold(idx.Option, "UNIQUE")
}

// normalizeIndexName collapses the idx_idx_ prefix GORM produces for
// tagged index names.
func normalizeIndexName(name string) string {
	if strings.HasPrefix(name, "idx_idx_") {
		return strings.Replace(name, "idx_idx_", "idx_", 1)
	}
	return name
}

func quoteIdentifier(name string) string {
	return "\"" + name + "\""
}
