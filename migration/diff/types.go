// Package diff compares the live database schema against the schema
// implied by the registered models.
package diff

import (
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaDiff represents the differences between two database schemas.
type SchemaDiff struct {
	TablesToCreate []TableDiff
	TablesToDrop   []string
	TablesToModify []TableDiff
	TablesToRename []TableRename
}

// TableDiff represents the differences in a single table.
type TableDiff struct {
	Schema            *schema.Schema
	FieldsToAdd       []*schema.Field
	FieldsToDrop      []*schema.Field
	FieldsToModify    []*schema.Field
	FieldsToRename    []ColumnRename
	IndexesToAdd      []*schema.Index
	IndexesToDrop     []*schema.Index
	IndexesToModify   []*schema.Index
	ForeignKeysToAdd  []*schema.Relationship
	ForeignKeysToDrop []*schema.Relationship
}

// IsEmpty reports whether the table diff carries no changes.
func (d *TableDiff) IsEmpty() bool {
	return len(d.FieldsToAdd) == 0 &&
		len(d.FieldsToModify) == 0 &&
		len(d.FieldsToDrop) == 0 &&
		len(d.IndexesToAdd) == 0 &&
		len(d.IndexesToDrop) == 0 &&
		len(d.ForeignKeysToAdd) == 0 &&
		len(d.ForeignKeysToDrop) == 0
}

// ColumnRename represents a column rename operation.
type ColumnRename struct {
	OldName string
	NewName string
}

// TableRename represents a table rename operation.
type TableRename struct {
	OldName string
	NewName string
}

// SchemaComparer compares database schemas.
type SchemaComparer struct {
	db *gorm.DB
}

// NewSchemaComparer creates a new schema comparer.
func NewSchemaComparer(db *gorm.DB) *SchemaComparer {
	return &SchemaComparer{db: db}
}

// Compare diffs the current database schema against the given models.
func (c *SchemaComparer) Compare(models ...interface{}) (*SchemaDiff, error) {
	currentSchema, err := c.getCurrentSchema()
	if err != nil {
		return nil, err
	}

	modelSchemas, err := c.GetModelSchemas(models...)
	if err != nil {
		return nil, err
	}

	return c.compareSchemas(currentSchema, modelSchemas)
}
