package diff

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// GetCurrentSchema reads the schema from the live database.
func (c *SchemaComparer) GetCurrentSchema() (map[string]*schema.Schema, error) {
	return c.getCurrentSchema()
}

// GetModelSchemas builds schemas from the provided model instances.
func (c *SchemaComparer) GetModelSchemas(models ...interface{}) (map[string]*schema.Schema, error) {
	modelSchemas := make(map[string]*schema.Schema)
	originalRelationships := make(map[string]*schema.Relationships)

	// First pass: collect fields and stash relationships for later.
	for _, model := range models {
		stmt := &gorm.Statement{DB: c.db}
		if err := stmt.Parse(model); err != nil {
			return nil, err
		}
		s := stmt.Schema
		columns := make([]*schema.Field, 0)
		seenColumns := make(map[string]bool)
		for _, field := range s.Fields {
			if field.DBName == "" {
				continue
			}
			if seenColumns[field.DBName] {
				continue
			}
			if isRelationshipField(field) {
				continue
			}
			seenColumns[field.DBName] = true
			columns = append(columns, field)
		}
		if embedsGormModel(reflect.TypeOf(model)) {
			for _, def := range gormDefaultFields() {
				if !seenColumns[def.DBName] {
					def.IgnoreMigration = true
					columns = append(columns, def)
					seenColumns[def.DBName] = true
				}
			}
		}

		originalRelationships[s.Table] = &s.Relationships

		// Copy without the relationships to avoid copying locks.
		copySchema := schema.Schema{
			Name:          s.Name,
			Table:         s.Table,
			Fields:        columns,
			Relationships: schema.Relationships{},
		}
		modelSchemas[s.Table] = &copySchema
	}

	// Second pass: resolve belongs-to relationships onto real FK columns.
	for tableName, s := range modelSchemas {
		relationships := schema.Relationships{}
		originalRel := originalRelationships[tableName]

		for _, rel := range originalRel.BelongsTo {
			dbColumns := make(map[string]*schema.Field)
			for _, field := range s.Fields {
				dbColumns[strings.ToLower(field.DBName)] = field
			}

			var candidates []string
			if rel.Field != nil && rel.Field.TagSettings != nil {
				if fkFieldName, exists := rel.Field.TagSettings["FOREIGNKEY"]; exists {
					candidates = append(candidates, fkFieldName, normalizeFieldName(fkFieldName), strings.ToLower(fkFieldName))
				}
			}
			if rel.FieldSchema != nil {
				candidates = append(candidates,
					rel.FieldSchema.Name+"ID",
					normalizeFieldName(rel.FieldSchema.Name)+"_id",
					strings.ToLower(rel.FieldSchema.Name)+"id")
			}

			var fkField *schema.Field
			for _, candidate := range candidates {
				if field, ok := dbColumns[strings.ToLower(candidate)]; ok {
					fkField = field
					break
				}
			}

			if fkField == nil || fkField.DBName == "" || rel.FieldSchema == nil {
				continue
			}

			var referencedSchema *schema.Schema
			for _, relatedSchema := range modelSchemas {
				if relatedSchema.Name == rel.FieldSchema.Name {
					referencedSchema = relatedSchema
					break
				}
			}
			if referencedSchema == nil {
				continue
			}

			relationships.BelongsTo = append(relationships.BelongsTo, &schema.Relationship{
				Type:        schema.BelongsTo,
				Field:       fkField,
				Schema:      referencedSchema,
				FieldSchema: rel.FieldSchema,
			})
		}

		for _, rel := range originalRel.HasMany {
			if rel.Field != nil {
				relationships.HasMany = append(relationships.HasMany, rel)
			}
		}
		for _, rel := range originalRel.HasOne {
			if rel.Field != nil {
				relationships.HasOne = append(relationships.HasOne, rel)
			}
		}
		for _, rel := range originalRel.Many2Many {
			if rel.Field != nil {
				relationships.Many2Many = append(relationships.Many2Many, rel)
			}
		}

		s.Relationships.BelongsTo = relationships.BelongsTo
		s.Relationships.HasMany = relationships.HasMany
		s.Relationships.HasOne = relationships.HasOne
		s.Relationships.Many2Many = relationships.Many2Many
	}

	return modelSchemas, nil
}

// CompareSchemas diffs two schema maps.
func (c *SchemaComparer) CompareSchemas(current, target map[string]*schema.Schema) (*SchemaDiff, error) {
	return c.compareSchemas(current, target)
}

func (c *SchemaComparer) getCurrentSchema() (map[string]*schema.Schema, error) {
	migrator := NewSchemaMigrator(c.db)

	tables, err := migrator.GetTables()
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %v", err)
	}

	schemas := make(map[string]*schema.Schema)

	for _, tableName := range tables {
		// Skip migration tracking tables.
		if tableName == "migration_records" || tableName == "schema_migrations" {
			continue
		}

		columns, err := migrator.ColumnTypes(tableName)
		if err != nil {
			continue
		}

		var fields []*schema.Field
		for _, col := range columns {
			isPrimaryKey, _ := col.PrimaryKey()
			isAutoIncrement, _ := col.AutoIncrement()
			defaultValue, _ := col.DefaultValue()
			length, _ := col.Length()
			precision, scale, _ := col.DecimalSize()
			nullable, _ := col.Nullable()

			fields = append(fields, &schema.Field{
				Name:          toExportedFieldName(col.Name()),
				DBName:        col.Name(),
				DataType:      schema.DataType(col.DatabaseTypeName()),
				NotNull:       !nullable,
				PrimaryKey:    isPrimaryKey,
				AutoIncrement: isAutoIncrement,
				DefaultValue:  defaultValue,
				Size:          int(length),
				Precision:     int(precision),
				Scale:         int(scale),
				Creatable:     true,
				Updatable:     true,
				Readable:      true,
			})
		}

		relationships, err := migrator.GetRelationships(tableName)
		if err != nil {
			// Foreign keys are not critical for basic comparison.
			relationships = nil
		}

		tableSchema := &schema.Schema{
			Name:   toExportedFieldName(tableName),
			Table:  tableName,
			Fields: fields,
		}
		tableSchema.Relationships.BelongsTo = append(tableSchema.Relationships.BelongsTo, relationships...)
		schemas[tableName] = tableSchema
	}

	return schemas, nil
}

func normalizeTableName(name string) string {
	return strings.ToLower(name)
}

func (c *SchemaComparer) compareSchemas(current, target map[string]*schema.Schema) (*SchemaDiff, error) {
	diff := &SchemaDiff{
		TablesToCreate: make([]TableDiff, 0),
		TablesToDrop:   make([]string, 0),
		TablesToModify: make([]TableDiff, 0),
		TablesToRename: make([]TableRename, 0),
	}

	normalizedCurrent := make(map[string]*schema.Schema)
	normalizedTarget := make(map[string]*schema.Schema)
	for name, s := range current {
		normalizedCurrent[normalizeTableName(name)] = s
	}
	for name, s := range target {
		normalizedTarget[normalizeTableName(name)] = s
	}

	for normalizedName, targetSchema := range normalizedTarget {
		currentSchema, exists := normalizedCurrent[normalizedName]
		if !exists {
			// Diff against an empty schema so relationships are included.
			emptySchema := &schema.Schema{
				Table:         targetSchema.Table,
				Fields:        []*schema.Field{},
				Relationships: schema.Relationships{},
			}
			diff.TablesToCreate = append(diff.TablesToCreate, c.compareTable(emptySchema, targetSchema))
		} else {
			tableDiff := c.compareTable(currentSchema, targetSchema)
			if !tableDiff.IsEmpty() {
				diff.TablesToModify = append(diff.TablesToModify, tableDiff)
			}
		}
	}

	for normalizedName := range normalizedCurrent {
		if _, exists := normalizedTarget[normalizedName]; !exists {
			for originalName := range current {
				if normalizeTableName(originalName) == normalizedName {
					diff.TablesToDrop = append(diff.TablesToDrop, originalName)
					break
				}
			}
		}
	}

	return diff, nil
}

// CompareTable diffs two table schemas.
func (c *SchemaComparer) CompareTable(current, target *schema.Schema) TableDiff {
	return c.compareTable(current, target)
}

func (c *SchemaComparer) compareTable(current, target *schema.Schema) TableDiff {
	diff := TableDiff{
		Schema:            target,
		FieldsToAdd:       make([]*schema.Field, 0),
		FieldsToDrop:      make([]*schema.Field, 0),
		FieldsToModify:    make([]*schema.Field, 0),
		FieldsToRename:    make([]ColumnRename, 0),
		IndexesToAdd:      make([]*schema.Index, 0),
		IndexesToDrop:     make([]*schema.Index, 0),
		IndexesToModify:   make([]*schema.Index, 0),
		ForeignKeysToAdd:  make([]*schema.Relationship, 0),
		ForeignKeysToDrop: make([]*schema.Relationship, 0),
	}

	currentFields := make(map[string]*schema.Field)
	for _, field := range current.Fields {
		currentFields[field.DBName] = normalizeFieldMetadata(field)
	}
	targetFields := make(map[string]*schema.Field)
	for _, field := range target.Fields {
		targetFields[field.DBName] = normalizeFieldMetadata(field)
	}

	for _, field := range gormDefaultFields() {
		if f, exists := targetFields[field.DBName]; exists {
			f.IgnoreMigration = true
		}
		if f, exists := currentFields[field.DBName]; exists {
			f.IgnoreMigration = true
		}
	}

	for name, targetField := range targetFields {
		if targetField == nil || targetField.DBName == "" {
			continue
		}
		if currentField, exists := currentFields[name]; !exists {
			diff.FieldsToAdd = append(diff.FieldsToAdd, targetField)
		} else if !fieldsEqual(currentField, targetField) {
			diff.FieldsToModify = append(diff.FieldsToModify, targetField)
		}
	}
	for name, currentField := range currentFields {
		if _, exists := targetFields[name]; !exists {
			diff.FieldsToDrop = append(diff.FieldsToDrop, currentField)
		}
	}

	currentIndexes := make(map[string]*schema.Index)
	for _, idx := range current.ParseIndexes() {
		currentIndexes[idx.Name] = idx
	}
	targetIndexes := make(map[string]*schema.Index)
	for _, idx := range target.ParseIndexes() {
		targetIndexes[idx.Name] = idx
	}

	for name, targetIdx := range targetIndexes {
		if _, exists := currentIndexes[name]; !exists {
			diff.IndexesToAdd = append(diff.IndexesToAdd, targetIdx)
		} else if !indexesEqual(currentIndexes[name], targetIdx) {
			diff.IndexesToModify = append(diff.IndexesToModify, targetIdx)
		}
	}
	if len(current.Fields) > 0 {
		for name, currentIdx := range currentIndexes {
			if _, exists := targetIndexes[name]; !exists {
				diff.IndexesToDrop = append(diff.IndexesToDrop, currentIdx)
			}
		}
	}

	currentRelationships := make(map[string]*schema.Relationship)
	for _, rel := range current.Relationships.BelongsTo {
		if rel.Field != nil && len(rel.References) > 0 {
			ident := fmt.Sprintf("%s_%s", rel.Field.Schema.Table, rel.References[0].ForeignKey.DBName)
			currentRelationships[ident] = rel
		}
	}
	targetRelationships := make(map[string]*schema.Relationship)
	for _, rel := range target.Relationships.BelongsTo {
		if rel.Field != nil && rel.Field.Schema != nil {
			ident := fmt.Sprintf("%s_%s", rel.Field.Schema.Table, rel.Field.DBName)
			targetRelationships[ident] = rel
		}
	}

	for ident, targetRel := range targetRelationships {
		if currentRel, exists := currentRelationships[ident]; !exists {
			diff.ForeignKeysToAdd = append(diff.ForeignKeysToAdd, targetRel)
		} else if !relationshipsEqual(currentRel, targetRel) {
			diff.ForeignKeysToAdd = append(diff.ForeignKeysToAdd, targetRel)
		}
	}
	if len(current.Fields) > 0 {
		for ident, currentRel := range currentRelationships {
			if _, exists := targetRelationships[ident]; !exists {
				diff.ForeignKeysToDrop = append(diff.ForeignKeysToDrop, currentRel)
			}
		}
	}

	return diff
}

// normalizeFieldMetadata strips GORM metadata that has no bearing on
// the database schema.
func normalizeFieldMetadata(field *schema.Field) *schema.Field {
	if field == nil {
		return nil
	}
	return &schema.Field{
		Name:            field.Name,
		DBName:          field.DBName,
		DataType:        field.DataType,
		GORMDataType:    field.GORMDataType,
		PrimaryKey:      field.PrimaryKey,
		AutoIncrement:   field.AutoIncrement,
		NotNull:         field.NotNull,
		Unique:          field.Unique,
		DefaultValue:    field.DefaultValue,
		Size:            field.Size,
		Precision:       field.Precision,
		Scale:           field.Scale,
		Comment:         field.Comment,
		IgnoreMigration: field.IgnoreMigration,
	}
}

func fieldsEqual(a, b *schema.Field) bool {
	if !strings.EqualFold(a.DBName, b.DBName) {
		return false
	}
	if normalizeDBType(a.DataType) != normalizeDBType(b.DataType) {
		return false
	}
	if a.PrimaryKey != b.PrimaryKey {
		return false
	}
	if a.Unique != b.Unique {
		return false
	}
	if normalizeDefaultValue(a.DefaultValue) != normalizeDefaultValue(b.DefaultValue) {
		return false
	}
	if a.AutoIncrement != b.AutoIncrement {
		return false
	}
	// Primary keys report nullability inconsistently across drivers.
	if !a.PrimaryKey && a.NotNull != b.NotNull {
		return false
	}
	return true
}

// normalizeDBType folds Go, GORM, and Postgres type names into one
// comparable name.
func normalizeDBType(dt schema.DataType) string {
	dtStr := strings.ToLower(string(dt))
	switch {
	case dtStr == "int" || dtStr == "int32" || dtStr == "int4" || dtStr == "int64" || dtStr == "int8" || dtStr == "uint" || dtStr == "bigint":
		return "bigint"
	case dtStr == "float64" || dtStr == "float32" || dtStr == "float" || dtStr == "real" || dtStr == "numeric" || dtStr == "decimal" || strings.HasPrefix(dtStr, "decimal(") || dtStr == "float8" || dtStr == "double precision" || dtStr == "double":
		return "decimal"
	case dtStr == "string" || dtStr == "varchar" || dtStr == "text" || dtStr == "character varying":
		return "varchar"
	case dtStr == "bool" || dtStr == "boolean":
		return "boolean"
	case dtStr == "time" || dtStr == "timestamp" || dtStr == "timestamp without time zone" || dtStr == "timestamp with time zone":
		return "timestamp"
	case dtStr == "json" || dtStr == "jsonb":
		return "jsonb"
	}
	return dtStr
}

func normalizeDefaultValue(dv string) string {
	if dv == "" {
		return ""
	}

	dv = strings.Trim(dv, "'\"")
	dv = strings.ToLower(dv)

	if strings.HasPrefix(dv, "nextval") {
		return "auto_increment"
	}

	switch dv {
	case "null", "default null":
		return ""
	case "true", "false":
		return dv
	case "0", "0.0":
		return "0"
	case "now()", "current_timestamp", "current_timestamp()":
		return "current_timestamp"
	}
	return dv
}

// isRelationshipField reports whether a parsed field is a navigation
// field rather than a column.
func isRelationshipField(field *schema.Field) bool {
	// Database-extracted fields have no FieldType.
	if field.FieldType == nil {
		return false
	}

	if field.DBName == "" {
		return true
	}
	if field.FieldType.Kind() == reflect.Ptr && field.FieldType.Elem().Kind() == reflect.Struct {
		return true
	}
	if field.FieldType.Kind() == reflect.Slice && field.FieldType.Elem().Kind() == reflect.Struct {
		return true
	}
	if strings.HasPrefix(field.Tag.Get("gorm"), "foreignKey:") {
		return true
	}
	return false
}

func indexesEqual(a, b *schema.Index) bool {
	if a.Name != b.Name || a.Class != b.Class || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].DBName != b.Fields[i].DBName {
			return false
		}
	}
	return true
}

// toExportedFieldName converts snake_case to ExportedCamelCase.
func toExportedFieldName(name string) string {
	if name == "" {
		return "Field"
	}
	var b strings.Builder
	capitalizeNext := true
	for _, r := range name {
		if r == '_' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			r = unicode.ToUpper(r)
			capitalizeNext = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func embedsGormModel(t reflect.Type) bool {
	t = indirectType(t)
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.PkgPath() == "gorm.io/gorm" && f.Type.Name() == "Model" {
			return true
		}
	}
	return false
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// gormDefaultFields returns the columns gorm.Model contributes. They
// are excluded from diffing since AutoMigrate owns them.
func gormDefaultFields() []*schema.Field {
	return []*schema.Field{
		{Name: "ID", DBName: "id", DataType: "uint", PrimaryKey: true, AutoIncrement: true, IgnoreMigration: true},
		{Name: "CreatedAt", DBName: "created_at", DataType: "time", IgnoreMigration: true},
		{Name: "UpdatedAt", DBName: "updated_at", DataType: "time", IgnoreMigration: true},
		{Name: "DeletedAt", DBName: "deleted_at", DataType: "time", IgnoreMigration: true},
	}
}

// normalizeFieldName converts CamelCase to snake_case.
func normalizeFieldName(name string) string {
	var result []rune
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				result = append(result, '_')
			}
			result = append(result, unicode.ToLower(r))
		} else {
			result = append(result, r)
		}
	}
	return string(result)
}

func relationshipsEqual(source, target *schema.Relationship) bool {
	if source == nil || target == nil {
		return false
	}
	if source.Field == nil || target.Field == nil {
		return false
	}
	if source.Field.Schema == nil || target.Field.Schema == nil {
		return false
	}
	if source.Field.Schema.Table != target.Field.Schema.Table {
		return false
	}
	return true
}
