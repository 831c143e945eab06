// Package parser builds GORM schema descriptions from the registered
// models.
package parser

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/khayaprop/khaya/migration"
)

type ModelParser struct {
	db     *gorm.DB
	models map[string]interface{}
}

func NewModelParser(db *gorm.DB) (*ModelParser, error) {
	if err := migration.ValidateRegistry(); err != nil {
		return nil, err
	}

	p := &ModelParser{
		db:     db,
		models: migration.GlobalModelRegistry.GetModels(),
	}

	if len(p.models) == 0 {
		return nil, fmt.Errorf("no models found in registry")
	}

	return p, nil
}

// Parse produces a schema per registered model, keyed by model name.
func (p *ModelParser) Parse() (map[string]*schema.Schema, error) {
	schemas := make(map[string]*schema.Schema)

	for name, model := range p.models {
		instance := reflect.New(indirectType(reflect.TypeOf(model))).Interface()
		stmt := &gorm.Statement{DB: p.db}
		if err := stmt.Parse(instance); err != nil {
			return nil, fmt.Errorf("failed to parse model %s: %w. Check for unsupported field types or incorrect struct tags", name, err)
		}
		mSchema := stmt.Schema
		if mSchema == nil {
			return nil, fmt.Errorf("no schema produced for model %s. This can happen if the model is empty or invalid", name)
		}

		mSchema.Name = name

		if err := p.validateAndFixSchema(mSchema); err != nil {
			return nil, fmt.Errorf("failed to validate schema for model %s: %w", name, err)
		}

		schemas[name] = mSchema
	}
	return schemas, nil
}

// validateAndFixSchema drops relationship-only fields and fills in
// missing column metadata.
func (p *ModelParser) validateAndFixSchema(s *schema.Schema) error {
	if s == nil {
		return fmt.Errorf("schema is nil")
	}
	if s.Table == "" {
		return fmt.Errorf("table name is empty")
	}

	var validFields []*schema.Field
	for _, field := range s.Fields {
		if field == nil {
			continue
		}
		if isStructReferenceField(field) {
			continue
		}
		if field.DBName == "" {
			field.DBName = strings.ToLower(field.Name)
		}
		if field.DataType == "" {
			field.DataType = inferDataType(field)
		}
		validFields = append(validFields, field)
	}
	s.Fields = validFields

	return nil
}

// isStructReferenceField reports whether a field exists only for GORM
// navigation and has no column of its own.
func isStructReferenceField(field *schema.Field) bool {
	if field == nil || field.FieldType == nil {
		return false
	}

	ft := field.FieldType
	if ft.Kind() == reflect.Ptr && ft.Elem().Kind() == reflect.Struct {
		return ft.Elem().String() != "time.Time"
	}
	if ft.Kind() == reflect.Slice && ft.Elem().Kind() == reflect.Struct {
		return true
	}
	return false
}

// inferDataType maps a Go field type to a GORM data type when the tag
// did not set one.
func inferDataType(field *schema.Field) schema.DataType {
	if field == nil {
		return schema.DataType("string")
	}

	typeName := field.FieldType.String()
	if typeName == "time.Time" || typeName == "*time.Time" {
		return schema.DataType("time")
	}

	if field.FieldType.Kind() == reflect.Slice {
		return schema.DataType("json")
	}

	switch field.FieldType.Kind() {
	case reflect.String:
		return schema.DataType("varchar")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return schema.DataType("int")
	case reflect.Int64:
		return schema.DataType("bigint")
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return schema.DataType("uint")
	case reflect.Uint64:
		return schema.DataType("bigint")
	case reflect.Float32:
		return schema.DataType("float")
	case reflect.Float64:
		return schema.DataType("double")
	case reflect.Bool:
		return schema.DataType("bool")
	case reflect.Struct:
		return schema.DataType("json")
	default:
		return schema.DataType("string")
	}
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
