package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/khayaprop/khaya/migration/diff"
)

func landlordsTable() diff.TableDiff {
	return diff.TableDiff{
		Schema: &schema.Schema{Table: "landlords"},
		FieldsToAdd: []*schema.Field{
			{DBName: "id", DataType: "uint", PrimaryKey: true},
			{DBName: "full_name", DataType: "string", NotNull: true},
			{DBName: "email", DataType: "string"},
		},
		IndexesToAdd: []*schema.Index{
			{
				Name:   "idx_landlords_email",
				Option: "UNIQUE",
				Fields: []schema.IndexOption{{Field: &schema.Field{DBName: "email"}}},
			},
		},
	}
}

func propertiesTable() diff.TableDiff {
	return diff.TableDiff{
		Schema: &schema.Schema{Table: "properties"},
		FieldsToAdd: []*schema.Field{
			{DBName: "id", DataType: "uint", PrimaryKey: true, NotNull: true},
			{DBName: "name", DataType: "string", NotNull: true},
			{DBName: "landlord_id", DataType: "uint", NotNull: true},
		},
		ForeignKeysToAdd: []*schema.Relationship{
			{
				Field:  &schema.Field{DBName: "landlord_id"},
				Schema: &schema.Schema{Table: "landlords"},
			},
		},
		IndexesToAdd: []*schema.Index{
			{
				Name:   "idx_properties_landlord_id",
				Fields: []schema.IndexOption{{Field: &schema.Field{DBName: "landlord_id"}}},
			},
		},
	}
}

func TestGenerateCreateTableSQL(t *testing.T) {
	g := NewGenerator(t.TempDir())
	sql := g.generateCreateTableSQL(propertiesTable())

	assert.Contains(t, sql, `CREATE TABLE "properties"`)
	assert.Contains(t, sql, "id BIGSERIAL NOT NULL PRIMARY KEY")
	assert.Contains(t, sql, "name varchar(255) NOT NULL")
	assert.Contains(t, sql, `CONSTRAINT fk_properties_landlord_id_fkey FOREIGN KEY ("landlord_id") REFERENCES "landlords"(id) ON DELETE CASCADE`)
	assert.Contains(t, sql, `CREATE INDEX idx_properties_landlord_id ON "properties" ("landlord_id");`)
}

func TestGenerateCreateTableSQLUniqueIndex(t *testing.T) {
	g := NewGenerator(t.TempDir())
	sql := g.generateCreateTableSQL(landlordsTable())

	assert.Contains(t, sql, `CONSTRAINT idx_landlords_email UNIQUE ("email")`)
	assert.NotContains(t, sql, "CREATE INDEX idx_landlords_email")
}

func TestGenerateModifyTableSQL(t *testing.T) {
	g := NewGenerator(t.TempDir())
	table := diff.TableDiff{
		Schema: &schema.Schema{Table: "tenants"},
		FieldsToAdd: []*schema.Field{
			{DBName: "employer", DataType: "string"},
		},
		FieldsToDrop: []*schema.Field{
			{DBName: "fax_number"},
		},
		FieldsToModify: []*schema.Field{
			{DBName: "monthly_income", DataType: "decimal"},
		},
	}

	stmts := g.generateModifyTableSQL(table)
	require.Len(t, stmts, 3)
	assert.Equal(t, `ALTER TABLE "tenants" ADD COLUMN "employer" varchar(255);`, stmts[0])
	assert.Equal(t, `ALTER TABLE "tenants" DROP COLUMN "fax_number";`, stmts[1])
	assert.Equal(t, `ALTER TABLE "tenants" ALTER COLUMN "monthly_income" TYPE decimal;`, stmts[2])
}

func TestTopoSortTablesOrdersReferences(t *testing.T) {
	// properties references landlords, so landlords must come first
	// regardless of input order.
	sorted, err := topoSortTables([]diff.TableDiff{propertiesTable(), landlordsTable()})
	require.NoError(t, err)
	require.Len(t, sorted, 2)
	assert.Equal(t, "landlords", sorted[0].Schema.Table)
	assert.Equal(t, "properties", sorted[1].Schema.Table)
}

func TestTopoSortTablesDetectsCycle(t *testing.T) {
	a := diff.TableDiff{
		Schema: &schema.Schema{Table: "a"},
		ForeignKeysToAdd: []*schema.Relationship{
			{Field: &schema.Field{DBName: "b_id"}, Schema: &schema.Schema{Table: "b"}},
		},
	}
	b := diff.TableDiff{
		Schema: &schema.Schema{Table: "b"},
		ForeignKeysToAdd: []*schema.Relationship{
			{Field: &schema.Field{DBName: "a_id"}, Schema: &schema.Schema{Table: "a"}},
		},
	}

	_, err := topoSortTables([]diff.TableDiff{a, b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestGenerateDownSQLDropsInReverseOrder(t *testing.T) {
	g := NewGenerator(t.TempDir())
	g.SetSchemaDiff(&diff.SchemaDiff{
		TablesToCreate: []diff.TableDiff{propertiesTable(), landlordsTable()},
	})

	down := g.generateDownSQL()
	propIdx := strings.Index(down, `DROP TABLE IF EXISTS "properties";`)
	landlordIdx := strings.Index(down, `DROP TABLE IF EXISTS "landlords";`)
	require.NotEqual(t, -1, propIdx)
	require.NotEqual(t, -1, landlordIdx)
	assert.Less(t, propIdx, landlordIdx)
}

func TestValidateSchemaDiff(t *testing.T) {
	g := NewGenerator(t.TempDir())

	t.Run("duplicate column", func(t *testing.T) {
		d := &diff.SchemaDiff{TablesToCreate: []diff.TableDiff{{
			Schema: &schema.Schema{Table: "leases"},
			FieldsToAdd: []*schema.Field{
				{DBName: "status", DataType: "string"},
				{DBName: "status", DataType: "string"},
			},
		}}}
		err := g.validateSchemaDiff(d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate column")
	})

	t.Run("unsupported type", func(t *testing.T) {
		d := &diff.SchemaDiff{TablesToCreate: []diff.TableDiff{{
			Schema: &schema.Schema{Table: "leases"},
			FieldsToAdd: []*schema.Field{
				{DBName: "status", DataType: "blob7"},
			},
		}}}
		err := g.validateSchemaDiff(d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported column type")
	})

	t.Run("index on missing column", func(t *testing.T) {
		d := &diff.SchemaDiff{TablesToCreate: []diff.TableDiff{{
			Schema: &schema.Schema{Table: "leases"},
			FieldsToAdd: []*schema.Field{
				{DBName: "status", DataType: "string"},
			},
			IndexesToAdd: []*schema.Index{
				{Name: "idx_leases_missing", Fields: []schema.IndexOption{{Field: &schema.Field{DBName: "missing"}}}},
			},
		}}}
		err := g.validateSchemaDiff(d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-existent column")
	})
}

func TestIsValidColumnType(t *testing.T) {
	assert.True(t, isValidColumnType("varchar(255)"))
	assert.True(t, isValidColumnType("double precision"))
	assert.True(t, isValidColumnType("decimal(10,2)"))
	assert.False(t, isValidColumnType("polygon"))
}

func TestCreateMigrationNoChanges(t *testing.T) {
	g := NewGenerator(t.TempDir())
	g.SetSchemaDiff(&diff.SchemaDiff{})

	err := g.CreateMigration("noop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema changes")
}

func TestCreateMigrationWritesFile(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)
	g.SetSchemaDiff(&diff.SchemaDiff{
		TablesToCreate: []diff.TableDiff{landlordsTable()},
	})

	require.NoError(t, g.CreateMigration("create_landlords"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_create_landlords.go"))

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "migration.RegisterMigration")
	assert.Contains(t, string(content), `CREATE TABLE "landlords"`)
	assert.Contains(t, string(content), `DROP TABLE IF EXISTS "landlords";`)
}

func TestNormalizeIndexName(t *testing.T) {
	assert.Equal(t, "idx_properties_name", normalizeIndexName("idx_idx_properties_name"))
	assert.Equal(t, "idx_properties_name", normalizeIndexName("idx_properties_name"))
}
