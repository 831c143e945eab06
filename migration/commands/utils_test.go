package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelSource = `package models

import "gorm.io/gorm"

type Landlord struct {
	gorm.Model
	FullName string
	Email    string
}

type Property struct {
	gorm.Model
	Name       string
	LandlordID uint
}

type pageOpts struct {
	Page int
	Size int
}
`

func TestParseModelNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.go")
	require.NoError(t, os.WriteFile(path, []byte(modelSource), 0644))

	names, err := parseModelNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Landlord", "Property"}, names)
}

func TestParseModelNamesInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.go")
	require.NoError(t, os.WriteFile(path, []byte("not go source"), 0644))

	_, err := parseModelNames(path)
	require.Error(t, err)
}

func TestCreateModelRegisterFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models.go"), []byte(modelSource), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models_test.go"), []byte(modelSource), 0644))

	path, err := createModelRegisterFile(dir)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "ModelTypeRegistry")
	assert.Contains(t, string(content), `"Landlord": Landlord{},`)
	assert.Contains(t, string(content), `"Property": Property{},`)

	// Regenerating must not pick up the registry file itself.
	_, err = createModelRegisterFile(dir)
	require.NoError(t, err)
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, countOccurrences(string(content), `"Landlord": Landlord{},`))
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}

func TestValidateMigrationsPath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	path, err := validateMigrationsPath("migrations")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "migrations"), path)
	assert.DirExists(t, path)
	defer os.RemoveAll(path)

	_, err = validateMigrationsPath("../outside")
	require.Error(t, err)
}
