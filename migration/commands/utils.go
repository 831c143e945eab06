// Package commands provides the cobra subcommands for the migrate CLI.
package commands

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/khayaprop/khaya/internal/config"
	"github.com/khayaprop/khaya/internal/store"
	"github.com/khayaprop/khaya/migration/file"
)

func getConfig() (config.Config, error) {
	return config.Load()
}

func getDB() (*gorm.DB, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	return st.DB(), nil
}

func validateMigrationsPath(path string) (string, error) {
	cleanPath := filepath.Clean(path)

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", fmt.Errorf("invalid migrations path: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %v", err)
	}

	if !strings.HasPrefix(absPath, wd) {
		return "", fmt.Errorf("migrations path must be within working directory")
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return "", fmt.Errorf("migrations path is not writable: %v", err)
	}

	return absPath, nil
}

func getMigrationsDir() string {
	dir := "migrations"
	if cfg, err := getConfig(); err == nil && cfg.MigrationsPath != "" {
		dir = cfg.MigrationsPath
	}

	cleanDir, err := validateMigrationsPath(dir)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
		fmt.Println("Falling back to default 'migrations' directory")
		cleanDir, _ = validateMigrationsPath("migrations")
	}

	return cleanDir
}

func getMigrationLoader() (*file.MigrationLoader, error) {
	template := &file.MigrationTemplate{
		Version: "20060102150405",
		Name:    "%s",
	}
	return file.NewMigrationLoader(getMigrationsDir(), template), nil
}

func validateModelPath(path string) (string, error) {
	if path == "" {
		path = filepath.Join("internal", "models")
	}

	cleanPath := filepath.Clean(path)

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", fmt.Errorf("invalid model path: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if !strings.HasPrefix(absPath, wd) {
		return "", fmt.Errorf("model path must be within working directory")
	}

	return absPath, nil
}

func createModelRegisterFile(dirPath string) (string, error) {
	filePath := filepath.Join(dirPath, "models_registry.go")

	packageName := filepath.Base(dirPath)
	allModels, err := getModels(dirPath)
	if err != nil {
		return "", err
	}

	content := fmt.Sprintf(`package %s

var ModelTypeRegistry = map[string]interface{}{
%s}
`, packageName, allModels)

	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to create model registry file: %w", err)
	}

	return filePath, nil
}

func getModels(dirPath string) (string, error) {
	var allModels []string

	files, err := os.ReadDir(dirPath)
	if err != nil {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".go") || f.Name() == "models_registry.go" || strings.HasSuffix(f.Name(), "_test.go") {
			continue
		}
		filePath := filepath.Join(dirPath, f.Name())
		modelNames, err := parseModelNames(filePath)
		if err != nil {
			fmt.Printf("Warning: could not parse models from %s: %v\n", f.Name(), err)
			continue
		}
		allModels = append(allModels, modelNames...)
	}

	var contentBuilder strings.Builder
	for _, name := range allModels {
		contentBuilder.WriteString(fmt.Sprintf("\t%q: %s{},\n", name, name))
	}
	return contentBuilder.String(), nil
}

// parseModelNames returns the names of struct types embedding
// gorm.Model in the given file.
func parseModelNames(path string) ([]string, error) {
	var modelNames []string

	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	ast.Inspect(node, func(n ast.Node) bool {
		genDecl, ok := n.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			return true
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}
			for _, field := range structType.Fields.List {
				if len(field.Names) != 0 {
					continue
				}
				if sel, ok := field.Type.(*ast.SelectorExpr); ok {
					if ident, ok := sel.X.(*ast.Ident); ok && ident.Name == "gorm" && sel.Sel.Name == "Model" {
						modelNames = append(modelNames, typeSpec.Name.Name)
						break
					}
				}
			}
		}
		return true
	})
	return modelNames, nil
}
