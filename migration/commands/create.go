package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func CreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create an empty migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			version := time.Now().Format("20060102150405")
			filename := fmt.Sprintf("%s_%s.go", version, name)

			migrationsDir, err := validateMigrationsPath(getMigrationsDir())
			if err != nil {
				return fmt.Errorf("failed to validate migrations directory: %v", err)
			}

			if err := os.MkdirAll(migrationsDir, 0755); err != nil {
				return fmt.Errorf("failed to create migrations directory: %v", err)
			}

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
			return nil
		},
		Down: func(db *gorm.DB) error {
			return nil
		},
	})
}
`, version, name)

			filePath := filepath.Join(migrationsDir, filename)
			if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to create migration file: %v", err)
			}

			fmt.Printf("Created migration: %s\n", filePath)
			return nil
		},
	}
}
