package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khayaprop/khaya/migration"
)

func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status of all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB()
			if err != nil {
				return err
			}

			if err := migration.NewMigrator(db).Init(); err != nil {
				return fmt.Errorf("failed to ensure migration_records table: %v", err)
			}

			loader, err := getMigrationLoader()
			if err != nil {
				return fmt.Errorf("failed to create migration loader: %v", err)
			}

			migrations, err := loader.LoadMigrations()
			if err != nil {
				return fmt.Errorf("failed to load migrations: %v", err)
			}

			var records []migration.MigrationRecord
			if err := db.Find(&records).Error; err != nil {
				return fmt.Errorf("failed to get applied migrations: %v", err)
			}

			appliedMap := make(map[string]bool)
			for _, record := range records {
				appliedMap[record.Version] = true
			}

			fmt.Printf("%-16s  %-30s  %-8s\n", "Version", "Name", "Status")
			for _, m := range migrations {
				status := "Pending"
				if appliedMap[m.Version] {
					status = "Applied"
				}
				fmt.Printf("%-16s  %-30s  %-8s\n", m.Version, m.Name, status)
			}

			return nil
		},
	}
}
