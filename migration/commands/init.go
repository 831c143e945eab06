package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khayaprop/khaya/migration"
)

func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Bootstrap the tracking table and migrations directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB()
			if err != nil {
				return err
			}

			// getMigrationsDir creates the directory as a side effect.
			dir := getMigrationsDir()

			if err := migration.NewMigrator(db).Init(); err != nil {
				return fmt.Errorf("failed to create tracking table: %v", err)
			}

			fmt.Printf("Migrations tracked in migration_records; files live in %s\n", dir)
			return nil
		},
	}
}
