package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Parse every migration file and report what it registers",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := getMigrationLoader()
			if err != nil {
				return fmt.Errorf("failed to create migration loader: %v", err)
			}

			migrations, err := loader.LoadMigrations()
			if err != nil {
				return fmt.Errorf("validation failed: %v", err)
			}

			for _, m := range migrations {
				fmt.Printf("  %s  %s\n", m.Version, m.Name)
			}
			fmt.Printf("%d migration(s) parsed successfully\n", len(migrations))
			return nil
		},
	}
}
