package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func RegisterCmd() *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Regenerate the model registry file",
		Long:  "Scans the model package for structs embedding gorm.Model and rewrites models_registry.go. Run this after adding or removing a model.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := validateModelPath(modelPath)
			if err != nil {
				return fmt.Errorf("invalid model path: %w", err)
			}

			registryFile, err := createModelRegisterFile(dir)
			if err != nil {
				return fmt.Errorf("failed to write model registry: %w", err)
			}

			fmt.Printf("Wrote %s; rebuild the migrate binary to pick it up\n", registryFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "path", "", "model package directory (default internal/models)")

	return cmd
}
