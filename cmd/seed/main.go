package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khayaprop/khaya/internal/config"
	"github.com/khayaprop/khaya/internal/seed"
	"github.com/khayaprop/khaya/internal/store"
)

func main() {
	_ = godotenv.Load()

	var (
		preset  string
		rngSeed int64
		dsn     string
	)

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dsn != "" {
				cfg.DatabaseURL = dsn
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			scale, err := seed.ParsePreset(preset)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			if err := st.AutoMigrate(); err != nil {
				return fmt.Errorf("auto-migrate: %w", err)
			}

			gen := seed.New(st, seed.Config{Scale: scale, Seed: rngSeed}, logger)
			return gen.Run(cmd.Context())
		},
	}

	rootCmd.Flags().StringVar(&preset, "preset", "demo", "dataset size: minimal, demo or load")
	rootCmd.Flags().Int64Var(&rngSeed, "seed", 0, "rng seed (0 = time-based)")
	rootCmd.Flags().StringVar(&dsn, "dsn", "", "database URL override")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
