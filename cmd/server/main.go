package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/khayaprop/khaya/internal/api"
	"github.com/khayaprop/khaya/internal/config"
	"github.com/khayaprop/khaya/internal/store"
)

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "Khaya property-management API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			// Embedded sqlite runs without the migrate CLI.
			if !cfg.UsesPostgres() {
				if err := st.AutoMigrate(); err != nil {
					return fmt.Errorf("auto-migrate: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(api.Config{
				Addr:            cfg.HTTPAddr,
				ShutdownTimeout: cfg.ShutdownTimeout,
			}, st, logger)
			return srv.Run(ctx)
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
