package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/orbis-catalog/internal/app"
	"github.com/heartmarshall/orbis-catalog/internal/config"
)

// loadConfig is replaced in tests.
var loadConfig = config.Load

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "orbisctl",
		Short:         "ORBIS catalog maintenance",
		Long:          "Apply database migrations and seed the ORBIS process catalog with sample data.",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd())
	return root
}

// setup loads configuration and builds the process logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}
