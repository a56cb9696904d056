package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/app"
	"github.com/heartmarshall/orbis-catalog/internal/app/seeder"
	"github.com/heartmarshall/orbis-catalog/internal/config"
)

// errSeedFailed is returned when any phase recorded errors.
var errSeedFailed = errors.New("seeding finished with errors")

// seedTargets opens the pool and builds the catalog services; it is replaced
// in tests.
var seedTargets = func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (seeder.Targets, func(), error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return seeder.Targets{}, nil, fmt.Errorf("connect to database: %w", err)
	}
	cat := app.NewCatalog(pool, cfg, logger)
	return seeder.Targets{
		Parameters:   cat.Parameters,
		Steps:        cat.Steps,
		Routes:       cat.Routes,
		Operations:   cat.Operations,
		Coefficients: cat.Coefficients,
		Rules:        cat.Rules,
		Projects:     cat.Projects,
	}, pool.Close, nil
}

func newSeedCmd() *cobra.Command {
	var (
		configPath string
		dataset    string
		phases     []string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample catalog",
		Long: "Create the sample catalog records through the catalog services. " +
			"Records whose natural key already exists are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seedCfg, err := seeder.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dataset") {
				seedCfg.DatasetPath = dataset
			}
			if cmd.Flags().Changed("dry-run") {
				seedCfg.DryRun = dryRun
			}

			data, err := seeder.LoadDataset(seedCfg.DatasetPath)
			if err != nil {
				return err
			}

			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			targets, closeFn, err := seedTargets(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			p := seeder.NewPipeline(logger, targets, data, *seedCfg)
			if err := p.Run(cmd.Context(), phases); err != nil {
				return err
			}

			printResults(cmd, p.Results())
			if p.HasErrors() {
				return errSeedFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "seeder YAML config (default: environment)")
	cmd.Flags().StringVar(&dataset, "dataset", "", "YAML catalog to load instead of the built-in sample")
	cmd.Flags().StringSliceVar(&phases, "phase", nil, "phases to run (default: all)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate records without writing")
	return cmd
}

func printResults(cmd *cobra.Command, results map[string]seeder.PhaseResult) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PHASE\tINSERTED\tSKIPPED\tERRORS\tDURATION")
	for _, phase := range seeder.Phases {
		r, ok := results[phase]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", phase, r.Inserted, r.Skipped, r.Errors, r.Duration.Round(time.Millisecond))
	}
	tw.Flush()
}
