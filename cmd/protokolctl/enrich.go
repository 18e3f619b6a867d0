package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/protokolbase/protokolbase/internal/enrich"
	"github.com/protokolbase/protokolbase/internal/storage/pg"
)

var enrichDryRun bool

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich municipalities with Wikidata population, website and language data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEnrich(cmd.Context())
	},
}

func init() {
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "log intended updates without writing")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		return err
	}
	defer pool.Close()

	slog.Info("Fetching municipality data from Wikidata...")
	client := enrich.NewWikidataClient()
	bindings, err := client.Fetch(ctx)
	if err != nil {
		return err
	}
	slog.Info("Received rows from Wikidata", "rows", len(bindings))

	enrichments := enrich.MergeBindings(bindings)
	slog.Info("Parsed unique municipalities", "count", len(enrichments))

	var opts []enrich.UpdaterOption
	if enrichDryRun {
		opts = append(opts, enrich.WithUpdaterDryRun())
	}
	updater := enrich.NewUpdater(pg.NewMunicipalityStore(pool), opts...)

	_, err = updater.Run(ctx, enrichments)
	return err
}
