package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/protokolbase/protokolbase/internal/domain"
	"github.com/protokolbase/protokolbase/internal/enrich"
	"github.com/protokolbase/protokolbase/internal/storage/pg"
)

var (
	researchFilePath string
	researchDryRun   bool
)

// researchResult is the manual-research exchange format: nil fields mean
// "no data found", not "clear the value".
type researchResult struct {
	BFSNr      int     `json:"bfsNr"`
	Language   *string `json:"language"`
	Population *int    `json:"population"`
	WebsiteURL *string `json:"websiteUrl"`
}

var applyResearchCmd = &cobra.Command{
	Use:   "apply-research",
	Short: "Apply manually researched municipality data from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApplyResearch(cmd.Context())
	},
}

func init() {
	applyResearchCmd.Flags().StringVar(&researchFilePath, "file", "research-results.json", "path to the research results file")
	applyResearchCmd.Flags().BoolVar(&researchDryRun, "dry-run", false, "log intended updates without writing")
	rootCmd.AddCommand(applyResearchCmd)
}

func runApplyResearch(ctx context.Context) error {
	raw, err := os.ReadFile(researchFilePath)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", researchFilePath, err)
	}

	var results []researchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return fmt.Errorf("parsing %s: %w", researchFilePath, err)
	}
	slog.Info("Loaded research results", "count", len(results), "dry_run", researchDryRun)

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		return err
	}
	defer pool.Close()

	enrichments := make([]domain.Enrichment, 0, len(results))
	for _, r := range results {
		e := domain.Enrichment{BFSNr: r.BFSNr, Population: r.Population}
		if r.Language != nil {
			e.Language = domain.Language(*r.Language)
		}
		if r.WebsiteURL != nil {
			e.WebsiteURL = *r.WebsiteURL
		}
		enrichments = append(enrichments, e)
	}

	var opts []enrich.UpdaterOption
	if researchDryRun {
		opts = append(opts, enrich.WithUpdaterDryRun())
	}
	updater := enrich.NewUpdater(pg.NewMunicipalityStore(pool), opts...)

	_, err = updater.Run(ctx, enrichments)
	return err
}
