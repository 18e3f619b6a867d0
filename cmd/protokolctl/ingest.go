package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/protokolbase/protokolbase/internal/blob"
	"github.com/protokolbase/protokolbase/internal/ingest"
	"github.com/protokolbase/protokolbase/internal/scrape"
	"github.com/protokolbase/protokolbase/internal/sources"
	"github.com/protokolbase/protokolbase/internal/storage/pg"
)

var (
	ingestSourcesPath  string
	ingestDryRun       bool
	ingestMetadataOnly bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest session documents from the configured source catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIngest(cmd.Context())
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestSourcesPath, "sources", "sources.yaml", "path to the source catalog")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "no uploads or DB writes, log intended actions")
	ingestCmd.Flags().BoolVar(&ingestMetadataOnly, "metadata-only", false, "write records without blob upload")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	catalog, err := sources.LoadFile(ingestSourcesPath)
	if err != nil {
		return err
	}

	if ingestDryRun {
		slog.Info("=== DRY RUN — no uploads or DB writes ===")
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		return err
	}
	defer pool.Close()

	municipalityStore := pg.NewMunicipalityStore(pool)
	documentStore := pg.NewDocumentStore(pool)

	var opts []ingest.PipelineOption
	var transferrer ingest.Transferrer
	switch {
	case ingestDryRun:
		opts = append(opts, ingest.WithDryRun())
	case ingestMetadataOnly:
		opts = append(opts, ingest.WithMetadataOnly())
	default:
		if err := cfg.ValidateBlob(); err != nil {
			return err
		}
		transferrer = blob.NewTransferrer(blob.NewS3Store(cfg.Blob))
	}

	totalInserted := 0

	for _, site := range catalog.Sites {
		muni, err := municipalityStore.MunicipalityByBFS(ctx, site.BFSNr)
		if err != nil {
			// Missing municipality means the store is not seeded for this
			// site; per-site work cannot proceed.
			return err
		}
		slog.Info("Resolved municipality", "site", site.Name, "bfs_nr", site.BFSNr, "id", muni.ID)

		var fetcherOpts []scrape.FetcherOption
		if site.SessionPath != "" {
			fetcherOpts = append(fetcherOpts, scrape.WithSessionPath(site.SessionPath))
		}
		fetcher := scrape.NewSessionFetcher(site.BaseURL, fetcherOpts...)

		pipeline := ingest.NewPipeline(
			fetcher,
			transferrer,
			documentStore,
			append(opts, ingest.WithName(site.Name))...,
		)

		result, err := pipeline.Run(ctx, muni.ID, site.Prefix(), site.SessionIDs)
		if err != nil {
			return err
		}
		totalInserted += result.Inserted
	}

	if ingestDryRun {
		slog.Info("Dry run complete")
	} else {
		slog.Info("Ingestion complete", "documents_inserted", totalInserted)
	}

	return nil
}
