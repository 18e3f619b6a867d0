package enrich

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/protokolbase/protokolbase/internal/domain"
	"github.com/protokolbase/protokolbase/internal/storage"
)

const (
	defaultBatchSize   = 50
	defaultConcurrency = 8
)

// Summary aggregates per-item outcomes of an enrichment run.
type Summary struct {
	Updated           int
	Skipped           int
	Errors            int
	MissingLanguage   int
	MissingPopulation int
	MissingWebsite    int
}

// Updater applies enrichments in fixed-size batches with bounded
// concurrency inside each batch. One failed item never aborts the batch;
// outcomes are collected per item and aggregated afterward.
type Updater struct {
	store       storage.MunicipalityStore
	batchSize   int
	concurrency int
	dryRun      bool
}

type UpdaterOption func(*Updater)

func WithBatchSize(size int) UpdaterOption {
	return func(u *Updater) {
		u.batchSize = size
	}
}

func WithConcurrency(n int) UpdaterOption {
	return func(u *Updater) {
		u.concurrency = n
	}
}

func WithUpdaterDryRun() UpdaterOption {
	return func(u *Updater) {
		u.dryRun = true
	}
}

func NewUpdater(store storage.MunicipalityStore, opts ...UpdaterOption) *Updater {
	u := &Updater{
		store:       store,
		batchSize:   defaultBatchSize,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type itemOutcome int

const (
	outcomeUpdated itemOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// Run applies all enrichments and returns the aggregated summary. The
// returned error is non-nil only when the context is cancelled.
func (u *Updater) Run(ctx context.Context, enrichments []domain.Enrichment) (Summary, error) {
	start := time.Now()
	var summary Summary

	for _, e := range enrichments {
		if e.Language == "" {
			summary.MissingLanguage++
		}
		if e.Population == nil {
			summary.MissingPopulation++
		}
		if e.WebsiteURL == "" {
			summary.MissingWebsite++
		}
	}

	for offset := 0; offset < len(enrichments); offset += u.batchSize {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		end := offset + u.batchSize
		if end > len(enrichments) {
			end = len(enrichments)
		}
		batch := enrichments[offset:end]

		outcomes := make([]itemOutcome, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(u.concurrency)
		for i, e := range batch {
			i, e := i, e
			g.Go(func() error {
				outcomes[i] = u.applyOne(gctx, e)
				// Failures are recorded per item, never propagated: a
				// single bad row must not cancel the batch.
				return nil
			})
		}
		// Synchronous barrier before the next batch.
		g.Wait()

		for _, o := range outcomes {
			switch o {
			case outcomeUpdated:
				summary.Updated++
			case outcomeSkipped:
				summary.Skipped++
			case outcomeFailed:
				summary.Errors++
			}
		}

		slog.Info("Enrichment progress",
			"processed", end,
			"total", len(enrichments),
		)
	}

	slog.Info("Enrichment completed",
		"duration", time.Since(start),
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
		"missing_language", summary.MissingLanguage,
		"missing_population", summary.MissingPopulation,
		"missing_website", summary.MissingWebsite,
	)

	return summary, nil
}

func (u *Updater) applyOne(ctx context.Context, e domain.Enrichment) itemOutcome {
	if e.IsEmpty() {
		return outcomeSkipped
	}

	if u.dryRun {
		slog.Info("Would enrich", "bfs_nr", e.BFSNr)
		return outcomeUpdated
	}

	updated, err := u.store.ApplyEnrichment(ctx, e)
	if err != nil {
		slog.Error("Update failed", "bfs_nr", e.BFSNr, "error", err)
		return outcomeFailed
	}
	if !updated {
		return outcomeSkipped
	}
	return outcomeUpdated
}
