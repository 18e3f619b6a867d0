// Package storage defines the typed read/write contract against the
// shared relational store. The schema itself is owned by the web
// application; this toolkit only looks up municipalities and writes
// document and enrichment rows through these interfaces.
package storage

import (
	"context"

	"github.com/protokolbase/protokolbase/internal/domain"
)

// UpsertOutcome tells the caller what the document upsert actually did.
type UpsertOutcome string

const (
	// OutcomeInserted: a new row was created.
	OutcomeInserted UpsertOutcome = "inserted"
	// OutcomeBlobUpdated: the row pre-existed and fresh blob data was
	// written into its blob fields.
	OutcomeBlobUpdated UpsertOutcome = "blob_updated"
	// OutcomeSkipped: the row pre-existed and no blob data was available,
	// so it was left untouched.
	OutcomeSkipped UpsertOutcome = "skipped"
)

// DocumentStore persists ingested documents keyed by their source URL.
type DocumentStore interface {
	// UpsertDocument inserts the document unless a row with the same
	// source URL exists. For a pre-existing row it updates the blob
	// fields when the candidate carries blob data, and otherwise leaves
	// the row unchanged.
	UpsertDocument(ctx context.Context, doc domain.Document) (UpsertOutcome, error)
}

// MunicipalityStore reads and maintains municipality rows.
type MunicipalityStore interface {
	// MunicipalityByBFS resolves a municipality by its BFS number.
	// A missing row yields an apperr.NotFoundError.
	MunicipalityByBFS(ctx context.Context, bfsNr int) (*domain.Municipality, error)

	// InsertMunicipalities inserts rows, ignoring BFS numbers that
	// already exist. Returns the number of rows actually inserted.
	InsertMunicipalities(ctx context.Context, ms []domain.Municipality) (int64, error)

	// ApplyEnrichment sets the non-empty enrichment fields on the row
	// with the matching BFS number. Returns false when the enrichment
	// carries no data or matches no row.
	ApplyEnrichment(ctx context.Context, e domain.Enrichment) (bool, error)

	// FillCantonLanguage sets the language on every municipality of the
	// canton whose language is still NULL. Returns the row count.
	FillCantonLanguage(ctx context.Context, canton domain.Canton, lang domain.Language) (int64, error)

	// MunicipalityGaps lists municipalities missing language, population
	// or website data.
	MunicipalityGaps(ctx context.Context) ([]domain.MunicipalityGap, error)
}
