// Package ingest orchestrates one ingestion run: fetch each session
// page, classify the linked documents, move their PDFs into blob
// storage and upsert the records.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/protokolbase/protokolbase/internal/blob"
	"github.com/protokolbase/protokolbase/internal/classify"
	"github.com/protokolbase/protokolbase/internal/domain"
	"github.com/protokolbase/protokolbase/internal/storage"
)

// SessionFetcher retrieves and parses one session page.
type SessionFetcher interface {
	FetchSession(ctx context.Context, sessionID string) (domain.Session, error)
}

// Transferrer downloads a source PDF and uploads it to blob storage.
type Transferrer interface {
	Transfer(ctx context.Context, sourceURL, pathname string) (blob.Info, error)
}

// PipelineConfig defines configuration for ingestion pipelines.
type PipelineConfig struct {
	Name string
	// DryRun disables every write: no blob uploads, no store writes.
	DryRun bool
	// MetadataOnly writes records but skips the blob transfer step.
	MetadataOnly bool
}

// Pipeline runs sessions through fetch → classify → blob → upsert,
// strictly sequentially. A session fetch failure aborts the run; every
// per-document failure is logged, counted and survived.
type Pipeline struct {
	fetcher  SessionFetcher
	transfer Transferrer
	store    storage.DocumentStore
	config   *PipelineConfig
}

type PipelineOption func(*Pipeline)

// WithDryRun disables all writes while keeping the read side intact.
func WithDryRun() PipelineOption {
	return func(p *Pipeline) {
		p.config.DryRun = true
	}
}

// WithMetadataOnly skips blob transfers but still writes records.
func WithMetadataOnly() PipelineOption {
	return func(p *Pipeline) {
		p.config.MetadataOnly = true
	}
}

// WithName sets the pipeline name used in logs.
func WithName(name string) PipelineOption {
	return func(p *Pipeline) {
		p.config.Name = name
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(f SessionFetcher, t Transferrer, store storage.DocumentStore, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		fetcher:  f,
		transfer: t,
		store:    store,
		config: &PipelineConfig{
			Name: "ingest-pipeline",
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Result aggregates the outcome of one run.
type Result struct {
	RunID       uuid.UUID
	Sessions    int
	Documents   int
	Inserted    int
	BlobUpdated int
	Skipped     int
	Failed      int
}

// Run processes every session of one municipality. The returned error is
// non-nil only for fatal conditions (session fetch failure, cancelled
// context); document-level failures are reflected in Result.Failed.
func (p *Pipeline) Run(ctx context.Context, municipalityID int, prefix string, sessionIDs []string) (Result, error) {
	start := time.Now()
	result := Result{RunID: uuid.New()}

	slog.Info("🛫 Starting ingestion run",
		"pipeline", p.config.Name,
		"run_id", result.RunID,
		"sessions", len(sessionIDs),
		"dry_run", p.config.DryRun,
		"metadata_only", p.config.MetadataOnly,
	)

	for _, sessionID := range sessionIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		session, err := p.fetcher.FetchSession(ctx, sessionID)
		if err != nil {
			// A broken session page means broken input, not a broken
			// document: abort the whole run.
			return result, fmt.Errorf("session %s: %w", sessionID, err)
		}
		result.Sessions++

		slog.Info("Processing session",
			"pipeline", p.config.Name,
			"session_id", sessionID,
			"title", session.Title,
			"date", formatSessionDate(session.Date),
			"documents", len(session.Documents),
		)

		for _, ref := range session.Documents {
			p.processDocument(ctx, municipalityID, prefix, session, ref, &result)
		}
	}

	slog.Info("Ingestion run completed",
		"pipeline", p.config.Name,
		"run_id", result.RunID,
		"duration", time.Since(start),
		"sessions", result.Sessions,
		"documents", result.Documents,
		"inserted", result.Inserted,
		"blob_updated", result.BlobUpdated,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	return result, nil
}

func (p *Pipeline) processDocument(
	ctx context.Context,
	municipalityID int,
	prefix string,
	session domain.Session,
	ref domain.DocumentRef,
	result *Result,
) {
	result.Documents++

	docType := classify.Title(ref.Title)
	pathname := fmt.Sprintf("%s/%s/%s.pdf", prefix, session.ID, ref.DocID)

	slog.Info("Document",
		"pipeline", p.config.Name,
		"type", docType,
		"title", ref.Title,
		"doc_id", ref.DocID,
	)

	var blobInfo *blob.Info
	switch {
	case p.config.DryRun:
		slog.Info("Would upload", "pathname", pathname)
	case p.config.MetadataOnly:
		slog.Info("Skipping blob transfer (metadata only)", "pathname", pathname)
	default:
		info, err := p.transfer.Transfer(ctx, ref.SourceURL, pathname)
		if err != nil {
			// Blob failure is isolated: the record is still written
			// below, without blob fields.
			slog.Error("Blob step failed",
				"pipeline", p.config.Name,
				"doc_id", ref.DocID,
				"source_url", ref.SourceURL,
				"error", err,
			)
			result.Failed++
		} else {
			blobInfo = &info
			slog.Info("Uploaded",
				"pathname", info.Pathname,
				"size_kb", info.SizeBytes/1024,
			)
		}
	}

	record := assembleRecord(municipalityID, session, ref, docType, blobInfo)

	if p.config.DryRun {
		slog.Info("Would upsert", "source_url", record.SourceURL, "type", record.Type)
		return
	}

	outcome, err := p.store.UpsertDocument(ctx, record)
	if err != nil {
		slog.Error("Store step failed",
			"pipeline", p.config.Name,
			"doc_id", ref.DocID,
			"source_url", ref.SourceURL,
			"error", err,
		)
		result.Failed++
		return
	}

	switch outcome {
	case storage.OutcomeInserted:
		result.Inserted++
	case storage.OutcomeBlobUpdated:
		result.BlobUpdated++
		slog.Info("Updated existing record with blob data", "source_url", record.SourceURL)
	case storage.OutcomeSkipped:
		result.Skipped++
		slog.Info("Already exists, skipped", "source_url", record.SourceURL)
	}
}

func assembleRecord(
	municipalityID int,
	session domain.Session,
	ref domain.DocumentRef,
	docType domain.DocumentType,
	blobInfo *blob.Info,
) domain.Document {
	doc := domain.Document{
		MunicipalityID: municipalityID,
		SourceURL:      ref.SourceURL,
		SourceDocID:    ref.DocID,
		SessionID:      session.ID,
		Title:          ref.Title,
		Type:           docType,
		SessionDate:    session.Date,
		SessionTitle:   session.Title,
		FileName:       ref.DocID + ".pdf",
		MimeType:       domain.DefaultMimeType,
	}

	if blobInfo != nil {
		doc.BlobURL = &blobInfo.URL
		doc.BlobDownloadURL = &blobInfo.DownloadURL
		doc.BlobPathname = &blobInfo.Pathname
		doc.FileSizeBytes = &blobInfo.SizeBytes
	}

	return doc
}

func formatSessionDate(d *time.Time) string {
	if d == nil {
		return "unknown"
	}
	return d.Format("2006-01-02")
}
