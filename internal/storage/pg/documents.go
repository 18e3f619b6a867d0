// Package pg implements the storage contracts on PostgreSQL via pgx.
// Table names are schema-qualified: the web application owns the
// "municipalities" schema and its migrations.
package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/protokolbase/protokolbase/internal/domain"
	"github.com/protokolbase/protokolbase/internal/storage"
)

type DocumentStore struct {
	db *pgxpool.Pool
}

func NewDocumentStore(pool *ConnectionPool) *DocumentStore {
	return &DocumentStore{db: pool.conn}
}

// UpsertDocument runs the insert-or-ignore and the conditional blob
// update inside one transaction, so a concurrent run against the same
// source URL cannot interleave between the two statements.
func (s *DocumentStore) UpsertDocument(ctx context.Context, doc domain.Document) (storage.UpsertOutcome, error) {
	if doc.MimeType == "" {
		doc.MimeType = domain.DefaultMimeType
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
        INSERT INTO municipalities.documents
            (municipality_id, source_url, source_doc_id, session_id, title, type,
             session_date, session_title, file_name, file_size_bytes, mime_type,
             blob_url, blob_download_url, blob_pathname)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        ON CONFLICT (source_url) DO NOTHING;
    `
	tag, err := tx.Exec(
		ctx,
		insert,
		doc.MunicipalityID,
		doc.SourceURL,
		doc.SourceDocID,
		doc.SessionID,
		doc.Title,
		doc.Type,
		doc.SessionDate,
		doc.SessionTitle,
		doc.FileName,
		doc.FileSizeBytes,
		doc.MimeType,
		doc.BlobURL,
		doc.BlobDownloadURL,
		doc.BlobPathname,
	)
	if err != nil {
		return "", fmt.Errorf("insert document %q: %w", doc.SourceURL, err)
	}

	outcome := storage.OutcomeSkipped
	if tag.RowsAffected() > 0 {
		outcome = storage.OutcomeInserted
	} else if doc.HasBlob() {
		// Row pre-existed but this run produced fresh blob data, e.g. the
		// first run was metadata-only. Touch only the blob fields.
		update := `
            UPDATE municipalities.documents
            SET blob_url = $1,
                blob_download_url = $2,
                blob_pathname = $3,
                file_size_bytes = $4,
                updated_at = now()
            WHERE source_url = $5;
        `
		if _, err := tx.Exec(
			ctx,
			update,
			doc.BlobURL,
			doc.BlobDownloadURL,
			doc.BlobPathname,
			doc.FileSizeBytes,
			doc.SourceURL,
		); err != nil {
			return "", fmt.Errorf("update blob fields for %q: %w", doc.SourceURL, err)
		}
		outcome = storage.OutcomeBlobUpdated
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit upsert tx: %w", err)
	}

	return outcome, nil
}
