package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protokolbase/protokolbase/internal/apperr"
	"github.com/protokolbase/protokolbase/internal/blob"
	"github.com/protokolbase/protokolbase/internal/domain"
	"github.com/protokolbase/protokolbase/internal/storage/in_mem"
)

type fakeFetcher struct {
	sessions map[string]domain.Session
	err      error
}

func (f *fakeFetcher) FetchSession(_ context.Context, sessionID string) (domain.Session, error) {
	if f.err != nil {
		return domain.Session{}, f.err
	}
	return f.sessions[sessionID], nil
}

type fakeTransferrer struct {
	calls    int
	failURLs map[string]bool
}

func (f *fakeTransferrer) Transfer(_ context.Context, sourceURL, pathname string) (blob.Info, error) {
	f.calls++
	if f.failURLs[sourceURL] {
		return blob.Info{}, apperr.NewDownload(sourceURL, 502)
	}
	return blob.Info{
		URL:         "https://storage.example/" + pathname,
		DownloadURL: "https://storage.example/" + pathname + "?signed",
		Pathname:    pathname,
		SizeBytes:   2048,
	}, nil
}

func testSession() domain.Session {
	date := time.Date(2023, time.April, 17, 0, 0, 0, 0, time.UTC)
	return domain.Session{
		ID:    "5342411",
		Title: "Gemeinderatssitzung vom 17. April 2023",
		Date:  &date,
		Documents: []domain.DocumentRef{
			{DocID: "101", Title: "Protokoll der Sitzung", SourceURL: "https://example.ch/_doc/101"},
			{DocID: "102", Title: "Anhang zur Jahresrechnung", SourceURL: "https://example.ch/_doc/102"},
			{DocID: "103", Title: "Quartalsbericht", SourceURL: "https://example.ch/_doc/103"},
		},
	}
}

func newTestPipeline(opts ...PipelineOption) (*Pipeline, *fakeTransferrer, *in_mem.Store) {
	fetcher := &fakeFetcher{sessions: map[string]domain.Session{"5342411": testSession()}}
	transfer := &fakeTransferrer{failURLs: map[string]bool{}}
	store := in_mem.NewStore()
	return NewPipeline(fetcher, transfer, store, opts...), transfer, store
}

func TestPipeline_Run(t *testing.T) {
	p, _, store := newTestPipeline()

	result, err := p.Run(context.Background(), 7, "ingenbohl", []string{"5342411"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sessions)
	assert.Equal(t, 3, result.Documents)
	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 3, store.DocumentCount())

	doc, ok := store.DocumentBySourceURL("https://example.ch/_doc/101")
	require.True(t, ok)
	assert.Equal(t, domain.TypeProtocol, doc.Type)
	assert.Equal(t, 7, doc.MunicipalityID)
	assert.Equal(t, "101.pdf", doc.FileName)
	assert.Equal(t, "Gemeinderatssitzung vom 17. April 2023", doc.SessionTitle)
	require.NotNil(t, doc.BlobPathname)
	assert.Equal(t, "ingenbohl/5342411/101.pdf", *doc.BlobPathname)

	other, ok := store.DocumentBySourceURL("https://example.ch/_doc/103")
	require.True(t, ok)
	assert.Equal(t, domain.TypeOther, other.Type)
}

func TestPipeline_Run_Idempotent(t *testing.T) {
	p, _, store := newTestPipeline()

	_, err := p.Run(context.Background(), 7, "ingenbohl", []string{"5342411"})
	require.NoError(t, err)

	result, err := p.Run(context.Background(), 7, "ingenbohl", []string{"5342411"})
	require.NoError(t, err)

	// Second run re-uploads blobs, so rows get their blob fields
	// refreshed, but no new rows appear.
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 3, result.BlobUpdated)
	assert.Equal(t, 3, store.DocumentCount())
}

func TestPipeline_Run_MetadataOnlyThenFull(t *testing.T) {
	metaPipeline, transfer, store := newTestPipeline(WithMetadataOnly())

	_, err := metaPipeline.Run(context.Background(), 7, "ingenbohl", []string{"5342411"})
	require.NoError(t, err)
	assert.Equal(t, 0, transfer.calls)

	doc, _ := store.DocumentBySourceURL("https://example.ch/_doc/101")
	assert.Nil(t, doc.BlobURL)

	// Re-run with blob transfers against the same store: existing rows
	// must get their blob fields filled, not be skipped silently.
	fullPipeline := NewPipeline(
		&fakeFetcher{sessions: map[string]domain.Session{"5342411": testSession()}},
		&fakeTransferrer{failURLs: map[string]bool{}},
		store,
	)

	result, err := fullPipeline.Run(context.Background(), 7, "ingenbohl", []string{"5342411"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.BlobUpdated)
	doc, _ = store.DocumentBySourceURL("https://example.ch/_doc/101")
	require.NotNil(t, doc.BlobURL)
	assert.Equal(t, "https://storage.example/ingenbohl/5342411/101.pdf", *doc.BlobURL)
}

func TestPipeline_Run_PartialFailureIsolation(t *testing.T) {
	p, transfer, store := newTestPipeline()
	transfer.failURLs["https://example.ch/_doc/102"] = true

	result, err := p.Run(context.Background(), 7, "ingenbohl", []string{"5342411"})
	require.NoError(t, err, "document-level failures must not fail the run")

	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Inserted, "all records written, failed blob included")

	// The failed document's record exists without blob fields.
	doc, ok := store.DocumentBySourceURL("https://example.ch/_doc/102")
	require.True(t, ok)
	assert.Nil(t, doc.BlobURL)
	assert.Nil(t, doc.FileSizeBytes)

	// Neighbours are intact.
	a, _ := store.DocumentBySourceURL("https://example.ch/_doc/101")
	assert.NotNil(t, a.BlobURL)
	c, _ := store.DocumentBySourceURL("https://example.ch/_doc/103")
	assert.NotNil(t, c.BlobURL)
}

func TestPipeline_Run_DryRun(t *testing.T) {
	p, transfer, store := newTestPipeline(WithDryRun())

	result, err := p.Run(context.Background(), 7, "ingenbohl", []string{"5342411"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Documents, "read side still runs")
	assert.Equal(t, 0, transfer.calls, "no blob writes in dry run")
	assert.Equal(t, 0, store.DocumentCount(), "no store writes in dry run")
}

func TestPipeline_Run_SessionFetchFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{err: apperr.NewFetch("https://example.ch/sitzungen/x", 500)}
	p := NewPipeline(fetcher, &fakeTransferrer{}, in_mem.NewStore())

	_, err := p.Run(context.Background(), 7, "ingenbohl", []string{"x"})
	require.Error(t, err)
}
