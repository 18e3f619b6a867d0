package enrich

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protokolbase/protokolbase/internal/domain"
	"github.com/protokolbase/protokolbase/internal/storage/in_mem"
)

// failingStore wraps the in-memory store and fails selected BFS numbers.
type failingStore struct {
	*in_mem.Store
	mu      sync.Mutex
	failBFS map[int]bool
	calls   int
}

func (f *failingStore) ApplyEnrichment(ctx context.Context, e domain.Enrichment) (bool, error) {
	f.mu.Lock()
	f.calls++
	fail := f.failBFS[e.BFSNr]
	f.mu.Unlock()

	if fail {
		return false, fmt.Errorf("connection reset")
	}
	return f.Store.ApplyEnrichment(ctx, e)
}

func seedStore(bfsNrs ...int) *in_mem.Store {
	store := in_mem.NewStore()
	for _, bfs := range bfsNrs {
		store.AddMunicipality(domain.Municipality{
			BFSNr:  bfs,
			Name:   fmt.Sprintf("Gemeinde %d", bfs),
			Canton: "SZ",
			Status: domain.StatusActive,
		})
	}
	return store
}

func enrichment(bfs int, lang domain.Language) domain.Enrichment {
	return domain.Enrichment{BFSNr: bfs, Language: lang}
}

func TestUpdater_Run(t *testing.T) {
	store := seedStore(1, 2, 3, 4, 5)
	u := NewUpdater(store, WithBatchSize(2), WithConcurrency(2))

	enrichments := []domain.Enrichment{
		enrichment(1, domain.LanguageGerman),
		enrichment(2, domain.LanguageGerman),
		enrichment(3, domain.LanguageFrench),
		{BFSNr: 4},                            // no data: skipped
		enrichment(99, domain.LanguageGerman), // unknown row: skipped
	}

	summary, err := u.Run(context.Background(), enrichments)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Updated)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 0, summary.Errors)

	m, err := store.MunicipalityByBFS(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageFrench, m.Language)
}

func TestUpdater_Run_FailureIsolation(t *testing.T) {
	store := &failingStore{
		Store:   seedStore(1, 2, 3),
		failBFS: map[int]bool{2: true},
	}
	u := NewUpdater(store, WithBatchSize(3), WithConcurrency(3))

	enrichments := []domain.Enrichment{
		enrichment(1, domain.LanguageGerman),
		enrichment(2, domain.LanguageGerman),
		enrichment(3, domain.LanguageGerman),
	}

	summary, err := u.Run(context.Background(), enrichments)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 3, store.calls, "every item is attempted despite the failure")

	m, err := store.MunicipalityByBFS(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageGerman, m.Language)
}

func TestUpdater_Run_DryRun(t *testing.T) {
	store := &failingStore{Store: seedStore(1)}
	u := NewUpdater(store, WithUpdaterDryRun())

	summary, err := u.Run(context.Background(), []domain.Enrichment{enrichment(1, domain.LanguageGerman)})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 0, store.calls, "dry run must not touch the store")

	m, err := store.MunicipalityByBFS(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, m.Language)
}

func TestUpdater_Run_MissingFieldCounts(t *testing.T) {
	u := NewUpdater(seedStore(1, 2))

	pop := 5000
	enrichments := []domain.Enrichment{
		{BFSNr: 1, Language: domain.LanguageGerman},
		{BFSNr: 2, Population: &pop, WebsiteURL: "https://www.example.ch"},
	}

	summary, err := u.Run(context.Background(), enrichments)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.MissingLanguage)
	assert.Equal(t, 1, summary.MissingPopulation)
	assert.Equal(t, 1, summary.MissingWebsite)
}
