// Package in_mem implements the storage contracts on process-local maps.
// It backs tests and dry tooling; semantics mirror the PostgreSQL
// implementation, including insert-or-ignore and the conditional blob
// field update.
package in_mem

import (
	"context"
	"strconv"
	"sync"

	"github.com/protokolbase/protokolbase/internal/apperr"
	"github.com/protokolbase/protokolbase/internal/domain"
	"github.com/protokolbase/protokolbase/internal/storage"
)

type Store struct {
	mu             sync.RWMutex
	nextID         int
	documents      map[string]domain.Document  // keyed by source URL
	municipalities map[int]domain.Municipality // keyed by BFS number
}

func NewStore() *Store {
	return &Store{
		nextID:         1,
		documents:      make(map[string]domain.Document),
		municipalities: make(map[int]domain.Municipality),
	}
}

func (s *Store) UpsertDocument(_ context.Context, doc domain.Document) (storage.UpsertOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.documents[doc.SourceURL]
	if !ok {
		doc.ID = s.nextID
		s.nextID++
		if doc.MimeType == "" {
			doc.MimeType = domain.DefaultMimeType
		}
		s.documents[doc.SourceURL] = doc
		return storage.OutcomeInserted, nil
	}

	if !doc.HasBlob() {
		return storage.OutcomeSkipped, nil
	}

	existing.BlobURL = doc.BlobURL
	existing.BlobDownloadURL = doc.BlobDownloadURL
	existing.BlobPathname = doc.BlobPathname
	existing.FileSizeBytes = doc.FileSizeBytes
	s.documents[doc.SourceURL] = existing
	return storage.OutcomeBlobUpdated, nil
}

// DocumentBySourceURL returns the stored document, for test assertions.
func (s *Store) DocumentBySourceURL(sourceURL string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[sourceURL]
	return doc, ok
}

// DocumentCount returns the number of stored documents.
func (s *Store) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// AddMunicipality seeds one municipality row directly.
func (s *Store) AddMunicipality(m domain.Municipality) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		m.ID = s.nextID
		s.nextID++
	}
	s.municipalities[m.BFSNr] = m
}

func (s *Store) MunicipalityByBFS(_ context.Context, bfsNr int) (*domain.Municipality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.municipalities[bfsNr]
	if !ok {
		return nil, apperr.NewNotFound("municipality", "bfs "+strconv.Itoa(bfsNr))
	}
	return &m, nil
}

func (s *Store) InsertMunicipalities(_ context.Context, ms []domain.Municipality) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var inserted int64
	for _, m := range ms {
		if _, ok := s.municipalities[m.BFSNr]; ok {
			continue
		}
		m.ID = s.nextID
		s.nextID++
		if m.Status == "" {
			m.Status = domain.StatusActive
		}
		s.municipalities[m.BFSNr] = m
		inserted++
	}
	return inserted, nil
}

func (s *Store) ApplyEnrichment(_ context.Context, e domain.Enrichment) (bool, error) {
	if e.IsEmpty() {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.municipalities[e.BFSNr]
	if !ok {
		return false, nil
	}

	if e.Language != "" {
		m.Language = e.Language
	}
	if e.Population != nil {
		m.Population = e.Population
	}
	if e.WebsiteURL != "" {
		m.WebsiteURL = e.WebsiteURL
	}
	s.municipalities[e.BFSNr] = m
	return true, nil
}

func (s *Store) FillCantonLanguage(_ context.Context, canton domain.Canton, lang domain.Language) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filled int64
	for bfs, m := range s.municipalities {
		if m.Canton == canton && m.Language == "" {
			m.Language = lang
			s.municipalities[bfs] = m
			filled++
		}
	}
	return filled, nil
}

func (s *Store) MunicipalityGaps(_ context.Context) ([]domain.MunicipalityGap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var gaps []domain.MunicipalityGap
	for _, m := range s.municipalities {
		g := domain.MunicipalityGap{
			BFSNr:             m.BFSNr,
			Name:              m.Name,
			Canton:            m.Canton,
			MissingLanguage:   m.Language == "",
			MissingPopulation: m.Population == nil,
			MissingWebsite:    m.WebsiteURL == "",
		}
		if g.MissingLanguage || g.MissingPopulation || g.MissingWebsite {
			gaps = append(gaps, g)
		}
	}
	return gaps, nil
}
