package enrich

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/protokolbase/protokolbase/internal/domain"
)

// MergeBindings collapses SPARQL rows into one enrichment per BFS number.
// Wikidata returns one row per language for bilingual municipalities; the
// first language seen wins and the conflict is logged once.
func MergeBindings(bindings []Binding) []domain.Enrichment {
	merged := make(map[int]*domain.Enrichment)
	bilingual := make(map[int]bool)
	var order []int

	for _, row := range bindings {
		bfsNr, err := strconv.Atoi(row.BFSNr.Value)
		if err != nil {
			continue
		}

		var lang domain.Language
		if row.Language != nil {
			lang = languageByEntity[row.Language.Value]
		}

		var pop *int
		if row.Population != nil {
			if n, err := strconv.Atoi(row.Population.Value); err == nil {
				pop = &n
			}
		}

		var website string
		if row.Website != nil {
			website = row.Website.Value
		}

		e, ok := merged[bfsNr]
		if !ok {
			merged[bfsNr] = &domain.Enrichment{
				BFSNr:      bfsNr,
				Language:   lang,
				Population: pop,
				WebsiteURL: website,
			}
			order = append(order, bfsNr)
			continue
		}

		if e.Language != "" && lang != "" && e.Language != lang {
			bilingual[bfsNr] = true
		}
		if e.Language == "" {
			e.Language = lang
		}
		if e.Population == nil {
			e.Population = pop
		}
		if e.WebsiteURL == "" {
			e.WebsiteURL = website
		}
	}

	if len(bilingual) > 0 {
		var nrs []int
		for bfs := range bilingual {
			nrs = append(nrs, bfs)
		}
		sort.Ints(nrs)
		slog.Info("Bilingual municipalities, first language kept", "bfs_nrs", nrs)
	}

	result := make([]domain.Enrichment, 0, len(order))
	for _, bfs := range order {
		result = append(result, *merged[bfs])
	}
	return result
}
