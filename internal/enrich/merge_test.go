package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protokolbase/protokolbase/internal/domain"
)

func binding(bfs, lang, pop, website string) Binding {
	b := Binding{BFSNr: sparqlValue{Type: "literal", Value: bfs}}
	if lang != "" {
		b.Language = &sparqlValue{Type: "uri", Value: lang}
	}
	if pop != "" {
		b.Population = &sparqlValue{Type: "literal", Value: pop}
	}
	if website != "" {
		b.Website = &sparqlValue{Type: "uri", Value: website}
	}
	return b
}

const (
	germanEntity = "http://www.wikidata.org/entity/Q188"
	frenchEntity = "http://www.wikidata.org/entity/Q150"
)

func TestMergeBindings(t *testing.T) {
	bindings := []Binding{
		binding("1002", germanEntity, "8800", "https://www.ingenbohl.ch"),
		binding("261", germanEntity, "421878", ""),
	}

	enrichments := MergeBindings(bindings)
	require.Len(t, enrichments, 2)

	e := enrichments[0]
	assert.Equal(t, 1002, e.BFSNr)
	assert.Equal(t, domain.LanguageGerman, e.Language)
	require.NotNil(t, e.Population)
	assert.Equal(t, 8800, *e.Population)
	assert.Equal(t, "https://www.ingenbohl.ch", e.WebsiteURL)
}

func TestMergeBindings_BilingualFirstLanguageWins(t *testing.T) {
	bindings := []Binding{
		binding("2196", germanEntity, "", ""),
		binding("2196", frenchEntity, "38365", "https://www.fribourg.ch"),
	}

	enrichments := MergeBindings(bindings)
	require.Len(t, enrichments, 1)

	e := enrichments[0]
	assert.Equal(t, domain.LanguageGerman, e.Language, "first language seen wins")
	require.NotNil(t, e.Population, "later rows still fill missing fields")
	assert.Equal(t, 38365, *e.Population)
	assert.Equal(t, "https://www.fribourg.ch", e.WebsiteURL)
}

func TestMergeBindings_SkipsBadRows(t *testing.T) {
	bindings := []Binding{
		binding("not-a-number", germanEntity, "", ""),
		binding("1002", "http://www.wikidata.org/entity/Q999999", "x", ""),
	}

	enrichments := MergeBindings(bindings)
	require.Len(t, enrichments, 1)

	e := enrichments[0]
	assert.Equal(t, 1002, e.BFSNr)
	assert.Empty(t, e.Language, "unknown language entity maps to no language")
	assert.Nil(t, e.Population, "non-numeric population is dropped")
}
