// Package enrich fills municipality rows with population, website and
// language data researched from Wikidata.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/protokolbase/protokolbase/internal/domain"
)

const (
	DefaultSPARQLEndpoint = "https://query.wikidata.org/sparql"
	wikidataUserAgent     = "protokolbase/1.0 (municipality-enrichment)"
	wikidataTimeout       = 120 * time.Second
)

// sparqlQuery selects every Swiss municipality (Q70208) with its BFS
// number (P771) and optional population (P1082), website (P856) and
// official language (P37).
const sparqlQuery = `
SELECT ?bfsNr ?population ?website ?language WHERE {
  ?municipality wdt:P31 wd:Q70208 .
  ?municipality wdt:P771 ?bfsNr .
  OPTIONAL { ?municipality wdt:P1082 ?population . }
  OPTIONAL { ?municipality wdt:P856 ?website . }
  OPTIONAL { ?municipality wdt:P37 ?language . }
}
`

// languageByEntity maps Wikidata language entities to language codes.
var languageByEntity = map[string]domain.Language{
	"http://www.wikidata.org/entity/Q188":   domain.LanguageGerman,
	"http://www.wikidata.org/entity/Q150":   domain.LanguageFrench,
	"http://www.wikidata.org/entity/Q652":   domain.LanguageItalian,
	"http://www.wikidata.org/entity/Q13199": domain.LanguageRomansh,
}

type sparqlValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Binding is one SPARQL result row.
type Binding struct {
	BFSNr      sparqlValue  `json:"bfsNr"`
	Population *sparqlValue `json:"population"`
	Website    *sparqlValue `json:"website"`
	Language   *sparqlValue `json:"language"`
}

type sparqlResponse struct {
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// WikidataClient issues the municipality SPARQL query.
type WikidataClient struct {
	client   *http.Client
	endpoint string
}

type WikidataOption func(*WikidataClient)

func WithEndpoint(endpoint string) WikidataOption {
	return func(c *WikidataClient) {
		c.endpoint = endpoint
	}
}

func NewWikidataClient(opts ...WikidataOption) *WikidataClient {
	c := &WikidataClient{
		client:   &http.Client{Timeout: wikidataTimeout},
		endpoint: DefaultSPARQLEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch runs the SPARQL query and returns the raw bindings.
func (c *WikidataClient) Fetch(ctx context.Context) ([]Binding, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing SPARQL endpoint: %w", err)
	}
	q := u.Query()
	q.Set("query", sparqlQuery)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating SPARQL request: %w", err)
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("User-Agent", wikidataUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying wikidata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wikidata SPARQL error: status %d", resp.StatusCode)
	}

	var payload sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding SPARQL response: %w", err)
	}

	return payload.Results.Bindings, nil
}
