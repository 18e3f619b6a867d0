// Package openplz reads Swiss commune data from the OpenPLZ API, used to
// seed the municipality table.
package openplz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/protokolbase/protokolbase/internal/domain"
)

const (
	DefaultBaseURL  = "https://openplzapi.org"
	defaultPageSize = 50
	clientTimeout   = 30 * time.Second
)

// Commune mirrors one OpenPLZ commune payload.
type Commune struct {
	Key       string `json:"key"` // BFS number as string
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	District  struct {
		Key       string `json:"key"`
		Name      string `json:"name"`
		ShortName string `json:"shortName"`
	} `json:"district"`
	Canton struct {
		Key       string `json:"key"`
		Name      string `json:"name"`
		ShortName string `json:"shortName"`
	} `json:"canton"`
}

type Client struct {
	client   *http.Client
	baseURL  string
	pageSize int
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithPageSize(size int) ClientOption {
	return func(c *Client) {
		c.pageSize = size
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		client:   &http.Client{Timeout: clientTimeout},
		baseURL:  DefaultBaseURL,
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CommunesByCanton pages through all communes of one canton.
// Canton keys run 1 through 26.
func (c *Client) CommunesByCanton(ctx context.Context, cantonKey int) ([]Commune, error) {
	var all []Commune

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/ch/Cantons/%d/Communes?page=%d&pageSize=%d",
			c.baseURL, cantonKey, page, c.pageSize)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request for %s: %w", url, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", url, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("openplz canton %d page %d: status %d", cantonKey, page, resp.StatusCode)
		}

		var communes []Commune
		err = json.NewDecoder(resp.Body).Decode(&communes)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding openplz canton %d page %d: %w", cantonKey, page, err)
		}

		if len(communes) == 0 {
			break
		}
		all = append(all, communes...)
		if len(communes) < c.pageSize {
			break
		}
	}

	return all, nil
}

// ToMunicipality maps one commune to a municipality row. Fails on an
// unknown canton abbreviation or a non-numeric BFS key.
func ToMunicipality(c Commune) (domain.Municipality, error) {
	bfsNr, err := strconv.Atoi(c.Key)
	if err != nil {
		return domain.Municipality{}, fmt.Errorf("commune %q: non-numeric BFS key %q", c.Name, c.Key)
	}

	canton, err := domain.ParseCanton(c.Canton.ShortName)
	if err != nil {
		return domain.Municipality{}, fmt.Errorf("commune %q: %w", c.Name, err)
	}

	m := domain.Municipality{
		BFSNr:        bfsNr,
		Name:         c.Name,
		Canton:       canton,
		DistrictName: c.District.ShortName,
		Status:       domain.StatusActive,
	}

	if districtNr, err := strconv.Atoi(c.District.Key); err == nil {
		m.DistrictNr = &districtNr
	}

	return m, nil
}
