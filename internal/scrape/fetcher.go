// Package scrape retrieves municipality session pages and parses them
// into session records: title, date and the set of linked documents.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/protokolbase/protokolbase/internal/apperr"
	"github.com/protokolbase/protokolbase/internal/domain"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "protokolbase/1.0 (protocol-ingestion)"
)

// SessionFetcher retrieves session pages from one municipality site.
type SessionFetcher struct {
	client      *http.Client
	baseURL     string
	sessionPath string
}

type FetcherOption func(*SessionFetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *SessionFetcher) {
		f.client = c
	}
}

// WithSessionPath overrides the default "/sitzungen/" page path.
func WithSessionPath(path string) FetcherOption {
	return func(f *SessionFetcher) {
		f.sessionPath = path
	}
}

// NewSessionFetcher creates a fetcher for a municipality site, e.g.
// "https://www.ingenbohl.ch".
func NewSessionFetcher(baseURL string, opts ...FetcherOption) *SessionFetcher {
	f := &SessionFetcher{
		client:      &http.Client{Timeout: defaultTimeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		sessionPath: "/sitzungen/",
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FetchSession retrieves and parses one session page. An HTTP failure
// yields an apperr.FetchError; a page without date or documents is a
// valid session, not an error.
func (f *SessionFetcher) FetchSession(ctx context.Context, sessionID string) (domain.Session, error) {
	url := f.baseURL + f.sessionPath + sessionID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Session{}, fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Session{}, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Session{}, apperr.NewFetch(url, resp.StatusCode)
	}

	return parseSessionPage(sessionID, f.baseURL, resp.Body)
}
