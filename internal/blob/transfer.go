package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/protokolbase/protokolbase/internal/apperr"
	"github.com/protokolbase/protokolbase/internal/domain"
)

const downloadTimeout = 60 * time.Second

// Transferrer downloads a source document and re-uploads it to the
// configured store.
type Transferrer struct {
	client *http.Client
	store  Store
}

// NewTransferrer creates a transferrer backed by the given store.
func NewTransferrer(store Store) *Transferrer {
	return &Transferrer{
		client: &http.Client{Timeout: downloadTimeout},
		store:  store,
	}
}

// NewTransferrerWithClient is NewTransferrer with a custom HTTP client.
func NewTransferrerWithClient(store Store, client *http.Client) *Transferrer {
	return &Transferrer{client: client, store: store}
}

// Transfer GETs the full body at sourceURL and uploads it to pathname
// with the PDF content type. A failed download yields an
// apperr.DownloadError, a failed upload an apperr.UploadError; callers
// recover from both per document.
func (t *Transferrer) Transfer(ctx context.Context, sourceURL, pathname string) (Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return Info{}, fmt.Errorf("creating request for %s: %w", sourceURL, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return Info{}, fmt.Errorf("downloading %s: %w", sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Info{}, apperr.NewDownload(sourceURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Info{}, fmt.Errorf("reading body of %s: %w", sourceURL, err)
	}

	info, err := t.store.Put(ctx, pathname, body, domain.DefaultMimeType)
	if err != nil {
		return Info{}, apperr.NewUpload(pathname, err)
	}

	return info, nil
}
