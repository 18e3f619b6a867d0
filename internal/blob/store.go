// Package blob moves source PDFs into durable object storage and hands
// back stable URLs for the stored copies.
package blob

import "context"

// Info describes one stored blob.
type Info struct {
	// URL is the public URL of the stored object.
	URL string
	// DownloadURL is an authenticated (presigned) GET URL.
	DownloadURL string
	// Pathname is the canonical storage path, which may differ from the
	// requested one after normalization.
	Pathname string
	// SizeBytes is the size of the uploaded body.
	SizeBytes int64
}

// Store writes binary objects to durable storage. Writes overwrite any
// existing object at the same pathname; no randomized suffix is added,
// so the same logical path stays stable across re-runs.
type Store interface {
	Put(ctx context.Context, pathname string, body []byte, contentType string) (Info, error)
}
