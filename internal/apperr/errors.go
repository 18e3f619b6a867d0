package apperr

import "fmt"

// FetchError reports a non-success HTTP status while retrieving a session
// page. It is fatal to an ingestion run.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func NewFetch(url string, status int) *FetchError {
	return &FetchError{URL: url, StatusCode: status}
}

// DownloadError reports a non-success HTTP status while retrieving a
// source document body. Recovered per document: the record is still
// written, without blob fields.
type DownloadError struct {
	URL        string
	StatusCode int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: status %d", e.URL, e.StatusCode)
}

func NewDownload(url string, status int) *DownloadError {
	return &DownloadError{URL: url, StatusCode: status}
}

// UploadError reports a failed object storage write. Same recovery policy
// as DownloadError.
type UploadError struct {
	Pathname string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Pathname, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

func NewUpload(pathname string, err error) *UploadError {
	return &UploadError{Pathname: pathname, Err: err}
}

// NotFoundError reports a missing row for a natural-key lookup.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func NewNotFound(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}
