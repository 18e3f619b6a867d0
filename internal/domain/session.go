package domain

import "time"

// Session is the parsed representation of one council meeting page.
// It is never persisted as its own row; it exists only for the duration
// of an ingestion run.
type Session struct {
	ID        string
	Title     string
	Date      *time.Time // nil when the page carries no recognizable date
	Documents []DocumentRef
}

// DocumentRef is one document link found on a session page.
type DocumentRef struct {
	DocID     string
	Title     string
	SourceURL string
}
