package domain

import "time"

const DefaultMimeType = "application/pdf"

// DocumentType is the closed classification tag assigned to an ingested file.
type DocumentType string

const (
	TypeProtocol        DocumentType = "protocol"
	TypeFinancialReport DocumentType = "financial_report"
	TypeAppendix        DocumentType = "appendix"
	TypeIncomeStatement DocumentType = "income_statement"
	TypeValuation       DocumentType = "valuation"
	TypeAgendaItem      DocumentType = "agenda_item"
	TypeOther           DocumentType = "other"
)

// Document is the persisted artifact of one ingested council file.
// SourceURL is the natural key: re-ingesting the same URL must never
// create a second row.
type Document struct {
	ID              int
	MunicipalityID  int
	SourceURL       string
	SourceDocID     string
	SessionID       string
	Title           string
	Type            DocumentType
	SessionDate     *time.Time
	SessionTitle    string
	FileName        string
	FileSizeBytes   *int64
	MimeType        string
	BlobURL         *string
	BlobDownloadURL *string
	BlobPathname    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasBlob reports whether the document carries uploaded blob data.
func (d Document) HasBlob() bool {
	return d.BlobURL != nil
}

// DocumentPage is one rendered page image of a document, unique on
// (document id, page number). The ingestion toolkit defines the type for
// the shared schema but never writes these rows; page rendering is a
// downstream concern.
type DocumentPage struct {
	ID                int
	DocumentID        int
	PageNumber        int
	ImageURL          string
	ImageBlobPathname string
	Width             *int
	Height            *int
	TextContent       string
	CreatedAt         time.Time
}
