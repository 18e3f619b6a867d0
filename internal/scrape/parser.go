package scrape

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/protokolbase/protokolbase/internal/domain"
)

const docPathPrefix = "/_doc/"

// titleSuffixRe strips trailing site suffixes like " - Gemeinde Ingenbohl"
// or " | Ingenbohl" from <title> fallbacks.
var titleSuffixRe = regexp.MustCompile(`\s*[-|].*$`)

// parseSessionPage turns one session page body into a Session. Absence of
// a date or of document links is a valid outcome: a session may not have
// attachments yet.
func parseSessionPage(sessionID, baseURL string, body io.Reader) (domain.Session, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parsing session page HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(titleSuffixRe.ReplaceAllString(doc.Find("title").Text(), ""))
	}

	date := findSessionDate(doc.Find("body").Text())

	var refs []domain.DocumentRef
	seen := make(map[string]bool)

	doc.Find(`a[href^="` + docPathPrefix + `"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		docID := strings.TrimPrefix(href, docPathPrefix)
		if seen[docID] {
			// Sites link the same document twice: display anchor plus an
			// explicit download anchor. First seen wins.
			return
		}

		docTitle, ok := a.Attr("title")
		if !ok || docTitle == "" {
			docTitle = strings.TrimSpace(a.Text())
		}
		if docTitle == "" || strings.EqualFold(docTitle, "download") {
			return
		}

		seen[docID] = true
		refs = append(refs, domain.DocumentRef{
			DocID:     docID,
			Title:     docTitle,
			SourceURL: baseURL + href,
		})
	})

	return domain.Session{
		ID:        sessionID,
		Title:     title,
		Date:      date,
		Documents: refs,
	}, nil
}
