package scrape

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionPageHTML = `<!DOCTYPE html>
<html>
<head><title>Gemeinderatssitzung - Gemeinde Ingenbohl</title></head>
<body>
<h1>Gemeinderatssitzung vom 17. April 2023</h1>
<p>Sitzung vom 17. Apr. 2023, 20.00 Uhr im Gemeindehaus.</p>
<ul>
  <li><a href="/_doc/123" title="Protokoll Februar">Protokoll Februar</a></li>
  <li><a href="/_doc/123">Download</a></li>
  <li><a href="/_doc/456">Anhang zur Jahresrechnung</a></li>
  <li><a href="/other/999">Unrelated link</a></li>
</ul>
</body>
</html>`

func TestParseSessionPage(t *testing.T) {
	session, err := parseSessionPage("5342411", "https://www.ingenbohl.ch", strings.NewReader(sessionPageHTML))
	require.NoError(t, err)

	assert.Equal(t, "5342411", session.ID)
	assert.Equal(t, "Gemeinderatssitzung vom 17. April 2023", session.Title)

	require.NotNil(t, session.Date)
	assert.Equal(t, time.Date(2023, time.April, 17, 0, 0, 0, 0, time.UTC), *session.Date)

	require.Len(t, session.Documents, 2)
	assert.Equal(t, "123", session.Documents[0].DocID)
	assert.Equal(t, "Protokoll Februar", session.Documents[0].Title)
	assert.Equal(t, "https://www.ingenbohl.ch/_doc/123", session.Documents[0].SourceURL)
	assert.Equal(t, "456", session.Documents[1].DocID)
	assert.Equal(t, "Anhang zur Jahresrechnung", session.Documents[1].Title)
}

func TestParseSessionPage_DownloadAnchorBeforeTitledAnchor(t *testing.T) {
	html := `<html><body>
	  <a href="/_doc/123">Download</a>
	  <a href="/_doc/123" title="Protokoll Februar">Protokoll Februar</a>
	</body></html>`

	session, err := parseSessionPage("1", "https://example.ch", strings.NewReader(html))
	require.NoError(t, err)

	// The generic download anchor must not consume the doc id.
	require.Len(t, session.Documents, 1)
	assert.Equal(t, "Protokoll Februar", session.Documents[0].Title)
}

func TestParseSessionPage_TitleFallback(t *testing.T) {
	html := `<html>
	  <head><title>Sitzung 12. Mai 2024 | Gemeinde Muster</title></head>
	  <body><p>Kein Haupttitel.</p></body>
	</html>`

	session, err := parseSessionPage("2", "https://example.ch", strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "Sitzung 12. Mai 2024", session.Title)
}

func TestParseSessionPage_NoDateNoDocuments(t *testing.T) {
	html := `<html><body><h1>Sitzung</h1><p>Noch keine Unterlagen.</p></body></html>`

	session, err := parseSessionPage("3", "https://example.ch", strings.NewReader(html))
	require.NoError(t, err)

	assert.Nil(t, session.Date)
	assert.Empty(t, session.Documents)
}
