package scrape

import (
	"regexp"
	"strconv"
	"time"
)

// German month abbreviations as they appear on the session pages.
// "Mar" shows up alongside "Mär" on pages with inconsistent encoding.
var monthsByAbbrev = map[string]time.Month{
	"Jan": time.January, "Feb": time.February,
	"Mär": time.March, "Mar": time.March,
	"Apr": time.April, "Mai": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Okt": time.October, "Nov": time.November, "Dez": time.December,
}

// sessionDateTimeRe matches "17. Apr. 2023, 20.00 Uhr" in page text and
// captures the date part. \w does not cover ä in Go's regexp, hence the
// explicit class.
var sessionDateTimeRe = regexp.MustCompile(`(\d{1,2}\.\s*[A-Za-zÄÖÜäöü]{3}\.?\s*\d{4}),?\s*\d{1,2}\.\d{2}\s*Uhr`)

var sessionDateRe = regexp.MustCompile(`(\d{1,2})\.\s*([A-Za-zÄÖÜäöü]{3})\.?\s*(\d{4})`)

// parseSessionDate parses "17. Apr. 2023" into a date. A nil result is a
// normal outcome, not an error: callers treat it as "unknown".
func parseSessionDate(text string) *time.Time {
	m := sessionDateRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	month, ok := monthsByAbbrev[m[2]]
	if !ok {
		return nil
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return nil
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// findSessionDate scans full page text for the date+time pattern and
// returns the parsed date, or nil when the page carries none.
func findSessionDate(bodyText string) *time.Time {
	m := sessionDateTimeRe.FindStringSubmatch(bodyText)
	if m == nil {
		return nil
	}
	return parseSessionDate(m[1])
}
