// Package classify maps free-text document titles to the closed set of
// document type tags using German keyword heuristics.
package classify

import (
	"strings"

	"github.com/protokolbase/protokolbase/internal/domain"
)

type rule struct {
	keywords []string
	docType  domain.DocumentType
}

// rules is a priority list: titles often contain several keywords
// ("Anhang 3 zur Jahresrechnung") and the first matching rule wins.
var rules = []rule{
	{[]string{"protokoll"}, domain.TypeProtocol},
	{[]string{"anhang"}, domain.TypeAppendix},
	{[]string{"jahresrechnung"}, domain.TypeFinancialReport},
	{[]string{"erfolgsrechnung"}, domain.TypeIncomeStatement},
	{[]string{"schatzung", "schätzung"}, domain.TypeValuation},
	{[]string{"traktandum"}, domain.TypeAgendaItem},
}

// Title returns the document type for a title. It is total: every input
// maps to exactly one tag, unknown titles to TypeOther.
func Title(title string) domain.DocumentType {
	lower := strings.ToLower(title)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.docType
			}
		}
	}
	return domain.TypeOther
}
