package domain

import (
	"fmt"
	"time"
)

// Canton is the two-letter abbreviation of a Swiss canton.
type Canton string

var Cantons = []Canton{
	"AG", "AI", "AR", "BE", "BL", "BS", "FR", "GE", "GL", "GR",
	"JU", "LU", "NE", "NW", "OW", "SG", "SH", "SO", "SZ", "TG",
	"TI", "UR", "VD", "VS", "ZG", "ZH",
}

// ParseCanton validates a canton abbreviation.
func ParseCanton(s string) (Canton, error) {
	for _, c := range Cantons {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown canton: %q", s)
}

type Language string

const (
	LanguageGerman  Language = "de"
	LanguageFrench  Language = "fr"
	LanguageItalian Language = "it"
	LanguageRomansh Language = "rm"
)

type MunicipalityStatus string

const (
	StatusActive    MunicipalityStatus = "active"
	StatusMerged    MunicipalityStatus = "merged"
	StatusDissolved MunicipalityStatus = "dissolved"
)

// MonolingualCantons maps cantons with a single official language.
// Bilingual cantons (BE, FR, GR, VS) are deliberately absent; their
// municipalities need per-row language data.
var MonolingualCantons = map[Canton]Language{
	"AG": LanguageGerman, "AI": LanguageGerman, "AR": LanguageGerman,
	"BL": LanguageGerman, "BS": LanguageGerman, "GL": LanguageGerman,
	"LU": LanguageGerman, "NW": LanguageGerman, "OW": LanguageGerman,
	"SG": LanguageGerman, "SH": LanguageGerman, "SO": LanguageGerman,
	"SZ": LanguageGerman, "TG": LanguageGerman, "UR": LanguageGerman,
	"ZG": LanguageGerman, "ZH": LanguageGerman,
	"GE": LanguageFrench, "JU": LanguageFrench, "NE": LanguageFrench,
	"VD": LanguageFrench,
	"TI": LanguageItalian,
}

// Municipality is one Swiss commune, keyed externally by its BFS number.
type Municipality struct {
	ID           int
	BFSNr        int
	Name         string
	Canton       Canton
	DistrictNr   *int
	DistrictName string
	Language     Language
	Population   *int
	WebsiteURL   string
	Status       MunicipalityStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Enrichment carries externally researched attributes for one municipality.
// Zero-valued fields mean "no data", not "clear the column".
type Enrichment struct {
	BFSNr      int
	Language   Language
	Population *int
	WebsiteURL string
}

// IsEmpty reports whether the enrichment carries no data at all.
func (e Enrichment) IsEmpty() bool {
	return e.Language == "" && e.Population == nil && e.WebsiteURL == ""
}

// MunicipalityGap lists which enrichment fields a municipality is missing.
type MunicipalityGap struct {
	BFSNr             int
	Name              string
	Canton            Canton
	MissingLanguage   bool
	MissingPopulation bool
	MissingWebsite    bool
}
