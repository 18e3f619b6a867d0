// Package sources loads the YAML source catalog that tells an ingestion
// run which municipality sites to visit and which session pages to read.
// The catalog replaces hard-coded session lists: the orchestrator itself
// carries no sample data.
package sources

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Site describes one municipality website to ingest from.
type Site struct {
	// Name is a short slug, also used as the default blob path prefix.
	Name string `yaml:"name"`
	// BaseURL is the site root, e.g. "https://www.ingenbohl.ch".
	BaseURL string `yaml:"baseURL"`
	// BFSNr identifies the owning municipality in the relational store.
	BFSNr int `yaml:"bfsNr"`
	// SessionPath is the session page path prefix; defaults to "/sitzungen/".
	SessionPath string `yaml:"sessionPath,omitempty"`
	// BlobPrefix overrides Name as the blob path prefix.
	BlobPrefix string `yaml:"blobPrefix,omitempty"`
	// SessionIDs are the opaque session page tokens to fetch.
	SessionIDs []string `yaml:"sessionIDs"`
}

// Prefix returns the blob path prefix for the site.
func (s Site) Prefix() string {
	if s.BlobPrefix != "" {
		return s.BlobPrefix
	}
	return s.Name
}

// Catalog is the full source-of-truth document.
type Catalog struct {
	Sites []Site `yaml:"sites"`
}

func (c *Catalog) Validate() error {
	if len(c.Sites) == 0 {
		return fmt.Errorf("at least one site is required")
	}
	for i, s := range c.Sites {
		if s.Name == "" {
			return fmt.Errorf("sites[%d]: name is required", i)
		}
		if s.BaseURL == "" {
			return fmt.Errorf("sites[%d] (%s): baseURL is required", i, s.Name)
		}
		if s.BFSNr <= 0 {
			return fmt.Errorf("sites[%d] (%s): bfsNr is required", i, s.Name)
		}
		if len(s.SessionIDs) == 0 {
			return fmt.Errorf("sites[%d] (%s): at least one session id is required", i, s.Name)
		}
	}
	return nil
}

type Loader struct {
	reader io.Reader
}

func NewLoader(reader io.Reader) *Loader {
	return &Loader{reader: reader}
}

func (l *Loader) Load(validate bool) (*Catalog, error) {
	decoder := yaml.NewDecoder(l.reader)
	var catalog Catalog
	if err := decoder.Decode(&catalog); err != nil {
		return nil, err
	}
	if validate {
		if err := catalog.Validate(); err != nil {
			return nil, err
		}
	}
	return &catalog, nil
}

// LoadFile loads and validates a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source catalog %s: %w", path, err)
	}
	defer f.Close()

	return NewLoader(f).Load(true)
}
