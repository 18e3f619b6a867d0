// Command protokolctl maintains the municipal protocol database: it
// ingests session documents from municipality websites and seeds and
// enriches the municipality table.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "protokolctl",
	Short: "Ingestion and data maintenance for the municipal protocol database",
	Long: `protokolctl runs the batch jobs behind the protocol archive:

  ingest          fetch session pages, classify and store their documents
  seed            seed the municipality table from the OpenPLZ API
  enrich          enrich municipalities from Wikidata
  fill-languages  fill languages for monolingual cantons
  gaps            report municipalities with missing enrichment data
  apply-research  apply manually researched municipality data`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
