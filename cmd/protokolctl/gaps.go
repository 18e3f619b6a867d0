package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/protokolbase/protokolbase/internal/domain"
	"github.com/protokolbase/protokolbase/internal/storage/pg"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Report municipalities with missing language, population or website data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGaps(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(gapsCmd)
}

func runGaps(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		return err
	}
	defer pool.Close()

	gaps, err := pg.NewMunicipalityStore(pool).MunicipalityGaps(ctx)
	if err != nil {
		return err
	}

	var missingLang, missingPop, missingWeb int
	byCanton := make(map[domain.Canton][]domain.MunicipalityGap)
	for _, g := range gaps {
		if g.MissingLanguage {
			missingLang++
			byCanton[g.Canton] = append(byCanton[g.Canton], g)
		}
		if g.MissingPopulation {
			missingPop++
		}
		if g.MissingWebsite {
			missingWeb++
		}
	}

	fmt.Println("=== GAP ANALYSIS ===")
	fmt.Printf("Missing language: %d\n", missingLang)
	fmt.Printf("Missing population: %d\n", missingPop)
	fmt.Printf("Missing website: %d\n", missingWeb)

	fmt.Println("\n=== MISSING LANGUAGE (by canton) ===")
	for _, canton := range domain.Cantons {
		rows := byCanton[canton]
		if len(rows) == 0 {
			continue
		}
		fmt.Printf("%s (%d):\n", canton, len(rows))
		for _, g := range rows {
			fmt.Printf("  %d %s\n", g.BFSNr, g.Name)
		}
	}

	return nil
}
