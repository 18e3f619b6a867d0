package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/protokolbase/protokolbase/internal/domain"
	"github.com/protokolbase/protokolbase/internal/openplz"
	"github.com/protokolbase/protokolbase/internal/storage/pg"
)

// Canton keys in the OpenPLZ API run 1 through 26.
const cantonKeyCount = 26

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the municipality table from the OpenPLZ API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		return err
	}
	defer pool.Close()

	store := pg.NewMunicipalityStore(pool)
	client := openplz.NewClient()

	var total int64

	for cantonKey := 1; cantonKey <= cantonKeyCount; cantonKey++ {
		communes, err := client.CommunesByCanton(ctx, cantonKey)
		if err != nil {
			return err
		}
		if len(communes) == 0 {
			continue
		}

		rows, err := mapCommunes(communes)
		if err != nil {
			return err
		}

		inserted, err := store.InsertMunicipalities(ctx, rows)
		if err != nil {
			return err
		}

		total += inserted
		slog.Info("Seeded canton",
			"canton", communes[0].Canton.ShortName,
			"communes", len(communes),
			"inserted", inserted,
			"total", total,
		)
	}

	slog.Info("Seeding complete", "municipalities", total)
	return nil
}

func mapCommunes(communes []openplz.Commune) ([]domain.Municipality, error) {
	rows := make([]domain.Municipality, 0, len(communes))
	for _, c := range communes {
		m, err := openplz.ToMunicipality(c)
		if err != nil {
			return nil, err
		}
		rows = append(rows, m)
	}
	return rows, nil
}
