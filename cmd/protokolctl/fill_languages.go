package main

import (
	"context"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/protokolbase/protokolbase/internal/domain"
	"github.com/protokolbase/protokolbase/internal/storage/pg"
)

var fillLanguagesCmd = &cobra.Command{
	Use:   "fill-languages",
	Short: "Fill the language column for municipalities in monolingual cantons",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFillLanguages(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(fillLanguagesCmd)
}

func runFillLanguages(ctx context.Context) error {
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

	cantons := make([]domain.Canton, 0, len(domain.MonolingualCantons))
	for c := range domain.MonolingualCantons {
		cantons = append(cantons, c)
	}
	sort.Slice(cantons, func(i, j int) bool { return cantons[i] < cantons[j] })

	var total int64
	for _, canton := range cantons {
		lang := domain.MonolingualCantons[canton]
		count, err := store.FillCantonLanguage(ctx, canton, lang)
		if err != nil {
			return err
		}
		if count > 0 {
			slog.Info("Filled language", "canton", canton, "language", lang, "municipalities", count)
			total += count
		}
	}

	slog.Info("Language fill complete", "municipalities", total)
	return nil
}
