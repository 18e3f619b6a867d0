package pg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/protokolbase/protokolbase/internal/apperr"
	"github.com/protokolbase/protokolbase/internal/domain"
)

type MunicipalityStore struct {
	db *pgxpool.Pool
}

func NewMunicipalityStore(pool *ConnectionPool) *MunicipalityStore {
	return &MunicipalityStore{db: pool.conn}
}

func (s *MunicipalityStore) MunicipalityByBFS(ctx context.Context, bfsNr int) (*domain.Municipality, error) {
	sql := `
        SELECT id, bfs_nr, name, canton, district_nr, district_name,
               language, population, website_url, status
        FROM municipalities.municipalities
        WHERE bfs_nr = $1;
    `
	var (
		m        domain.Municipality
		lang     *string
		district *string
		website  *string
	)
	err := s.db.QueryRow(ctx, sql, bfsNr).Scan(
		&m.ID,
		&m.BFSNr,
		&m.Name,
		&m.Canton,
		&m.DistrictNr,
		&district,
		&lang,
		&m.Population,
		&website,
		&m.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("municipality", "bfs "+strconv.Itoa(bfsNr))
	}
	if err != nil {
		return nil, fmt.Errorf("lookup municipality bfs %d: %w", bfsNr, err)
	}

	if lang != nil {
		m.Language = domain.Language(*lang)
	}
	if district != nil {
		m.DistrictName = *district
	}
	if website != nil {
		m.WebsiteURL = *website
	}

	return &m, nil
}

func (s *MunicipalityStore) InsertMunicipalities(ctx context.Context, ms []domain.Municipality) (int64, error) {
	sql := `
        INSERT INTO municipalities.municipalities
            (bfs_nr, name, canton, district_nr, district_name)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (bfs_nr) DO NOTHING;
    `
	batch := &pgx.Batch{}
	for _, m := range ms {
		batch.Queue(sql, m.BFSNr, m.Name, m.Canton, m.DistrictNr, m.DistrictName)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range ms {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch insert municipalities: %w", err)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

func (s *MunicipalityStore) ApplyEnrichment(ctx context.Context, e domain.Enrichment) (bool, error) {
	if e.IsEmpty() {
		return false, nil
	}

	var clauses []string
	var args []any
	add := func(col string, val any) {
		args = append(args, val)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if e.Language != "" {
		add("language", e.Language)
	}
	if e.Population != nil {
		add("population", *e.Population)
	}
	if e.WebsiteURL != "" {
		add("website_url", e.WebsiteURL)
	}
	clauses = append(clauses, "updated_at = now()")

	args = append(args, e.BFSNr)
	sql := fmt.Sprintf(
		"UPDATE municipalities.municipalities SET %s WHERE bfs_nr = $%d;",
		strings.Join(clauses, ", "), len(args),
	)

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("enrich municipality bfs %d: %w", e.BFSNr, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *MunicipalityStore) FillCantonLanguage(ctx context.Context, canton domain.Canton, lang domain.Language) (int64, error) {
	sql := `
        UPDATE municipalities.municipalities
        SET language = $1, updated_at = now()
        WHERE canton = $2 AND language IS NULL;
    `
	tag, err := s.db.Exec(ctx, sql, lang, canton)
	if err != nil {
		return 0, fmt.Errorf("fill language for canton %s: %w", canton, err)
	}
	return tag.RowsAffected(), nil
}

func (s *MunicipalityStore) MunicipalityGaps(ctx context.Context) ([]domain.MunicipalityGap, error) {
	sql := `
        SELECT bfs_nr, name, canton,
               language IS NULL, population IS NULL, website_url IS NULL
        FROM municipalities.municipalities
        WHERE language IS NULL OR population IS NULL OR website_url IS NULL
        ORDER BY canton, bfs_nr;
    `
	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query municipality gaps: %w", err)
	}
	defer rows.Close()

	var gaps []domain.MunicipalityGap
	for rows.Next() {
		var g domain.MunicipalityGap
		if err := rows.Scan(
			&g.BFSNr,
			&g.Name,
			&g.Canton,
			&g.MissingLanguage,
			&g.MissingPopulation,
			&g.MissingWebsite,
		); err != nil {
			return nil, err
		}
		gaps = append(gaps, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return gaps, nil
}
