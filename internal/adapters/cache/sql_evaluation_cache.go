package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"nav-eval-service/internal/domain"
	"nav-eval-service/internal/platform/obs"
)

// SQLEvaluationCache is a Postgres-backed evaluation cache (pgx stdlib driver).
type SQLEvaluationCache struct {
	DB *sql.DB
}

func NewSQLEvaluationCache(db *sql.DB) *SQLEvaluationCache {
	return &SQLEvaluationCache{DB: db}
}

// Fetch cached evaluations for the given keys.
func (s *SQLEvaluationCache) GetMany(
	ctx context.Context,
	keys []string,
) (_ map[string]domain.Evaluation, err error) {
	defer obs.Time(ctx, "evaluation.cache.sql.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("evaluation cache: db is nil")
	}

	uniq := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[string]domain.Evaluation{}, nil
	}

	q := `
	SELECT cache_key, exact, mostly_correct, minor_mistakes, major_mistakes, minor_threshold
	FROM evaluation_cache
	WHERE cache_key = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get evaluation cache: query evaluation_cache table: %w", err)
	}
	defer rows.Close()

	return scanEvaluations(rows, len(uniq))
}

// Store evaluations, replacing existing rows with the same key.
func (s *SQLEvaluationCache) PutMany(ctx context.Context, evals map[string]domain.Evaluation) error {
	return putMany(ctx, s.DB, evals, `
	INSERT INTO evaluation_cache (cache_key, exact, mostly_correct, minor_mistakes, major_mistakes, minor_threshold)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (cache_key) DO UPDATE
	SET exact = EXCLUDED.exact,
		mostly_correct = EXCLUDED.mostly_correct,
		minor_mistakes = EXCLUDED.minor_mistakes,
		major_mistakes = EXCLUDED.major_mistakes,
		minor_threshold = EXCLUDED.minor_threshold;
	`)
}
