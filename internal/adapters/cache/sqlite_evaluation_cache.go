package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"nav-eval-service/internal/domain"
	"nav-eval-service/internal/platform/obs"
	"strings"
)

// SQLite backed cache of evaluations keyed by route-pair digest.
type SqliteEvaluationCache struct {
	DB *sql.DB
}

func NewSqliteEvaluationCache(db *sql.DB) *SqliteEvaluationCache {
	return &SqliteEvaluationCache{DB: db}
}

// Fetch cached evaluations for the given keys.
func (s *SqliteEvaluationCache) GetMany(
	ctx context.Context,
	keys []string,
) (_ map[string]domain.Evaluation, err error) {
	defer obs.Time(ctx, "evaluation.cache.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("evaluation cache: db is nil")
	}

	uniq := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[string]domain.Evaluation{}, nil
	}

	args := make([]any, 0, len(uniq))
	for _, k := range uniq {
		args = append(args, k)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
		cache_key,
		exact,
		mostly_correct,
		minor_mistakes,
		major_mistakes,
		minor_threshold
	FROM evaluation_cache
	WHERE cache_key IN (%s);
	`, strings.TrimSuffix(strings.Repeat("?,", len(uniq)), ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get evaluation cache: query evaluation_cache table: %w", err)
	}
	defer rows.Close()

	return scanEvaluations(rows, len(uniq))
}

// Store evaluations, replacing existing rows with the same key.
func (s *SqliteEvaluationCache) PutMany(ctx context.Context, evals map[string]domain.Evaluation) error {
	return putMany(ctx, s.DB, evals, `
	INSERT INTO evaluation_cache (cache_key, exact, mostly_correct, minor_mistakes, major_mistakes, minor_threshold)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET exact = excluded.exact,
		mostly_correct = excluded.mostly_correct,
		minor_mistakes = excluded.minor_mistakes,
		major_mistakes = excluded.major_mistakes,
		minor_threshold = excluded.minor_threshold;
	`)
}

func scanEvaluations(rows *sql.Rows, capacity int) (map[string]domain.Evaluation, error) {
	out := make(map[string]domain.Evaluation, capacity)
	for rows.Next() {
		var key string
		var e domain.Evaluation
		if err := rows.Scan(&key, &e.Exact, &e.MostlyCorrect, &e.MinorMistakes, &e.MajorMistakes, &e.MinorThreshold); err != nil {
			return nil, fmt.Errorf("get evaluation cache: scan rows: %w", err)
		}
		out[key] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get evaluation cache: row iteration: %w", err)
	}
	return out, nil
}

func putMany(ctx context.Context, db *sql.DB, evals map[string]domain.Evaluation, query string) (err error) {
	defer obs.Time(ctx, "evaluation.cache.PutMany")(&err)

	if db == nil {
		return errors.New("evaluation cache: db is nil")
	}

	if len(evals) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert evaluation cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("insert evaluation cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, e := range evals {
		if strings.TrimSpace(key) == "" {
			return errors.New("insert evaluation cache: empty key")
		}

		if _, err := stmt.ExecContext(ctx, key, e.Exact, e.MostlyCorrect, e.MinorMistakes, e.MajorMistakes, e.MinorThreshold); err != nil {
			return fmt.Errorf("insert evaluation cache key=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert evaluation cache commit: %w", err)
	}

	return nil
}
