package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"nav-eval-service/internal/domain"
	"nav-eval-service/internal/platform/obs"
	"strings"
)

// Fixed-width UTC layout so created_at sorts lexically in TEXT columns.
const createdAtLayout = "2006-01-02T15:04:05.000000Z"

// SQLite-backed implementation of the ResultRepository port.
type SqliteResultRepository struct{ DB *sql.DB }

func NewSqliteResultRepository(db *sql.DB) *SqliteResultRepository {
	return &SqliteResultRepository{DB: db}
}

// Store a run and its results in one transaction.
func (s *SqliteResultRepository) SaveRun(
	ctx context.Context,
	run domain.Run,
	results []domain.SampleResult,
) (err error) {
	defer obs.Time(ctx, "results.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("sqlite result repository: DB is nil")
	}
	if strings.TrimSpace(run.RunID) == "" {
		return errors.New("save run: run_id must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO runs (run_id, dataset, model, created_at)
	VALUES (?, ?, ?, ?);
	`, run.RunID, run.Dataset, run.Model, run.CreatedAt.UTC().Format(createdAtLayout)); err != nil {
		return fmt.Errorf("save run: insert run %s: %w", run.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO sample_results (
		run_id,
		sample_id,
		output_tokens,
		exact,
		mostly_correct,
		minor_mistakes,
		major_mistakes,
		minor_threshold
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save run: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		e := r.Evaluation
		if _, err := stmt.ExecContext(ctx,
			run.RunID, r.SampleID, r.OutputTokens,
			e.Exact, e.MostlyCorrect, e.MinorMistakes, e.MajorMistakes, e.MinorThreshold,
		); err != nil {
			return fmt.Errorf("save run: insert result sample_id=%s: %w", r.SampleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit tx: %w", err)
	}

	return nil
}

// Return the results of each model's latest run on a dataset.
func (s *SqliteResultRepository) ListResultsByModel(
	ctx context.Context,
	dataset string,
) (_ map[string][]domain.SampleResult, err error) {
	defer obs.Time(ctx, "results.ListByModel")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite result repository: DB is nil")
	}

	query := `
	SELECT
		r.model,
		sr.sample_id,
		sr.output_tokens,
		sr.exact,
		sr.mostly_correct,
		sr.minor_mistakes,
		sr.major_mistakes,
		sr.minor_threshold
	FROM sample_results sr
	JOIN runs r ON r.run_id = sr.run_id
	WHERE r.dataset = ?
		AND r.created_at = (
			SELECT MAX(latest.created_at)
			FROM runs latest
			WHERE latest.dataset = r.dataset AND latest.model = r.model
		)
	ORDER BY r.model, sr.sample_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, dataset)
	if err != nil {
		return nil, fmt.Errorf("list results: query sample_results table: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.SampleResult)
	for rows.Next() {
		var model string
		var r domain.SampleResult
		if err := rows.Scan(
			&model, &r.SampleID, &r.OutputTokens,
			&r.Evaluation.Exact, &r.Evaluation.MostlyCorrect,
			&r.Evaluation.MinorMistakes, &r.Evaluation.MajorMistakes, &r.Evaluation.MinorThreshold,
		); err != nil {
			return nil, fmt.Errorf("list results: scan row: %w", err)
		}
		out[model] = append(out[model], r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: row iteration: %w", err)
	}

	return out, nil
}
