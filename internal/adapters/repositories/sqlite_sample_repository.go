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

// SQLite-backed implementation of the SampleRepository port.
type SqliteSampleRepository struct{ DB *sql.DB }

func NewSqliteSampleRepository(db *sql.DB) *SqliteSampleRepository {
	return &SqliteSampleRepository{DB: db}
}

// Return all samples of a dataset.
func (s *SqliteSampleRepository) ListSamples(ctx context.Context, dataset string) (_ []*domain.Sample, err error) {
	defer obs.Time(ctx, "samples.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite sample repository: DB is nil")
	}

	query := `
	SELECT
		dataset,
		sample_id,
		prompt,
		expected_text
	FROM samples
	WHERE dataset = ?
	ORDER BY sample_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, dataset)
	if err != nil {
		return nil, fmt.Errorf("list samples: query samples table: %w", err)
	}
	defer rows.Close()

	return scanSamples(rows)
}

// Return the requested samples keyed by sample id.
func (s *SqliteSampleRepository) GetSamples(
	ctx context.Context,
	dataset string,
	sampleIDs []string,
) (_ map[string]*domain.Sample, err error) {
	defer obs.Time(ctx, "samples.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite sample repository: DB is nil")
	}
	if len(sampleIDs) == 0 {
		return map[string]*domain.Sample{}, nil
	}

	args := make([]any, 0, len(sampleIDs)+1)
	args = append(args, dataset)
	for _, id := range sampleIDs {
		args = append(args, id)
	}

	query := `
	SELECT dataset, sample_id, prompt, expected_text
	FROM samples
	WHERE dataset = ?
		AND sample_id IN (` + placeholders(len(sampleIDs)) + `);
	`
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get samples: query samples table: %w", err)
	}
	defer rows.Close()

	list, err := scanSamples(rows)
	if err != nil {
		return nil, fmt.Errorf("get samples: %w", err)
	}

	out := make(map[string]*domain.Sample, len(list))
	for _, smp := range list {
		out[smp.SampleID] = smp
	}
	return out, nil
}

func scanSamples(rows *sql.Rows) ([]*domain.Sample, error) {
	samples := make([]*domain.Sample, 0, 64)
	for rows.Next() {
		var smp domain.Sample
		if err := rows.Scan(&smp.Dataset, &smp.SampleID, &smp.Prompt, &smp.ExpectedText); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		samples = append(samples, &smp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return samples, nil
}

// placeholders returns "?, ?, ?" for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
