package ports

import (
	"context"
	"errors"
	"nav-eval-service/internal/domain"
)

// ErrNotFound is returned when a requested run or dataset has no stored data.
var ErrNotFound = errors.New("not found")

// Port: persistence of scored runs.
type ResultRepository interface {
	// Store a run together with all of its per-sample results.
	SaveRun(ctx context.Context, run domain.Run, results []domain.SampleResult) error
	// Return all stored results of a dataset grouped by model.
	ListResultsByModel(ctx context.Context, dataset string) (map[string][]domain.SampleResult, error)
}
