package ports

import (
	"context"
	"nav-eval-service/internal/domain"
)

// Cache of evaluations keyed by a digest of the reference and candidate texts.
// Scoring is a pure function of the texts, so entries never go stale.
type EvaluationCache interface {
	// Return cached evaluations for the keys that are present.
	GetMany(ctx context.Context, keys []string) (map[string]domain.Evaluation, error)
	// Store evaluations by key, overwriting existing entries.
	PutMany(ctx context.Context, evals map[string]domain.Evaluation) error
}
