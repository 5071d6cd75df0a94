package ports

import (
	"context"
	"nav-eval-service/internal/domain"
)

// Port: a boundary for retrieving reference routes (test-set samples).
type SampleRepository interface {
	// Retrieve all samples of a dataset, ordered by sample id.
	ListSamples(ctx context.Context, dataset string) ([]*domain.Sample, error)
	// Retrieve the requested samples of a dataset keyed by sample id.
	// Unknown ids are absent from the result rather than an error.
	GetSamples(ctx context.Context, dataset string, sampleIDs []string) (map[string]*domain.Sample, error)
}
