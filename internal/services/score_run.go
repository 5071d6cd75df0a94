package services

import (
	"context"
	"errors"
	"fmt"
	"nav-eval-service/internal/domain"
	"nav-eval-service/internal/platform/obs"
	"nav-eval-service/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidRun marks a run request that can never be scored as given.
var ErrInvalidRun = errors.New("invalid run")

// ScoreRunRequest is one model's candidates for a dataset, keyed by sample id.
type ScoreRunRequest struct {
	Dataset    string
	Model      string
	Candidates []domain.Candidate
	CreatedAt  time.Time
}

// RunReport is the outcome of scoring one run.
// Results are in the same order as the request's candidates.
type RunReport struct {
	Run     domain.Run
	Results []domain.SampleResult
	Summary domain.ModelSummary
}

// ScoreRun scores a model's candidates against the dataset's reference routes
// and persists the run.
//
// Every candidate must reference a known sample of the dataset; the run is
// rejected as a whole otherwise, so stored runs are always complete.
func ScoreRun(
	ctx context.Context,
	req ScoreRunRequest,
	samples ports.SampleRepository,
	results ports.ResultRepository,
	evaluator *Evaluator,
) (_ *RunReport, err error) {
	defer obs.Time(ctx, "score.run")(&err)

	dataset := strings.TrimSpace(req.Dataset)
	model := strings.TrimSpace(req.Model)
	if dataset == "" {
		return nil, fmt.Errorf("score run: dataset must be non-empty: %w", ErrInvalidRun)
	}
	if model == "" {
		return nil, fmt.Errorf("score run: model must be non-empty: %w", ErrInvalidRun)
	}
	if len(req.Candidates) == 0 {
		return nil, fmt.Errorf("score run: candidate list must not be empty: %w", ErrInvalidRun)
	}

	ids := make([]string, 0, len(req.Candidates))
	seen := make(map[string]struct{}, len(req.Candidates))
	for i, c := range req.Candidates {
		id := strings.TrimSpace(c.SampleID)
		if id == "" {
			return nil, fmt.Errorf("score run: candidate at index %d has empty sample_id: %w", i, ErrInvalidRun)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("score run: duplicate sample_id %q: %w", id, ErrInvalidRun)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	refs, err := samples.GetSamples(ctx, dataset, ids)
	if err != nil {
		return nil, fmt.Errorf("score run: get samples: %w", err)
	}

	pairs := make([]RoutePair, 0, len(ids))
	for _, id := range ids {
		ref, ok := refs[id]
		if !ok {
			return nil, fmt.Errorf("score run: sample %q in dataset %q: %w", id, dataset, ports.ErrNotFound)
		}
		pairs = append(pairs, RoutePair{Expected: ref.ExpectedText})
	}
	for i, c := range req.Candidates {
		pairs[i].Actual = c.Text
	}

	evals, err := evaluator.EvaluateMany(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("score run: %w", err)
	}

	sampleResults := make([]domain.SampleResult, 0, len(evals))
	for i, e := range evals {
		sampleResults = append(sampleResults, domain.SampleResult{
			SampleID:     ids[i],
			OutputTokens: req.Candidates[i].OutputTokens,
			Evaluation:   e,
		})
	}

	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	run := domain.Run{
		RunID:     uuid.NewString(),
		Dataset:   dataset,
		Model:     model,
		CreatedAt: createdAt,
	}

	if err := results.SaveRun(ctx, run, sampleResults); err != nil {
		return nil, fmt.Errorf("score run: save run %s: %w", run.RunID, err)
	}

	return &RunReport{
		Run:     run,
		Results: sampleResults,
		Summary: Summarize(model, sampleResults),
	}, nil
}
