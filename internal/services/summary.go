package services

import (
	"context"
	"fmt"
	"nav-eval-service/internal/domain"
	"nav-eval-service/internal/ports"
	"slices"
	"strings"
)

// Summarize aggregates one model's results into accuracy figures.
// Average output tokens only consider samples that reported usage.
func Summarize(model string, results []domain.SampleResult) domain.ModelSummary {
	s := domain.ModelSummary{
		Model:        model,
		Profile:      CategorizeModel(model),
		TotalSamples: len(results),
	}
	if len(results) == 0 {
		return s
	}

	tokens, reported := 0, 0
	for _, r := range results {
		switch r.Evaluation.Verdict() {
		case domain.VerdictExact:
			s.ExactlyCorrect++
		case domain.VerdictMostlyCorrect:
			s.MostlyCorrect++
		}
		if r.OutputTokens > 0 {
			tokens += r.OutputTokens
			reported++
		}
	}

	n := float64(len(results))
	s.ExactAccuracy = float64(s.ExactlyCorrect) / n
	s.MostlyAccuracy = float64(s.MostlyCorrect) / n
	s.TotalAccuracy = float64(s.ExactlyCorrect+s.MostlyCorrect) / n
	if reported > 0 {
		s.AvgOutputTokens = float64(tokens) / float64(reported)
	}

	return s
}

// Leaderboard summarizes every model scored on a dataset, best total accuracy first.
// Ties are broken by model name for a deterministic order.
func Leaderboard(ctx context.Context, dataset string, repo ports.ResultRepository) ([]domain.ModelSummary, error) {
	byModel, err := repo.ListResultsByModel(ctx, strings.TrimSpace(dataset))
	if err != nil {
		return nil, fmt.Errorf("leaderboard: list results: %w", err)
	}

	out := make([]domain.ModelSummary, 0, len(byModel))
	for model, results := range byModel {
		out = append(out, Summarize(model, results))
	}

	slices.SortFunc(out, func(a, b domain.ModelSummary) int {
		if a.TotalAccuracy > b.TotalAccuracy {
			return -1
		}
		if a.TotalAccuracy < b.TotalAccuracy {
			return 1
		}
		return strings.Compare(a.Model, b.Model)
	})

	return out, nil
}
