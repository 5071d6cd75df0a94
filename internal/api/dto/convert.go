package dto

import "nav-eval-service/internal/domain"

func FromEvaluation(e domain.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		Verdict:        string(e.Verdict()),
		Exact:          e.Exact,
		MostlyCorrect:  e.MostlyCorrect,
		MinorMistakes:  e.MinorMistakes,
		MajorMistakes:  e.MajorMistakes,
		MinorThreshold: e.MinorThreshold,
	}
}

func FromSummary(s domain.ModelSummary) SummaryResponse {
	return SummaryResponse{
		Model:           s.Model,
		Family:          s.Profile.Family,
		Company:         s.Profile.Company,
		Thinking:        s.Profile.Thinking,
		TotalSamples:    s.TotalSamples,
		ExactlyCorrect:  s.ExactlyCorrect,
		MostlyCorrect:   s.MostlyCorrect,
		ExactAccuracy:   s.ExactAccuracy,
		MostlyAccuracy:  s.MostlyAccuracy,
		TotalAccuracy:   s.TotalAccuracy,
		AvgOutputTokens: s.AvgOutputTokens,
	}
}
