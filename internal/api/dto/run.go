package dto

import "time"

type CandidateRequest struct {
	SampleID     string `json:"sample_id"`
	Text         string `json:"text"`
	OutputTokens int    `json:"output_tokens"`
}

type RunRequest struct {
	Dataset    string             `json:"dataset"`
	Model      string             `json:"model"`
	Candidates []CandidateRequest `json:"candidates"`
}

type SampleResultResponse struct {
	SampleID     string             `json:"sample_id"`
	OutputTokens int                `json:"output_tokens"`
	Evaluation   EvaluationResponse `json:"evaluation"`
}

// Field names follow the eval-results.json layout consumed by the analysis notebooks.
type SummaryResponse struct {
	Model           string  `json:"model"`
	Family          string  `json:"family"`
	Company         string  `json:"company"`
	Thinking        bool    `json:"isThinking"`
	TotalSamples    int     `json:"totalSamples"`
	ExactlyCorrect  int     `json:"exactlyCorrect"`
	MostlyCorrect   int     `json:"mostlyCorrect"`
	ExactAccuracy   float64 `json:"exactAccuracy"`
	MostlyAccuracy  float64 `json:"mostlyAccuracy"`
	TotalAccuracy   float64 `json:"totalAccuracy"`
	AvgOutputTokens float64 `json:"avgOutputTokens"`
}

type RunResponse struct {
	RunID     string                 `json:"run_id"`
	Dataset   string                 `json:"dataset"`
	Model     string                 `json:"model"`
	CreatedAt time.Time              `json:"created_at"`
	Summary   SummaryResponse        `json:"summary"`
	Results   []SampleResultResponse `json:"results"`
}

type LeaderboardResponse struct {
	Dataset string            `json:"dataset"`
	Models  []SummaryResponse `json:"models"`
}
