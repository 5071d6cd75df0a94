package domain

import "time"

// Represents a reference route from a test set.
// A Sample is identified by its dataset and id, and holds the route text that
// candidates are scored against.
type Sample struct {
	SampleID     string
	Dataset      string
	Prompt       string
	ExpectedText string
}

// Candidate is a model-produced route for a single sample.
// OutputTokens is zero when the producer did not report usage.
type Candidate struct {
	SampleID     string
	Text         string
	OutputTokens int
}

// SampleResult pairs a candidate with its evaluation.
type SampleResult struct {
	SampleID     string
	OutputTokens int
	Evaluation   Evaluation
}

// Represents one scoring pass of a model over a dataset.
type Run struct {
	RunID     string
	Dataset   string
	Model     string
	CreatedAt time.Time
}
