package domain

// Aggregate accuracy of one model over a set of sample results.
// MostlyCorrect counts only samples that were mostly correct but not exact,
// so TotalAccuracy is ExactAccuracy + MostlyAccuracy.
type ModelSummary struct {
	Model           string
	Profile         ModelProfile
	TotalSamples    int
	ExactlyCorrect  int
	MostlyCorrect   int
	ExactAccuracy   float64
	MostlyAccuracy  float64
	TotalAccuracy   float64
	AvgOutputTokens float64
}

// ModelProfile describes where a model comes from.
type ModelProfile struct {
	Family   string
	Company  string
	Thinking bool
}
