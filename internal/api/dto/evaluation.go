package dto

type EvaluateRequest struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

type EvaluationResponse struct {
	Verdict        string `json:"verdict"`
	Exact          bool   `json:"exact"`
	MostlyCorrect  bool   `json:"mostly_correct"`
	MinorMistakes  int    `json:"minor_mistakes"`
	MajorMistakes  int    `json:"major_mistakes"`
	MinorThreshold int    `json:"minor_threshold"`
}
