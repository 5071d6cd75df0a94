package domain

// Verdict is the overall judgement of a candidate route.
type Verdict string

const (
	VerdictExact         Verdict = "exact"
	VerdictMostlyCorrect Verdict = "mostly-correct"
	VerdictIncorrect     Verdict = "incorrect"
)

// Evaluation is the score of one candidate route against its reference.
// It is immutable scoring data.
type Evaluation struct {
	Exact          bool
	MostlyCorrect  bool
	MinorMistakes  int
	MajorMistakes  int
	MinorThreshold int
}

// Verdict collapses the evaluation into a single label.
// An exact match takes precedence over a mostly-correct one.
func (e Evaluation) Verdict() Verdict {
	if e.Exact {
		return VerdictExact
	}
	if e.MostlyCorrect {
		return VerdictMostlyCorrect
	}
	return VerdictIncorrect
}
