package services

import (
	"math"
	"nav-eval-service/internal/domain"
)

const (
	continueVerb = "continue"

	// Share of the worst-case mistake count tolerated as minor mistakes.
	minorToleranceRatio = 0.10

	// Step count difference beyond which a route is structurally wrong.
	maxStepCountDrift = 2
)

// FilterContinueCommands drops interior "continue" steps that carry no decision.
// The first and last commands are always kept, and so is a "continue" onto a
// highway with a heading, since that transition is real route information.
// The input is not modified.
func FilterContinueCommands(cmds []domain.Command) []domain.Command {
	out := make([]domain.Command, 0, len(cmds))
	for i, c := range cmds {
		if i == 0 || i == len(cmds)-1 {
			out = append(out, c)
			continue
		}
		if step, ok := c.(domain.Step); ok && step.Verb == continueVerb &&
			!IsNamedHighwayWithCardinalDirection(step.Street) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// IsNavigationExactlyCorrect reports whether actual follows the same route as expected,
// allowing street containment and highway turn-direction ambiguity only.
func IsNavigationExactlyCorrect(expected, actual []domain.Command) bool {
	exp := FilterContinueCommands(expected)
	act := FilterContinueCommands(actual)

	if len(exp) != len(act) {
		return false
	}

	for i := range exp {
		switch e := exp[i].(type) {
		case domain.Start:
			a, ok := act[i].(domain.Start)
			if !ok || e.Direction != a.Direction || !StreetNameMatches(e.Street, a.Street) {
				return false
			}
		case domain.Step:
			a, ok := act[i].(domain.Step)
			if !ok || !StreetNameMatches(e.Street, a.Street) {
				return false
			}
			if e.Verb != a.Verb && !highwayTurnRelaxed(e, a) {
				return false
			}
		case domain.Destination:
			a, ok := act[i].(domain.Destination)
			if !ok || e.Direction != a.Direction {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// CountMinorNavigationMistakes counts tolerable deviations: extra or missing
// steps, destination side, and the street rules in minorStreetRules.
// Only type-aligned Step and Destination pairs are scored; type mismatches are
// major mistakes.
func CountMinorNavigationMistakes(expected, actual []domain.Command) int {
	mistakes := absInt(len(actual) - len(expected))

	n := min(len(expected), len(actual))
	for i := 0; i < n; i++ {
		switch e := expected[i].(type) {
		case domain.Destination:
			if a, ok := actual[i].(domain.Destination); ok && e.Direction != a.Direction {
				mistakes++
			}
		case domain.Step:
			a, ok := actual[i].(domain.Step)
			if !ok {
				continue
			}
			if rule := firstStreetRule(e.Street, a.Street); rule != nil {
				mistakes++
			}
			// Counted independently of the street rules above.
			if e.Verb != a.Verb && !highwayTurnRelaxed(e, a) {
				mistakes++
			}
		}
	}

	return mistakes
}

// CountMajorNavigationMistakes counts deviations that change the route itself.
// A single position may contribute up to two mistakes (turn and street).
func CountMajorNavigationMistakes(expected, actual []domain.Command) int {
	exp := FilterContinueCommands(expected)
	act := FilterContinueCommands(actual)

	mistakes := 0
	n := min(len(exp), len(act))
	for i := 0; i < n; i++ {
		if exp[i].Kind() != act[i].Kind() {
			mistakes++
			continue
		}

		switch e := exp[i].(type) {
		case domain.Step:
			a := act[i].(domain.Step)
			if e.Verb != a.Verb && !highwayTurnRelaxed(e, a) {
				mistakes++
			}
			if !StreetNameMatches(e.Street, a.Street) {
				mistakes++
			}
		case domain.Start:
			a := act[i].(domain.Start)
			if e.Direction != a.Direction {
				mistakes++
			}
			if !StreetNameMatches(e.Street, a.Street) {
				mistakes++
			}
		case domain.Destination:
			// Destination side is only ever a minor mistake.
		}
	}

	if absInt(len(exp)-len(act)) > maxStepCountDrift {
		mistakes++
	}

	return mistakes
}

// CalculateMinorMistakeThreshold returns how many minor mistakes a route of this
// size tolerates: 10% of a worst case where every step is wrong on turn and
// street or extra, plus a destination mismatch. Never less than one.
func CalculateMinorMistakeThreshold(expected, actual []domain.Command) int {
	maxLen := max(len(FilterContinueCommands(expected)), len(FilterContinueCommands(actual)))
	upperBound := maxLen + maxLen*2 + 1

	threshold := int(math.Ceil(minorToleranceRatio * float64(upperBound)))
	return max(threshold, 1)
}

// IsNavigationMostlyCorrect reports whether actual has no major mistakes and
// no more minor mistakes than the route's threshold.
func IsNavigationMostlyCorrect(expected, actual []domain.Command) bool {
	if CountMajorNavigationMistakes(expected, actual) > 0 {
		return false
	}

	minor := CountMinorNavigationMistakes(FilterContinueCommands(expected), FilterContinueCommands(actual))
	return minor <= CalculateMinorMistakeThreshold(expected, actual)
}

// EvaluateRoutes scores two parsed routes.
func EvaluateRoutes(expected, actual []domain.Command) domain.Evaluation {
	major := CountMajorNavigationMistakes(expected, actual)
	minor := CountMinorNavigationMistakes(FilterContinueCommands(expected), FilterContinueCommands(actual))
	threshold := CalculateMinorMistakeThreshold(expected, actual)

	return domain.Evaluation{
		Exact:          IsNavigationExactlyCorrect(expected, actual),
		MostlyCorrect:  major == 0 && minor <= threshold,
		MinorMistakes:  minor,
		MajorMistakes:  major,
		MinorThreshold: threshold,
	}
}

// Evaluate parses both route texts and scores the candidate against the reference.
func Evaluate(expectedText, actualText string) domain.Evaluation {
	return EvaluateRoutes(ParseRoute(expectedText), ParseRoute(actualText))
}

// highwayTurnRelaxed reports whether a turn-word difference between two steps
// should be ignored: both are highways with a heading and name the same road.
func highwayTurnRelaxed(e, a domain.Step) bool {
	return IsNamedHighwayWithCardinalDirection(e.Street) &&
		IsNamedHighwayWithCardinalDirection(a.Street) &&
		StreetNameMatches(e.Street, a.Street)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
