package services

import "strings"

// streetRule decides whether a pair of step streets is a minor mistake of one kind.
type streetRule struct {
	Name  string
	Match func(expected, actual string) bool
}

// minorStreetRules are applied in order; the first match is the one counted.
var minorStreetRules = []streetRule{
	{Name: "abbreviation", Match: isAbbreviationSwap},
	{Name: "highway-direction", Match: isHighwayDirectionMismatch},
	{Name: "wrong-highway", Match: isWrongHighway},
	{Name: "street-mismatch", Match: isStreetMismatch},
}

// Street suffixes that models swap for one another.
var swappableSuffixes = map[string]struct{}{"st": {}, "ave": {}, "blvd": {}}

// firstStreetRule returns the first rule matching the pair, or nil if the streets agree.
func firstStreetRule(expected, actual string) *streetRule {
	for i := range minorStreetRules {
		if minorStreetRules[i].Match(expected, actual) {
			return &minorStreetRules[i]
		}
	}
	return nil
}

// isAbbreviationSwap reports whether two streets have the same words except for
// st/ave/blvd swapped at the same position, e.g. "main blvd" vs "main ave".
func isAbbreviationSwap(expected, actual string) bool {
	e := strings.Fields(NormalizeStreetName(expected))
	a := strings.Fields(NormalizeStreetName(actual))
	if len(e) != len(a) {
		return false
	}

	swapped := false
	for i := range e {
		if e[i] == a[i] {
			continue
		}
		_, okE := swappableSuffixes[e[i]]
		_, okA := swappableSuffixes[a[i]]
		if !okE || !okA {
			return false
		}
		swapped = true
	}
	return swapped
}

// isHighwayDirectionMismatch reports whether both streets are the same highway
// with different headings, e.g. "i-280 n" vs "i-280 s".
func isHighwayDirectionMismatch(expected, actual string) bool {
	baseE, headingE, okE := splitHighwayHeading(expected)
	baseA, headingA, okA := splitHighwayHeading(actual)
	if !okE || !okA {
		return false
	}
	return baseE == baseA && headingE != headingA && highwayDesignator.MatchString(baseE)
}

// isWrongHighway reports whether both streets are highways with headings that don't match.
func isWrongHighway(expected, actual string) bool {
	return IsNamedHighwayWithCardinalDirection(expected) &&
		IsNamedHighwayWithCardinalDirection(actual) &&
		!StreetNameMatches(expected, actual)
}

func isStreetMismatch(expected, actual string) bool {
	return !StreetNameMatches(expected, actual)
}
