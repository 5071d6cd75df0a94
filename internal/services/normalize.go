package services

import (
	"regexp"
	"strings"
)

var (
	// Anything other than word characters, whitespace and hyphens. Hyphens are kept
	// so highway designators like "i-280" survive normalization.
	streetPunctuation = regexp.MustCompile(`[^\w\s-]`)

	// Interstate, US and state route style designators: "i-280", "us-101", "ca85".
	highwayDesignator = regexp.MustCompile(`\b[a-z]{1,3}-?\d+\b`)
)

var cardinalTokens = map[string]struct{}{"n": {}, "s": {}, "e": {}, "w": {}}

// NormalizeStreetName lower-cases a street name, replaces punctuation (except
// hyphens) with spaces and collapses whitespace.
func NormalizeStreetName(s string) string {
	if s == "" {
		return ""
	}
	s = streetPunctuation.ReplaceAllString(strings.ToLower(s), " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// StreetNameMatches reports whether actual names the expected street.
// Matching is containment based so "king st" matches "king st north".
// An empty expected street matches anything.
func StreetNameMatches(expected, actual string) bool {
	e := NormalizeStreetName(expected)
	a := NormalizeStreetName(actual)

	if e == "" {
		return true
	}
	if a == "" {
		return false
	}
	return e == a || strings.Contains(a, e)
}

// IsNamedHighwayWithCardinalDirection reports whether the street is a highway
// designator carrying a single-letter heading, e.g. "us-101 s" or "i-280 n".
func IsNamedHighwayWithCardinalDirection(street string) bool {
	s := NormalizeStreetName(street)
	if !highwayDesignator.MatchString(s) {
		return false
	}
	for _, word := range strings.Fields(s) {
		if _, ok := cardinalTokens[word]; ok {
			return true
		}
	}
	return false
}

// splitHighwayHeading separates a trailing cardinal token from the rest of a
// normalized street: "us-101 s" -> ("us-101", "s", true).
func splitHighwayHeading(street string) (string, string, bool) {
	words := strings.Fields(NormalizeStreetName(street))
	if len(words) < 2 {
		return "", "", false
	}
	last := words[len(words)-1]
	if _, ok := cardinalTokens[last]; !ok {
		return "", "", false
	}
	return strings.Join(words[:len(words)-1], " "), last, true
}
