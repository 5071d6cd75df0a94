package services

import (
	"nav-eval-service/internal/domain"
	"regexp"
	"strings"
)

const (
	beginMarker     = "begin:"
	destinationVerb = "destination"
)

var (
	// Bullets, dashes and "1." / "1)" / "1:" numbering, possibly stacked ("- 1. ").
	// A bare leading number is content ("101 n, ..."), not numbering.
	listMarker = regexp.MustCompile(`^(?:\s*(?:[-*•+]|\d+[.):]))+\s*`)
	whitespace = regexp.MustCompile(`\s+`)
)

// ParseRoute turns route text into an ordered command sequence.
//
// Parsing is total: it never fails and carries malformed tokens through as-is,
// leaving it to the comparator to reject them. Empty text yields an empty sequence.
func ParseRoute(text string) []domain.Command {
	lines := cleanLines(text)
	cmds := make([]domain.Command, 0, len(lines))

	for i, line := range lines {
		verb, rest := splitFirstComma(line)

		switch {
		case i == 0 && strings.HasPrefix(verb, beginMarker):
			// The marker is glued to the direction ("begin: north, ..."), so re-split after removing it.
			direction, street := splitFirstComma(strings.TrimSpace(strings.TrimPrefix(line, beginMarker)))
			cmds = append(cmds, domain.Start{Direction: direction, Street: street, Original: line})
		case i == len(lines)-1 && verb == destinationVerb:
			cmds = append(cmds, domain.Destination{Direction: rest, Original: line})
		default:
			cmds = append(cmds, domain.Step{Verb: verb, Street: rest, Original: line})
		}
	}

	return cmds
}

// cleanLines lower-cases each line, strips list markers and collapses whitespace.
// Lines that end up empty are dropped.
func cleanLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))

	for _, line := range raw {
		line = listMarker.ReplaceAllString(line, "")
		line = strings.TrimSpace(whitespace.ReplaceAllString(strings.ToLower(line), " "))
		if line == "" {
			continue
		}
		out = append(out, line)
	}

	return out
}

// splitFirstComma splits on the first comma only; later commas stay in the remainder.
func splitFirstComma(s string) (string, string) {
	head, tail, found := strings.Cut(s, ",")
	if !found {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(head), strings.TrimSpace(tail)
}
