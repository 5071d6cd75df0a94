package services

import (
	"nav-eval-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRoutes = []string{
	"begin: north, the embarcadero\nleft, king st\ndestination, right",
	"begin: east, university ave\nright, us-101 s\ncontinue, us-101 s\nleft, ca-87 s\ncontinue, w santa clara st\nright, w santa clara st\ndestination, left",
	"destination, right",
	"left, us-101 s",
	"",
}

func TestFilterContinueCommands(t *testing.T) {
	start := domain.Start{Direction: "north", Street: "a st"}
	left := domain.Step{Verb: "left", Street: "c st"}
	dest := domain.Destination{Direction: "right"}

	t.Run("drops interior filler", func(t *testing.T) {
		cmds := []domain.Command{
			start,
			domain.Step{Verb: "continue", Street: "b st"},
			left,
			domain.Step{Verb: "continue", Street: "d st"},
			dest,
		}
		assert.Equal(t, []domain.Command{start, left, dest}, FilterContinueCommands(cmds))
		assert.Len(t, cmds, 5, "input must not be modified")
	})

	t.Run("keeps highway continue", func(t *testing.T) {
		highway := domain.Step{Verb: "continue", Street: "us-101 s"}
		cmds := []domain.Command{start, highway, left, domain.Step{Verb: "continue", Street: "d st"}, dest}
		assert.Equal(t, []domain.Command{start, highway, left, dest}, FilterContinueCommands(cmds))
	})

	t.Run("keeps first and last", func(t *testing.T) {
		cmds := []domain.Command{
			domain.Step{Verb: "continue", Street: "a st"},
			domain.Step{Verb: "continue", Street: "b st"},
		}
		assert.Equal(t, cmds, FilterContinueCommands(cmds))
	})

	t.Run("fixed point", func(t *testing.T) {
		for _, text := range sampleRoutes {
			once := FilterContinueCommands(ParseRoute(text))
			assert.Equal(t, once, FilterContinueCommands(once))
		}
	})
}

func TestReflexivity(t *testing.T) {
	for _, text := range sampleRoutes {
		cmds := ParseRoute(text)
		assert.True(t, IsNavigationExactlyCorrect(cmds, cmds), text)
		assert.Zero(t, CountMinorNavigationMistakes(cmds, cmds), text)
		assert.Zero(t, CountMajorNavigationMistakes(cmds, cmds), text)
		assert.True(t, IsNavigationMostlyCorrect(cmds, cmds), text)
	}
}

func TestIsNavigationExactlyCorrect(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     bool
	}{
		{"highway turn word ignored", "left, us-101 s", "right, us-101 s", true},
		{"street containment", "begin: north, a st\nleft, king st\ndestination, right", "begin: north, a st\nleft, king st north\ndestination, right", true},
		{"filler continue ignored", "begin: north, a st\nleft, b st\ndestination, right", "begin: north, a st\ncontinue, a st\nleft, b st\ndestination, right", true},
		{"different length", "begin: north, a st\nleft, b st\ndestination, right", "begin: north, a st\ndestination, right", false},
		{"start direction", "begin: north, a st\ndestination, right", "begin: south, a st\ndestination, right", false},
		{"start street", "begin: north, a st\ndestination, right", "begin: north, b st\ndestination, right", false},
		{"turn word on city street", "left, main st", "right, main st", false},
		{"highway heading differs", "left, us-101 s", "right, us-101 n", false},
		{"destination side", "destination, left", "destination, right", false},
		{"type mismatch", "left, a st\ndestination, right", "left, a st\nright, b st", false},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNavigationExactlyCorrect(ParseRoute(tt.expected), ParseRoute(tt.actual)))
		})
	}
}

func TestCountMinorNavigationMistakes(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     int
	}{
		{"abbreviation swap", "left, main blvd", "left, main ave", 1},
		{"highway heading", "left, i-280 n", "left, i-280 s", 1},
		{"highway heading and turn word", "left, i-280 n", "right, i-280 s", 2},
		{"wrong highway", "right, ca-85 s", "right, ca-87 s", 1},
		{"street mismatch", "left, main st", "left, oak st", 1},
		{"street and turn mismatch", "left, main st", "right, oak st", 2},
		{"highway turn word relaxed", "left, us-101 s", "continue, us-101 s", 0},
		{"destination side", "destination, left", "destination, right", 1},
		{"start pairs are not scored", "begin: north, a st", "begin: south, b st", 0},
		{"type mismatch is not scored", "left, a st\ndestination, right", "left, a st\nright, b st", 0},
		{"length difference", "left, a st\nright, b st\ndestination, left", "left, a st\nright, b st\nleft, c st\nright, d st\ndestination, left", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountMinorNavigationMistakes(ParseRoute(tt.expected), ParseRoute(tt.actual)))
		})
	}
}

func TestCountMajorNavigationMistakes(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     int
	}{
		{"different highway number", "right, ca-85 s", "right, ca-87 s", 1},
		{"highway turn word relaxed", "left, us-101 s", "right, us-101 s", 0},
		{"turn word on city street", "left, main st", "right, main st", 1},
		{"turn and street", "left, main st", "right, oak st", 2},
		{"start direction", "begin: north, a st\ndestination, right", "begin: south, a st\ndestination, right", 1},
		{"start direction and street", "begin: north, a st\ndestination, right", "begin: south, b st\ndestination, right", 2},
		{"destination side is minor only", "destination, left", "destination, right", 0},
		{"type mismatch", "left, a st\ndestination, right", "left, a st\nright, b st", 1},
		{
			"step count drift of two",
			"begin: north, a st\ndestination, right",
			"begin: north, a st\nleft, b st\nright, c st\ndestination, right",
			1,
		},
		{
			"step count drift beyond two",
			"begin: north, a st\ndestination, right",
			"begin: north, a st\nleft, b st\nright, c st\nleft, d st\ndestination, right",
			2,
		},
		{"filler continue ignored", "begin: north, a st\ndestination, right", "begin: north, a st\ncontinue, a st\ndestination, right", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountMajorNavigationMistakes(ParseRoute(tt.expected), ParseRoute(tt.actual)))
		})
	}
}

func TestCountMajorNavigationMistakesMonotonic(t *testing.T) {
	expected := ParseRoute("begin: north, a st\nleft, b st\ndestination, right")
	actual := ParseRoute("begin: north, a st\nright, b st\ndestination, right")
	flipped := ParseRoute("begin: south, a st\nright, b st\ndestination, right")

	before := CountMajorNavigationMistakes(expected, actual)
	after := CountMajorNavigationMistakes(expected, flipped)
	assert.Equal(t, 1, before)
	assert.Greater(t, after, before)
}

func TestCalculateMinorMistakeThreshold(t *testing.T) {
	tests := []struct {
		name     string
		expected []domain.Command
		actual   []domain.Command
		want     int
	}{
		{"empty routes", nil, nil, 1},
		{"single destination", ParseRoute("destination, right"), ParseRoute("destination, left"), 1},
		{"three commands", ParseRoute(sampleRoutes[0]), ParseRoute(sampleRoutes[0]), 1},
		{"longer side wins", ParseRoute("destination, right"), ParseRoute("begin: north, a\nleft, b\nright, c\nleft, d\ndestination, right"), 2},
		// 7 lines filter down to 6 commands: bound 19, 10% rounds up to 2.
		{"filtered length", ParseRoute(sampleRoutes[1]), ParseRoute(sampleRoutes[1]), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateMinorMistakeThreshold(tt.expected, tt.actual))
		})
	}
}

func TestCalculateMinorMistakeThresholdScales(t *testing.T) {
	route := make([]domain.Command, 0, 12)
	for range 12 {
		route = append(route, domain.Step{Verb: "left", Street: "a st"})
	}
	// 12 commands: bound 37, 10% rounds up to 4.
	assert.Equal(t, 4, CalculateMinorMistakeThreshold(route, route))
}

func TestIsNavigationMostlyCorrect(t *testing.T) {
	t.Run("destination side is tolerated", func(t *testing.T) {
		expected := ParseRoute("destination, left")
		actual := ParseRoute("destination, right")
		assert.True(t, IsNavigationMostlyCorrect(expected, actual))
		assert.False(t, IsNavigationExactlyCorrect(expected, actual))
	})

	t.Run("major mistake is never tolerated", func(t *testing.T) {
		assert.False(t, IsNavigationMostlyCorrect(ParseRoute("right, ca-85 s"), ParseRoute("right, ca-87 s")))
	})

	t.Run("minor mistakes above threshold", func(t *testing.T) {
		expected := []domain.Command{domain.Destination{Direction: "left"}}
		actual := []domain.Command{domain.Destination{Direction: "right"}, domain.Destination{Direction: "right"}}

		require.Zero(t, CountMajorNavigationMistakes(expected, actual))
		require.Equal(t, 2, CountMinorNavigationMistakes(expected, actual))
		require.Equal(t, 1, CalculateMinorMistakeThreshold(expected, actual))
		assert.False(t, IsNavigationMostlyCorrect(expected, actual))
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("mostly correct record", func(t *testing.T) {
		got := Evaluate("destination, left", "destination, right")
		assert.Equal(t, domain.Evaluation{
			Exact:          false,
			MostlyCorrect:  true,
			MinorMistakes:  1,
			MajorMistakes:  0,
			MinorThreshold: 1,
		}, got)
		assert.Equal(t, domain.VerdictMostlyCorrect, got.Verdict())
	})

	t.Run("paraphrased route is exact", func(t *testing.T) {
		expected := "begin: south, powell st\nleft, market st\nright, 3rd st\nleft, king st\ndestination, right"
		actual := "1. Begin: South, Powell Street\n2. Continue, Powell Street\n3. Left, Market Street\n4. Right, 3rd Street\n5. Left, King Street\n6. Destination, right"

		got := Evaluate(expected, actual)
		assert.True(t, got.Exact)
		assert.True(t, got.MostlyCorrect)
		assert.Equal(t, domain.VerdictExact, got.Verdict())
	})

	t.Run("wrong highway is incorrect", func(t *testing.T) {
		got := Evaluate("right, ca-85 s", "right, ca-87 s")
		assert.Equal(t, 1, got.MajorMistakes)
		assert.Equal(t, 1, got.MinorMistakes)
		assert.Equal(t, domain.VerdictIncorrect, got.Verdict())
	})

	t.Run("agrees with the individual predicates", func(t *testing.T) {
		for _, e := range sampleRoutes {
			for _, a := range sampleRoutes {
				exp, act := ParseRoute(e), ParseRoute(a)
				got := EvaluateRoutes(exp, act)
				assert.Equal(t, IsNavigationExactlyCorrect(exp, act), got.Exact)
				assert.Equal(t, IsNavigationMostlyCorrect(exp, act), got.MostlyCorrect)
				assert.Equal(t, CountMajorNavigationMistakes(exp, act), got.MajorMistakes)
			}
		}
	})
}
