package domain

// Kind identifies which variant a Command is.
type Kind int

const (
	KindStart Kind = iota
	KindStep
	KindDestination
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindStep:
		return "step"
	case KindDestination:
		return "destination"
	default:
		return "unknown"
	}
}

// Command is a single parsed line of a route.
// The set of implementations is closed: Start, Step and Destination.
type Command interface {
	Kind() Kind
	// Source returns the whitespace-normalized, lower-cased line the command was parsed from.
	Source() string
	isCommand()
}

// Start is the first step of a route, heading in a cardinal direction onto a street.
type Start struct {
	Direction string
	Street    string
	Original  string
}

// Step is an intermediate maneuver onto a street.
// Verb is usually one of "left", "right", "continue" or "u-turn" but is not validated.
type Step struct {
	Verb     string
	Street   string
	Original string
}

// Destination is the final line of a route. It carries the side of the road
// ("left", "right" or "straight") and never a street.
type Destination struct {
	Direction string
	Original  string
}

func (Start) Kind() Kind       { return KindStart }
func (Step) Kind() Kind        { return KindStep }
func (Destination) Kind() Kind { return KindDestination }

func (c Start) Source() string       { return c.Original }
func (c Step) Source() string        { return c.Original }
func (c Destination) Source() string { return c.Original }

func (Start) isCommand()       {}
func (Step) isCommand()        {}
func (Destination) isCommand() {}
