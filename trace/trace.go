// Package trace defines the line format the robot prints while it runs. The firmware writes these
// lines to its USB serial console and the host tools read them back, so formatting stays free of fmt
// to keep TinyGo builds small.
package trace

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Kind is the type of a trace line
type Kind int

const (
	KindUnknown Kind = iota
	// KindRoute announces which route profile is loaded
	KindRoute
	// KindState is a run state transition
	KindState
	// KindLine is a line event from the event counter
	KindLine
	// KindAction is the start of a scripted action
	KindAction
	// KindOutcome is how a scripted action ended
	KindOutcome
	// KindDrive is a change of drive direction, only printed in verbose mode
	KindDrive
)

func (k Kind) String() string {
	switch k {
	case KindRoute:
		return "route"
	case KindState:
		return "state"
	case KindLine:
		return "line"
	case KindAction:
		return "action"
	case KindOutcome:
		return "outcome"
	case KindDrive:
		return "drive"
	default:
		return "unknown"
	}
}

func parseKind(s string) Kind {
	for k := KindRoute; k <= KindDrive; k++ {
		if k.String() == s {
			return k
		}
	}
	return KindUnknown
}

var (
	ErrMalformed   = errors.New("malformed trace line")
	ErrUnknownKind = errors.New("unknown trace kind")
)

// Event is one parsed trace line. Only the fields that belong to Kind are set.
type Event struct {
	At   time.Duration
	Kind Kind

	// KindRoute
	Route string

	// KindState
	From string
	To   string

	// KindLine
	Line      string
	Primary   int
	Secondary int

	// KindAction
	Action string
	Steps  int

	// KindOutcome
	Outcome string

	// KindDrive
	Direction string
}

// Format renders e as a single line without a trailing newline
func Format(e Event) string {
	line := "[" + e.At.String() + "] " + e.Kind.String()
	switch e.Kind {
	case KindRoute:
		line += " " + word(e.Route)
	case KindState:
		line += " " + word(e.From) + "->" + word(e.To)
	case KindLine:
		line += " " + word(e.Line) + " primary=" + strconv.Itoa(e.Primary) + " secondary=" + strconv.Itoa(e.Secondary)
	case KindAction:
		line += " " + word(e.Action) + " steps=" + strconv.Itoa(e.Steps)
	case KindOutcome:
		line += " " + word(e.Outcome)
	case KindDrive:
		line += " " + word(e.Direction)
	}
	return line
}

func (e Event) String() string {
	return Format(e)
}

// Parse reads a line written by Format. Leading and trailing whitespace (including the "\r" a serial
// console adds) is ignored.
func Parse(line string) (Event, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Event{}, ErrMalformed
	}

	ts := fields[0]
	if !strings.HasPrefix(ts, "[") || !strings.HasSuffix(ts, "]") {
		return Event{}, ErrMalformed
	}
	at, err := time.ParseDuration(ts[1 : len(ts)-1])
	if err != nil {
		return Event{}, errors.Join(ErrMalformed, err)
	}

	e := Event{At: at, Kind: parseKind(fields[1])}
	args := fields[2:]

	switch e.Kind {
	case KindRoute:
		e.Route = args[0]
	case KindState:
		from, to, ok := strings.Cut(args[0], "->")
		if !ok {
			return Event{}, ErrMalformed
		}
		e.From, e.To = from, to
	case KindLine:
		e.Line = args[0]
		kv, err := keyValues(args[1:])
		if err != nil {
			return Event{}, err
		}
		e.Primary, e.Secondary = kv["primary"], kv["secondary"]
	case KindAction:
		e.Action = args[0]
		kv, err := keyValues(args[1:])
		if err != nil {
			return Event{}, err
		}
		e.Steps = kv["steps"]
	case KindOutcome:
		e.Outcome = args[0]
	case KindDrive:
		e.Direction = args[0]
	default:
		return Event{}, ErrUnknownKind
	}

	return e, nil
}

func keyValues(args []string) (map[string]int, error) {
	kv := map[string]int{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, ErrMalformed
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Join(ErrMalformed, err)
		}
		kv[k] = n
	}
	return kv, nil
}

// word keeps a value to a single whitespace-free token
func word(s string) string {
	if s == "" {
		return "-"
	}
	return strings.Join(strings.Fields(s), "_")
}
