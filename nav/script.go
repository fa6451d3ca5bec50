package nav

import (
	"errors"
	"strconv"
	"time"

	"github.com/dliang/linefollow"
)

// Condition is a predicate over a sensor reading, kept as data so route scripts stay comparable
// and printable
type Condition struct {
	Position linefollow.LinePosition
	// Leave inverts the test: met once the reading is anywhere but Position
	Leave bool
}

// Reaches is met when the reading is at p
func Reaches(p linefollow.LinePosition) Condition {
	return Condition{Position: p}
}

// Leaves is met when the reading is anywhere but p
func Leaves(p linefollow.LinePosition) Condition {
	return Condition{Position: p, Leave: true}
}

// Met tests the condition against r
func (c Condition) Met(r linefollow.SensorReading) bool {
	return (r.Position() == c.Position) != c.Leave
}

func (c Condition) String() string {
	if c.Leave {
		return "leaves " + c.Position.String()
	}
	return "reaches " + c.Position.String()
}

// StepKind is what a Step does
type StepKind int

const (
	// StepDriveTimed drives in a direction for a fixed duration
	StepDriveTimed StepKind = iota
	// StepDriveUntil drives in a direction until a sensor condition is met
	StepDriveUntil
	// StepTerminate ends the run
	StepTerminate
)

func (k StepKind) String() string {
	switch k {
	case StepDriveTimed:
		return "DriveTimed"
	case StepDriveUntil:
		return "DriveUntil"
	case StepTerminate:
		return "Terminate"
	default:
		return "Unknown"
	}
}

// Step is one element of a scripted action
type Step struct {
	Kind      StepKind
	Direction linefollow.Direction
	Duration  time.Duration
	Until     Condition
}

// DriveTimed drives d for duration
func DriveTimed(d linefollow.Direction, duration time.Duration) Step {
	return Step{Kind: StepDriveTimed, Direction: d, Duration: duration}
}

// DriveUntil drives d until cond is met. The button is always polled while waiting.
func DriveUntil(d linefollow.Direction, cond Condition) Step {
	return Step{Kind: StepDriveUntil, Direction: d, Until: cond}
}

// Terminate ends the run
func Terminate() Step {
	return Step{Kind: StepTerminate, Direction: linefollow.DirectionStop}
}

func (s Step) String() string {
	switch s.Kind {
	case StepDriveTimed:
		return "DriveTimed(" + s.Direction.String() + ", " + s.Duration.String() + ")"
	case StepDriveUntil:
		return "DriveUntil(" + s.Direction.String() + ", " + s.Until.String() + ")"
	case StepTerminate:
		return "Terminate"
	default:
		return "Unknown"
	}
}

func (s Step) validate() error {
	switch s.Kind {
	case StepDriveTimed:
		if !s.Direction.Valid() {
			return errors.New("invalid direction")
		}
		if s.Duration <= 0 {
			return errors.New("timed step needs a positive duration")
		}
	case StepDriveUntil:
		if !s.Direction.Valid() {
			return errors.New("invalid direction")
		}
		if !s.Until.Position.Valid() {
			return errors.New("invalid condition position")
		}
	case StepTerminate:
	default:
		return errors.New("unknown step kind")
	}
	return nil
}

// Action is the scripted maneuver for one crossing. The zero Action has no steps and means "keep
// following the line".
type Action struct {
	Name  string
	Steps []Step
}

// Follow is the Action for crossings the script does not mention
var Follow = Action{}

// IsFollow is true when the action has nothing scripted
func (a Action) IsFollow() bool {
	return len(a.Steps) == 0
}

// Terminates is true when the action ends the run
func (a Action) Terminates() bool {
	for _, s := range a.Steps {
		if s.Kind == StepTerminate {
			return true
		}
	}
	return false
}

// Mirror returns a copy of the action with every direction swapped left for right
func (a Action) Mirror() Action {
	mirrored := Action{Name: a.Name, Steps: make([]Step, len(a.Steps))}
	for i, s := range a.Steps {
		s.Direction = s.Direction.Mirror()
		mirrored.Steps[i] = s
	}
	return mirrored
}

// Duration is the total of the timed steps
func (a Action) Duration() time.Duration {
	var total time.Duration
	for _, s := range a.Steps {
		if s.Kind == StepDriveTimed {
			total += s.Duration
		}
	}
	return total
}

func (a Action) clone() Action {
	if a.IsFollow() {
		return Follow
	}
	steps := make([]Step, len(a.Steps))
	copy(steps, a.Steps)
	return Action{Name: a.Name, Steps: steps}
}

// Entry maps a set of primary counts, optionally narrowed by a set of secondary counts, to an
// Action. Grouping counts under one Entry is how a script encodes repeated track shapes.
type Entry struct {
	Primary []int
	// Secondary restricts the entry to these secondary counts. Nil matches any.
	Secondary []int
	Action    Action
}

func (e Entry) matches(primary, secondary int) bool {
	if !contains(e.Primary, primary) {
		return false
	}
	return e.Secondary == nil || contains(e.Secondary, secondary)
}

// RouteScript is the immutable table of scripted maneuvers for one track
type RouteScript struct {
	name    string
	entries []Entry
}

// NewRouteScript validates entries and builds a RouteScript. Entries are matched in order.
func NewRouteScript(name string, entries ...Entry) (RouteScript, error) {
	script := RouteScript{name: name, entries: make([]Entry, 0, len(entries))}

	for i, e := range entries {
		where := "entry " + strconv.Itoa(i) + ": "

		if len(e.Primary) == 0 {
			return RouteScript{}, errors.New(where + "no primary counts")
		}
		if e.Action.IsFollow() {
			return RouteScript{}, errors.New(where + "no steps")
		}
		for j, s := range e.Action.Steps {
			err := s.validate()
			if err != nil {
				return RouteScript{}, errors.New(where + "step " + strconv.Itoa(j) + ": " + err.Error())
			}
			if s.Kind == StepTerminate && j != len(e.Action.Steps)-1 {
				return RouteScript{}, errors.New(where + "terminate must be the last step")
			}
		}

		for _, prev := range script.entries {
			if overlaps(prev, e) {
				return RouteScript{}, errors.New(where + "shadowed by an earlier entry")
			}
		}

		script.entries = append(script.entries, Entry{
			Primary:   cloneInts(e.Primary),
			Secondary: cloneInts(e.Secondary),
			Action:    e.Action.clone(),
		})
	}

	return script, nil
}

// MustRouteScript is NewRouteScript for scripts defined at init time
func MustRouteScript(name string, entries ...Entry) RouteScript {
	script, err := NewRouteScript(name, entries...)
	if err != nil {
		panic("route " + name + ": " + err.Error())
	}
	return script
}

// Name of the track this script drives
func (rs RouteScript) Name() string {
	return rs.name
}

// Len is the number of entries
func (rs RouteScript) Len() int {
	return len(rs.entries)
}

// Dispatch returns the Action for the counter values. Values the script does not name, including
// anything past its last entry, return Follow.
func (rs RouteScript) Dispatch(primary, secondary int) Action {
	for _, e := range rs.entries {
		if e.matches(primary, secondary) {
			return e.Action.clone()
		}
	}
	return Follow
}

// MaxPrimary is the largest primary count with a scripted action
func (rs RouteScript) MaxPrimary() int {
	highest := 0
	for _, e := range rs.entries {
		for _, p := range e.Primary {
			highest = max(highest, p)
		}
	}
	return highest
}

// overlaps is true when prev already matches a key that later names, which would leave part of
// later unreachable
func overlaps(prev, later Entry) bool {
	for _, p := range later.Primary {
		if !contains(prev.Primary, p) {
			continue
		}
		if prev.Secondary == nil {
			return true
		}
		if later.Secondary == nil {
			continue
		}
		for _, s := range later.Secondary {
			if contains(prev.Secondary, s) {
				return true
			}
		}
	}
	return false
}

func contains(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func cloneInts(values []int) []int {
	if values == nil {
		return nil
	}
	out := make([]int, len(values))
	copy(out, values)
	return out
}
