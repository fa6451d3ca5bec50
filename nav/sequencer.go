package nav

import (
	"errors"
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/dliang/linefollow"
)

// RunState is where the robot is in the press/release protocol of the start/stop button
type RunState int

const (
	// RunStateIdle is stopped, waiting for a press to arm
	RunStateIdle RunState = iota
	// RunStateArmed has seen the press and waits for the release that launches the run
	RunStateArmed
	// RunStateRunning follows the line and executes the route script
	RunStateRunning
	// RunStateFinished has stopped the motors and waits for the button to be up before resetting
	RunStateFinished
)

func (s RunState) String() string {
	switch s {
	case RunStateIdle:
		return "Idle"
	case RunStateArmed:
		return "Armed"
	case RunStateRunning:
		return "Running"
	case RunStateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Counters are the per-run event counters. They live for one run and are zeroed when it ends.
type Counters struct {
	// Primary counts crossings after the calibration window
	Primary int
	// Secondary counts calibration marks seen inside the calibration window
	Secondary int
	// ForwardTicks counts on-line forward ticks since launch
	ForwardTicks int
}

// RunContext is all mutable navigation state. It is owned by the Engine and handed by pointer to
// the Sequencer, EventCounter and Follower; nothing else holds it.
type RunContext struct {
	State    RunState
	Counters Counters

	// startCleared is set once the launch has driven off the start line
	startCleared bool
	// held is how long the button has been down while armed
	held time.Duration
}

// StartCleared is true once this run has driven off its start line
func (rc RunContext) StartCleared() bool {
	return rc.startCleared
}

// reset returns everything except State to its pristine value
func (rc *RunContext) reset() {
	rc.Counters = Counters{}
	rc.startCleared = false
	rc.held = 0
}

// Button events. The button is sampled every tick, so one of press or release is sent each Update.
const (
	eventPress     statekit.EventType = "PRESS"
	eventRelease   statekit.EventType = "RELEASE"
	eventTerminate statekit.EventType = "TERMINATE"
)

const (
	stateIdle     statekit.StateID = "idle"
	stateArmed    statekit.StateID = "armed"
	stateRunning  statekit.StateID = "running"
	stateFinished statekit.StateID = "finished"
)

var runStates = map[statekit.StateID]RunState{
	stateIdle:     RunStateIdle,
	stateArmed:    RunStateArmed,
	stateRunning:  RunStateRunning,
	stateFinished: RunStateFinished,
}

// Sequencer drives RunState from button edges. It owns the indicator output and the launch step
// that drives off the start line.
type Sequencer struct {
	board    Board
	actuator *Actuator
	poll     poller

	cancelHold   time.Duration
	pauseOnPress bool

	machine *statekit.Interpreter[*RunContext]

	onTransition func(from, to RunState)
}

func newSequencer(board Board, actuator *Actuator, poll poller, cfg Config) (*Sequencer, error) {
	s := &Sequencer{
		board:        board,
		actuator:     actuator,
		poll:         poll,
		cancelHold:   cfg.CancelHold,
		pauseOnPress: cfg.PauseOnPress,
	}

	machine, err := statekit.NewMachine[*RunContext]("sequencer").
		WithInitial(stateIdle).
		WithAction("arm", func(rc **RunContext, _ statekit.Event) {
			(*rc).reset()
		}).
		WithAction("hold", func(rc **RunContext, e statekit.Event) {
			elapsed, _ := e.Payload.(time.Duration)
			(*rc).held += elapsed
		}).
		WithAction("launch", func(rc **RunContext, _ statekit.Event) {
			(*rc).held = 0
			s.board.Write(linefollow.ChannelIndicator, true)
		}).
		WithAction("halt", func(_ **RunContext, _ statekit.Event) {
			s.actuator.Stop()
		}).
		WithAction("stop", func(rc **RunContext, _ statekit.Event) {
			s.actuator.Stop()
			(*rc).reset()
			s.board.Write(linefollow.ChannelIndicator, false)
		}).
		WithGuard("cancelled", func(rc *RunContext, _ statekit.Event) bool {
			return s.cancelHold > 0 && rc.held >= s.cancelHold
		}).
		WithGuard("pausing", func(_ *RunContext, _ statekit.Event) bool {
			return s.pauseOnPress
		}).
		State(stateIdle).
			On(eventPress).Target(stateArmed).Do("arm").
			Done().
		State(stateArmed).
			On(eventPress).Target(stateArmed).Do("hold").
			On(eventRelease).Target(stateIdle).Guard("cancelled").Do("stop").
			On(eventRelease).Target(stateRunning).Do("launch").
			Done().
		State(stateRunning).
			On(eventPress).Target(stateArmed).Guard("pausing").Do("halt").
			On(eventPress).Target(stateFinished).Do("halt").
			On(eventTerminate).Target(stateFinished).Do("halt").
			Done().
		State(stateFinished).
			On(eventRelease).Target(stateIdle).Do("stop").
			On(eventTerminate).Target(stateFinished).Do("halt").
			Done().
		Build()
	if err != nil {
		return nil, errors.New("error building run sequencer: " + err.Error())
	}

	s.machine = statekit.NewInterpreter(machine)
	s.machine.Start()
	return s, nil
}

// Update applies one button sample and reports whether the drive loop should run this tick.
// elapsed is the time since the previous Update and is only used to time a hold while armed.
func (s *Sequencer) Update(rc *RunContext, pressed bool, elapsed time.Duration) bool {
	from := rc.State
	if pressed {
		s.send(rc, eventPress, elapsed)
	} else {
		s.send(rc, eventRelease, elapsed)
	}

	if rc.State != RunStateRunning {
		return false
	}
	if from == RunStateArmed && !rc.startCleared {
		if !s.clearStartLine() {
			s.Abort(rc)
			return false
		}
		rc.startCleared = true
	}
	return true
}

// Abort handles a press seen inside a blocking wait the same way a press seen by Update is handled:
// the run finishes, or pauses with PauseOnPress
func (s *Sequencer) Abort(rc *RunContext) {
	s.send(rc, eventPress, 0)
}

// Finish ends a running run, as a Terminate step does. The reset to Idle happens on the next Update
// that sees the button up.
func (s *Sequencer) Finish(rc *RunContext) {
	s.send(rc, eventTerminate, 0)
}

// clearStartLine drives forward while both sensors are dark, to get off the start marking before
// counting starts
func (s *Sequencer) clearStartLine() bool {
	s.actuator.Drive(linefollow.DirectionForward)
	return s.poll.until(Leaves(linefollow.PositionOffLine))
}

func (s *Sequencer) send(rc *RunContext, event statekit.EventType, elapsed time.Duration) {
	s.machine.UpdateContext(func(c **RunContext) { *c = rc })
	s.machine.Send(statekit.Event{Type: event, Payload: elapsed})
	s.transition(rc, runStates[s.machine.State().Value])
}

func (s *Sequencer) transition(rc *RunContext, to RunState) {
	from := rc.State
	rc.State = to
	if s.onTransition != nil && from != to {
		s.onTransition(from, to)
	}
}
