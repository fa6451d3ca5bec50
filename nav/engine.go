package nav

import (
	"context"
	"errors"
	"time"

	"github.com/dliang/linefollow"
	"github.com/dliang/linefollow/trace"
)

// Engine is the control loop. It owns every component and the single RunContext, and runs the
// route script it was built with.
type Engine struct {
	clock  Clock
	script RouteScript
	cfg    Config

	sampler   Sampler
	actuator  *Actuator
	sequencer *Sequencer
	counter   *EventCounter
	follower  *Follower
	executor  *Executor

	rc       RunContext
	lastTick time.Duration

	logger  Logger
	verbose bool
}

// New wires an Engine for script. The board must already have its pins configured.
func New(board Board, clock Clock, script RouteScript, cfg Config) (*Engine, error) {
	if board == nil || clock == nil {
		return nil, errors.New("board and clock are required")
	}
	err := cfg.Validate()
	if err != nil {
		return nil, errors.New("invalid config: " + err.Error())
	}

	poll := poller{sampler: NewSampler(board), clock: clock, interval: cfg.PollInterval}
	actuator := NewActuator(board)

	sequencer, err := newSequencer(board, actuator, poll, cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		clock:     clock,
		script:    script,
		cfg:       cfg,
		sampler:   poll.sampler,
		actuator:  actuator,
		sequencer: sequencer,
		counter:   newEventCounter(actuator, poll, cfg),
		follower:  newFollower(actuator, clock, cfg.Follow),
		executor:  newExecutor(actuator, poll),
		logger:    printLogger{},
	}
	e.sequencer.onTransition = func(from, to RunState) {
		e.emit(trace.Event{Kind: trace.KindState, From: from.String(), To: to.String()})
	}
	if cfg.Verbose {
		e.Verbose()
	}

	// outputs start low whatever state the pins powered up in
	actuator.Stop()
	board.Write(linefollow.ChannelIndicator, false)

	return e, nil
}

// SetLogger replaces the default println logger
func (e *Engine) SetLogger(l Logger) {
	e.logger = l
}

// Verbose turns on tracing of every drive direction change
func (e *Engine) Verbose() {
	e.verbose = true
	e.actuator.onChange = func(d linefollow.Direction) {
		e.emit(trace.Event{Kind: trace.KindDrive, Direction: d.String()})
	}
}

// Announce traces the loaded route. Run calls it; loops that drive Tick themselves call it once
// before the first tick.
func (e *Engine) Announce() {
	e.emit(trace.Event{Kind: trace.KindRoute, Route: e.script.Name()})
}

// Run loops Tick until ctx is done
func (e *Engine) Run(ctx context.Context) {
	e.Announce()
	for ctx.Err() == nil {
		e.Tick()
	}
	e.Stop()
}

// Stop turns the motors and the indicator off, for loops that drive Tick themselves and are
// shutting down
func (e *Engine) Stop() {
	e.actuator.Stop()
	e.sequencer.board.Write(linefollow.ChannelIndicator, false)
}

// Tick runs one iteration of the control loop: sample the button, advance the sequencer and, while
// running, handle one sensor sample. Ticks that do not drive wait one poll interval.
func (e *Engine) Tick() {
	now := e.clock.Now()
	elapsed := now - e.lastTick
	e.lastTick = now

	if !e.sequencer.Update(&e.rc, e.sampler.Button(), elapsed) {
		e.clock.Delay(e.cfg.PollInterval)
		return
	}

	e.step()
}

func (e *Engine) step() {
	reading := e.sampler.Sample()

	ev := e.counter.Observe(&e.rc, reading)
	switch ev {
	case LineEventNone:
		e.follower.Follow(&e.rc, reading.Position())
		return
	case LineEventAborted:
		e.traceLine(ev)
		e.sequencer.Abort(&e.rc)
		return
	}

	e.traceLine(ev)

	action := e.script.Dispatch(e.rc.Counters.Primary, e.rc.Counters.Secondary)
	if action.IsFollow() {
		return
	}

	e.emit(trace.Event{Kind: trace.KindAction, Action: action.Name, Steps: len(action.Steps)})
	outcome := e.executor.Run(action)
	e.emit(trace.Event{Kind: trace.KindOutcome, Outcome: outcome.String()})

	switch outcome {
	case OutcomeAborted:
		e.sequencer.Abort(&e.rc)
	case OutcomeTerminated:
		e.sequencer.Finish(&e.rc)
		e.sequencer.Update(&e.rc, e.sampler.Button(), 0)
	}
}

func (e *Engine) traceLine(ev LineEvent) {
	e.emit(trace.Event{
		Kind:      trace.KindLine,
		Line:      ev.String(),
		Primary:   e.rc.Counters.Primary,
		Secondary: e.rc.Counters.Secondary,
	})
}

// Context returns a copy of the current run state and counters
func (e *Engine) Context() RunContext {
	return e.rc
}

// Script is the route the engine runs
func (e *Engine) Script() RouteScript {
	return e.script
}

// Direction is the last direction sent to the motors
func (e *Engine) Direction() linefollow.Direction {
	return e.actuator.Last()
}
