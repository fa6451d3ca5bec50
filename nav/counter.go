package nav

import (
	"time"

	"github.com/dliang/linefollow"
)

// LineEvent is what the event counter made of a sample. It is the resolved meaning of an OffLine
// reading, which on its own could be a lost line or a transverse marking.
type LineEvent int

const (
	// LineEventNone means the sample was not OffLine and nothing was counted
	LineEventNone LineEvent = iota
	// LineEventMark is a marking crossed inside the calibration window; Secondary was incremented
	LineEventMark
	// LineEventCrossing is a marking crossed after the calibration window; Primary was incremented
	LineEventCrossing
	// LineEventAborted means the button was pressed while driving across the marking. Nothing was
	// counted and the motors are stopped.
	LineEventAborted
)

func (e LineEvent) String() string {
	switch e {
	case LineEventNone:
		return "None"
	case LineEventMark:
		return "Mark"
	case LineEventCrossing:
		return "Crossing"
	case LineEventAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// Counted is true for events that advanced a counter
func (e LineEvent) Counted() bool {
	return e == LineEventMark || e == LineEventCrossing
}

// EventCounter turns OffLine samples into counted crossings. A marking has width, so the counter
// drives across all of it, and waits out SettleDelay, before it counts. One physical marking is
// one event however long the robot sits on it.
type EventCounter struct {
	actuator *Actuator
	poll     poller

	settle           time.Duration
	calibrationTicks int
}

func newEventCounter(actuator *Actuator, poll poller, cfg Config) *EventCounter {
	return &EventCounter{
		actuator:         actuator,
		poll:             poll,
		settle:           cfg.SettleDelay,
		calibrationTicks: cfg.Follow.CalibrationTicks,
	}
}

// Observe looks at one sample taken while running
func (c *EventCounter) Observe(rc *RunContext, r linefollow.SensorReading) LineEvent {
	if r.Position() != linefollow.PositionOffLine {
		return LineEventNone
	}

	c.actuator.Drive(linefollow.DirectionForward)
	if !c.poll.until(Leaves(linefollow.PositionOffLine)) {
		c.actuator.Stop()
		return LineEventAborted
	}
	if !c.poll.hold(c.settle) {
		c.actuator.Stop()
		return LineEventAborted
	}

	if rc.Counters.ForwardTicks < c.calibrationTicks {
		rc.Counters.Secondary++
		return LineEventMark
	}
	rc.Counters.Primary++
	return LineEventCrossing
}
