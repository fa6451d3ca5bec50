// Package nav is the navigation core of the line follower: it samples the line sensors, sequences
// runs from the single start/stop button, counts transverse line crossings and executes the
// scripted maneuver a route assigns to each crossing. Everything runs on one goroutine; every
// blocking wait polls the button so a press can always stop the motors.
package nav

import (
	"time"

	"github.com/dliang/linefollow"
)

// Board is the digital I/O the core runs against. Reads reflect the electrical state at call time
// and writes take effect before returning.
type Board interface {
	Read(linefollow.Channel) bool
	Write(linefollow.Channel, bool)
}

// Clock provides the busy-wait used by timed steps and the run timestamp used for tracing
type Clock interface {
	// Delay blocks for at least d. Resolution must be 1ms or better.
	Delay(d time.Duration)
	// Now is the time since the clock was created
	Now() time.Duration
}

// SleepClock is a Clock backed by time.Sleep. It works on the host and under TinyGo.
type SleepClock struct {
	start time.Time
}

// NewSleepClock starts a SleepClock at zero
func NewSleepClock() *SleepClock {
	return &SleepClock{start: time.Now()}
}

func (c *SleepClock) Delay(d time.Duration) {
	time.Sleep(d)
}

func (c *SleepClock) Now() time.Duration {
	return time.Since(c.start)
}
