package nav

import (
	"time"

	"github.com/dliang/linefollow"
)

// Follower is the bang-bang line-following correction used between crossings. It only knows which
// side of the line the robot is on, never how far.
type Follower struct {
	actuator *Actuator
	clock    Clock

	tick             time.Duration
	trimPeriod       int
	trimDirection    linefollow.Direction
	calibrationTicks int
}

func newFollower(actuator *Actuator, clock Clock, cfg FollowConfig) *Follower {
	return &Follower{
		actuator:         actuator,
		clock:            clock,
		tick:             cfg.ForwardTick,
		trimPeriod:       cfg.TrimPeriod,
		trimDirection:    cfg.TrimDirection,
		calibrationTicks: cfg.CalibrationTicks,
	}
}

// Follow drives one correction for pos. OffLine is handled by the EventCounter and is ignored here.
func (f *Follower) Follow(rc *RunContext, pos linefollow.LinePosition) {
	switch pos {
	case linefollow.PositionOnLine:
		rc.Counters.ForwardTicks++
		if f.trimPeriod > 0 && rc.Counters.ForwardTicks%f.trimPeriod == 0 {
			f.actuator.Drive(f.trimDirection)
		} else {
			f.actuator.Drive(linefollow.DirectionForward)
		}
		if f.tick > 0 {
			f.clock.Delay(f.tick)
		}

	case linefollow.PositionRightOfLine:
		if f.correcting(rc) {
			f.actuator.Drive(linefollow.DirectionCounterClockwise)
		}

	case linefollow.PositionLeftOfLine:
		if f.correcting(rc) {
			f.actuator.Drive(linefollow.DirectionClockwise)
		}
	}
}

// correcting is false inside the calibration window, where the robot drives straight through
// single-sensor readings
func (f *Follower) correcting(rc *RunContext) bool {
	return rc.Counters.ForwardTicks >= f.calibrationTicks
}
