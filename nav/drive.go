package nav

import "github.com/dliang/linefollow"

// Levels are the H-bridge input levels in linefollow.MotorChannels order: left forward, left
// reverse, right forward, right reverse
type Levels [4]bool

var (
	// driveTable is the fixed truth table for every Direction. Left and Right pivot on a stopped
	// wheel; ReverseLeft and ReverseRight are the same pivots driven backwards.
	driveTable = [...]Levels{
		linefollow.DirectionForward:          {true, false, true, false},
		linefollow.DirectionLeft:             {false, false, true, false},
		linefollow.DirectionRight:            {true, false, false, false},
		linefollow.DirectionClockwise:        {true, false, false, true},
		linefollow.DirectionCounterClockwise: {false, true, true, false},
		linefollow.DirectionBackward:         {false, true, false, true},
		linefollow.DirectionStop:             {false, false, false, false},
		linefollow.DirectionReverseLeft:      {false, false, false, true},
		linefollow.DirectionReverseRight:     {false, true, false, false},
	}
)

// LevelsFor returns the truth table row for d. Unknown directions stop the motors.
func LevelsFor(d linefollow.Direction) Levels {
	if !d.Valid() {
		return driveTable[linefollow.DirectionStop]
	}
	return driveTable[d]
}

// Actuator is the only writer of the motor channels
type Actuator struct {
	board Board
	last  linefollow.Direction

	// onChange is called when the commanded direction differs from the last one
	onChange func(linefollow.Direction)
}

func NewActuator(board Board) *Actuator {
	return &Actuator{board: board, last: linefollow.DirectionStop}
}

// Drive sets all four motor channels for d
func (a *Actuator) Drive(d linefollow.Direction) {
	if !d.Valid() {
		d = linefollow.DirectionStop
	}

	levels := LevelsFor(d)
	for i, ch := range linefollow.MotorChannels {
		a.board.Write(ch, levels[i])
	}
	if d != a.last && a.onChange != nil {
		a.onChange(d)
	}
	a.last = d
}

// Stop is shorthand for Drive(DirectionStop)
func (a *Actuator) Stop() {
	a.Drive(linefollow.DirectionStop)
}

// Last is the most recently commanded direction
func (a *Actuator) Last() linefollow.Direction {
	return a.last
}
