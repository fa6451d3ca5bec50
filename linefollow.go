package linefollow

// Direction is a drive command for the two-motor differential drive
type Direction int

const (
	DirectionForward Direction = iota
	DirectionLeft
	DirectionRight
	DirectionClockwise
	DirectionCounterClockwise
	DirectionBackward
	DirectionStop
	DirectionReverseLeft
	DirectionReverseRight
)

var directionNames = [...]string{
	DirectionForward:          "Forward",
	DirectionLeft:             "Left",
	DirectionRight:            "Right",
	DirectionClockwise:        "Clockwise",
	DirectionCounterClockwise: "CounterClockwise",
	DirectionBackward:         "Backward",
	DirectionStop:             "Stop",
	DirectionReverseLeft:      "ReverseLeft",
	DirectionReverseRight:     "ReverseRight",
}

func (d Direction) String() string {
	if !d.Valid() {
		return "Unknown"
	}
	return directionNames[d]
}

// Valid is true for the nine known direction symbols
func (d Direction) Valid() bool {
	return d >= DirectionForward && d <= DirectionReverseRight
}

// Mirror returns the left/right mirror image of the direction. Forward, Backward and Stop
// are their own mirror.
func (d Direction) Mirror() Direction {
	switch d {
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	case DirectionClockwise:
		return DirectionCounterClockwise
	case DirectionCounterClockwise:
		return DirectionClockwise
	case DirectionReverseLeft:
		return DirectionReverseRight
	case DirectionReverseRight:
		return DirectionReverseLeft
	default:
		return d
	}
}

// ParseDirection is the inverse of Direction.String
func ParseDirection(s string) (Direction, bool) {
	for d, name := range directionNames {
		if name == s {
			return Direction(d), true
		}
	}
	return DirectionStop, false
}

// SensorReading is one sample of both line sensors. A sensor reads true while it sees the track line.
type SensorReading struct {
	Left  bool
	Right bool
}

// Position classifies the reading. OffLine covers both "lost the line" and "crossing a transverse
// marking"; telling those apart is left to the event counter.
func (r SensorReading) Position() LinePosition {
	switch {
	case r.Left && r.Right:
		return PositionOnLine
	case r.Right:
		return PositionRightOfLine
	case r.Left:
		return PositionLeftOfLine
	default:
		return PositionOffLine
	}
}

// LinePosition is where the robot is relative to the line it follows
type LinePosition int

const (
	PositionOnLine LinePosition = iota
	// PositionRightOfLine means only the right sensor still sees the line
	PositionRightOfLine
	// PositionLeftOfLine means only the left sensor still sees the line
	PositionLeftOfLine
	PositionOffLine
)

func (p LinePosition) String() string {
	switch p {
	case PositionOnLine:
		return "OnLine"
	case PositionRightOfLine:
		return "RightOfLine"
	case PositionLeftOfLine:
		return "LeftOfLine"
	case PositionOffLine:
		return "OffLine"
	default:
		return "Unknown"
	}
}

// Valid is true for the four known positions
func (p LinePosition) Valid() bool {
	return p >= PositionOnLine && p <= PositionOffLine
}

// ParseLinePosition is the inverse of LinePosition.String
func ParseLinePosition(s string) (LinePosition, bool) {
	for p := PositionOnLine; p <= PositionOffLine; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return PositionOffLine, false
}

// Channel names a digital input or output of the robot
type Channel int

const (
	ChannelLeftSensor Channel = iota
	ChannelRightSensor
	ChannelButton
	ChannelLeftForward
	ChannelLeftReverse
	ChannelRightForward
	ChannelRightReverse
	ChannelIndicator
)

// MotorChannels are the four H-bridge inputs in truth-table order
var MotorChannels = [4]Channel{
	ChannelLeftForward,
	ChannelLeftReverse,
	ChannelRightForward,
	ChannelRightReverse,
}

func (c Channel) String() string {
	switch c {
	case ChannelLeftSensor:
		return "LeftSensor"
	case ChannelRightSensor:
		return "RightSensor"
	case ChannelButton:
		return "Button"
	case ChannelLeftForward:
		return "LeftForward"
	case ChannelLeftReverse:
		return "LeftReverse"
	case ChannelRightForward:
		return "RightForward"
	case ChannelRightReverse:
		return "RightReverse"
	case ChannelIndicator:
		return "Indicator"
	default:
		return "Unknown"
	}
}
