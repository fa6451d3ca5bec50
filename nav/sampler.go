package nav

import "github.com/dliang/linefollow"

// Sampler reads the line sensors and the button. It does no debouncing.
type Sampler struct {
	board Board
}

func NewSampler(board Board) Sampler {
	return Sampler{board: board}
}

// Sample reads both line sensors
func (s Sampler) Sample() linefollow.SensorReading {
	return linefollow.SensorReading{
		Left:  s.board.Read(linefollow.ChannelLeftSensor),
		Right: s.board.Read(linefollow.ChannelRightSensor),
	}
}

// Button is true while the start/stop button is held
func (s Sampler) Button() bool {
	return s.board.Read(linefollow.ChannelButton)
}
