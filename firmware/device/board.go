//go:build tinygo

package device

import (
	"errors"
	"machine"
	"sync"

	"tinygo.org/x/drivers/l293x"

	"github.com/dliang/linefollow"
	"github.com/dliang/linefollow/nav"
)

// Board is the robot's I/O: two IR sensors, the start button, the indicator LED and one L293
// half-bridge pair per motor. The motor channels are decoded per side, so a side with only its
// forward channel high runs forward and a side with both channels low (or both high) is stopped.
type Board struct {
	cfg BoardConfig

	left  l293x.Device
	right l293x.Device

	levels map[linefollow.Channel]bool

	// mu guards the overrides, which the console goroutine sets to bench the robot with its wheels
	// off the ground
	mu              sync.Mutex
	override        bool
	overrideReading linefollow.SensorReading
	virtualButton   bool
}

var _ nav.Board = (*Board)(nil)

// New configures every pin in cfg and returns a Board with the motors stopped
func New(cfg BoardConfig) (*Board, error) {
	if cfg.LeftSensor == cfg.RightSensor {
		return nil, errors.New("left and right sensors must use different pins")
	}

	inputMode := machine.PinInput
	if cfg.ButtonActiveLow {
		inputMode = machine.PinInputPullup
	}
	cfg.Button.Configure(machine.PinConfig{Mode: inputMode})
	cfg.LeftSensor.Configure(machine.PinConfig{Mode: machine.PinInput})
	cfg.RightSensor.Configure(machine.PinConfig{Mode: machine.PinInput})
	cfg.Indicator.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cfg.Indicator.Low()

	b := &Board{
		cfg:    cfg,
		left:   l293x.New(cfg.LeftMotor.Forward, cfg.LeftMotor.Reverse, cfg.LeftMotor.Enable),
		right:  l293x.New(cfg.RightMotor.Forward, cfg.RightMotor.Reverse, cfg.RightMotor.Enable),
		levels: map[linefollow.Channel]bool{},
	}
	b.left.Configure()
	b.right.Configure()

	return b, nil
}

// Read implements nav.Board
func (b *Board) Read(ch linefollow.Channel) bool {
	switch ch {
	case linefollow.ChannelLeftSensor:
		if r, ok := b.overridden(); ok {
			return r.Left
		}
		return b.cfg.LeftSensor.Get() != b.cfg.SensorsActiveLow
	case linefollow.ChannelRightSensor:
		if r, ok := b.overridden(); ok {
			return r.Right
		}
		return b.cfg.RightSensor.Get() != b.cfg.SensorsActiveLow
	case linefollow.ChannelButton:
		b.mu.Lock()
		virtual := b.virtualButton
		b.mu.Unlock()
		return virtual || b.cfg.Button.Get() != b.cfg.ButtonActiveLow
	default:
		return b.levels[ch]
	}
}

// Write implements nav.Board
func (b *Board) Write(ch linefollow.Channel, level bool) {
	b.levels[ch] = level

	switch ch {
	case linefollow.ChannelIndicator:
		b.cfg.Indicator.Set(level)
	case linefollow.ChannelLeftForward, linefollow.ChannelLeftReverse:
		apply(&b.left, b.levels[linefollow.ChannelLeftForward], b.levels[linefollow.ChannelLeftReverse])
	case linefollow.ChannelRightForward, linefollow.ChannelRightReverse:
		apply(&b.right, b.levels[linefollow.ChannelRightForward], b.levels[linefollow.ChannelRightReverse])
	}
}

func apply(m *l293x.Device, forward, reverse bool) {
	switch {
	case forward && !reverse:
		m.Forward()
	case reverse && !forward:
		m.Backward()
	default:
		m.Stop()
	}
}

func (b *Board) overridden() (linefollow.SensorReading, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overrideReading, b.override
}

// SetButton holds the button down on top of the physical one
func (b *Board) SetButton(pressed bool) {
	b.mu.Lock()
	b.virtualButton = pressed
	b.mu.Unlock()
}

// SetSensors replaces the IR sensors with a fixed reading
func (b *Board) SetSensors(r linefollow.SensorReading) {
	b.mu.Lock()
	b.override = true
	b.overrideReading = r
	b.mu.Unlock()
}

// ClearSensors goes back to reading the IR sensors
func (b *Board) ClearSensors() {
	b.mu.Lock()
	b.override = false
	b.mu.Unlock()
}
