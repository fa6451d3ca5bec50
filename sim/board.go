// Package sim is a stand-in robot for benches and tests. Its Board plays back a timeline of
// sensor readings and button presses against a virtual clock and records every output write.
package sim

import (
	"sync"
	"time"

	"github.com/dliang/linefollow"
	"github.com/dliang/linefollow/nav"
)

const defaultReadCost = 10 * time.Microsecond

// Segment holds one sensor reading for a stretch of time
type Segment struct {
	For     time.Duration
	Reading linefollow.SensorReading
}

// OnLine is a segment with both sensors on the line
func OnLine(d time.Duration) Segment {
	return Segment{For: d, Reading: linefollow.SensorReading{Left: true, Right: true}}
}

// Marking is a segment with both sensors dark, as when crossing a transverse line
func Marking(d time.Duration) Segment {
	return Segment{For: d}
}

// RightOfLine is a segment where only the right sensor sees the line
func RightOfLine(d time.Duration) Segment {
	return Segment{For: d, Reading: linefollow.SensorReading{Right: true}}
}

// LeftOfLine is a segment where only the left sensor sees the line
func LeftOfLine(d time.Duration) Segment {
	return Segment{For: d, Reading: linefollow.SensorReading{Left: true}}
}

// Press holds the button down from At for For
type Press struct {
	At  time.Duration
	For time.Duration
}

// Tap is a 20ms press at at
func Tap(at time.Duration) Press {
	return Press{At: at, For: 20 * time.Millisecond}
}

// Write is one recorded output write
type Write struct {
	At      time.Duration
	Channel linefollow.Channel
	Level   bool
}

// Config has the scenario a Board plays back
type Config struct {
	// Track is played from time zero. The last reading holds after the track ends.
	Track   []Segment
	Presses []Press
	// ReadCost is added to virtual time on every read so that tight polling loops make progress.
	// Zero uses 10µs.
	ReadCost time.Duration
	// Realtime makes Delay sleep and Now follow the wall clock, for interactive benches
	Realtime bool
}

// Board implements nav.Board and nav.Clock. It is safe for concurrent use so a bench UI can change
// inputs while an engine runs.
type Board struct {
	mtx sync.Mutex

	cfg   Config
	now   time.Duration
	start time.Time

	manual        bool
	manualReading linefollow.SensorReading
	manualButton  bool

	levels map[linefollow.Channel]bool
	writes []Write
}

var (
	_ nav.Board = (*Board)(nil)
	_ nav.Clock = (*Board)(nil)
)

// New creates a Board at time zero with every output low
func New(cfg Config) *Board {
	if cfg.ReadCost == 0 {
		cfg.ReadCost = defaultReadCost
	}
	return &Board{
		cfg:    cfg,
		start:  time.Now(),
		levels: map[linefollow.Channel]bool{},
	}
}

// Read implements nav.Board
func (b *Board) Read(ch linefollow.Channel) bool {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if !b.cfg.Realtime {
		b.now += b.cfg.ReadCost
	}
	now := b.nowLocked()

	switch ch {
	case linefollow.ChannelLeftSensor:
		return b.readingLocked(now).Left
	case linefollow.ChannelRightSensor:
		return b.readingLocked(now).Right
	case linefollow.ChannelButton:
		return b.buttonLocked(now)
	default:
		return b.levels[ch]
	}
}

// Write implements nav.Board
func (b *Board) Write(ch linefollow.Channel, level bool) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.levels[ch] = level
	b.writes = append(b.writes, Write{At: b.nowLocked(), Channel: ch, Level: level})
}

// Delay implements nav.Clock
func (b *Board) Delay(d time.Duration) {
	if b.cfg.Realtime {
		time.Sleep(d)
		return
	}

	b.mtx.Lock()
	b.now += d
	b.mtx.Unlock()
}

// Now implements nav.Clock
func (b *Board) Now() time.Duration {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.nowLocked()
}

func (b *Board) nowLocked() time.Duration {
	if b.cfg.Realtime {
		return time.Since(b.start)
	}
	return b.now
}

func (b *Board) readingLocked(now time.Duration) linefollow.SensorReading {
	if b.manual || len(b.cfg.Track) == 0 {
		return b.manualReading
	}

	var end time.Duration
	for _, seg := range b.cfg.Track {
		end += seg.For
		if now < end {
			return seg.Reading
		}
	}
	return b.cfg.Track[len(b.cfg.Track)-1].Reading
}

func (b *Board) buttonLocked(now time.Duration) bool {
	if b.manualButton {
		return true
	}
	for _, p := range b.cfg.Presses {
		if now >= p.At && now < p.At+p.For {
			return true
		}
	}
	return false
}

// SetSensors overrides the track with a fixed reading
func (b *Board) SetSensors(r linefollow.SensorReading) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.manual = true
	b.manualReading = r
}

// Sensors is the reading the board would return now
func (b *Board) Sensors() linefollow.SensorReading {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.readingLocked(b.nowLocked())
}

// SetButton holds or releases the button, on top of any scheduled presses
func (b *Board) SetButton(pressed bool) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.manualButton = pressed
}

// Level is the last level written to ch
func (b *Board) Level(ch linefollow.Channel) bool {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.levels[ch]
}

// MotorLevels are the current motor channel levels in truth-table order
func (b *Board) MotorLevels() nav.Levels {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	var levels nav.Levels
	for i, ch := range linefollow.MotorChannels {
		levels[i] = b.levels[ch]
	}
	return levels
}

// Direction decodes the motor channels back to a direction. ok is false for a pattern that is not
// in the truth table.
func (b *Board) Direction() (linefollow.Direction, bool) {
	levels := b.MotorLevels()
	for d := linefollow.DirectionForward; d <= linefollow.DirectionReverseRight; d++ {
		if nav.LevelsFor(d) == levels {
			return d, true
		}
	}
	return linefollow.DirectionStop, false
}

// Writes returns a copy of every write so far
func (b *Board) Writes() []Write {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	out := make([]Write, len(b.writes))
	copy(out, b.writes)
	return out
}

// RunUntil ticks until virtual time reaches end. tick is usually an Engine's Tick method.
func (b *Board) RunUntil(end time.Duration, tick func()) {
	for b.Now() < end {
		tick()
	}
}
