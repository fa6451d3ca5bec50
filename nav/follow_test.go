package nav

import (
	"testing"
	"time"

	"github.com/dliang/linefollow"
)

type fakeBoard struct {
	inputs map[linefollow.Channel]bool
	levels map[linefollow.Channel]bool
	now    time.Duration
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{inputs: map[linefollow.Channel]bool{}, levels: map[linefollow.Channel]bool{}}
}

func (b *fakeBoard) Read(ch linefollow.Channel) bool {
	b.now += time.Microsecond
	return b.inputs[ch]
}

func (b *fakeBoard) Write(ch linefollow.Channel, level bool) {
	b.levels[ch] = level
}

func (b *fakeBoard) Delay(d time.Duration) {
	b.now += d
}

func (b *fakeBoard) Now() time.Duration {
	return b.now
}

func TestFollowerTrim(t *testing.T) {
	board := newFakeBoard()
	actuator := NewActuator(board)

	var drives []linefollow.Direction
	actuator.onChange = func(d linefollow.Direction) {
		drives = append(drives, d)
	}

	f := newFollower(actuator, board, FollowConfig{
		ForwardTick:   time.Millisecond,
		TrimPeriod:    3,
		TrimDirection: linefollow.DirectionLeft,
	})

	rc := &RunContext{State: RunStateRunning}
	for i := 0; i < 6; i++ {
		f.Follow(rc, linefollow.PositionOnLine)
	}

	expected := []linefollow.Direction{
		linefollow.DirectionForward,
		linefollow.DirectionLeft,
		linefollow.DirectionForward,
		linefollow.DirectionLeft,
	}
	if len(drives) != len(expected) {
		t.Fatalf("expected=%v, got=%v", expected, drives)
	}
	for i := range expected {
		if drives[i] != expected[i] {
			t.Errorf("expected=%q, got=%q", expected[i], drives[i])
		}
	}

	if rc.Counters.ForwardTicks != 6 {
		t.Errorf("expected=%d, got=%d", 6, rc.Counters.ForwardTicks)
	}
	if board.now != 6*time.Millisecond {
		t.Errorf("expected=%s, got=%s", 6*time.Millisecond, board.now)
	}
}

func TestFollowerCorrections(t *testing.T) {
	tests := []struct {
		name     string
		ticks    int
		pos      linefollow.LinePosition
		expected linefollow.Direction
	}{
		{"RightOfLine", 10, linefollow.PositionRightOfLine, linefollow.DirectionCounterClockwise},
		{"LeftOfLine", 10, linefollow.PositionLeftOfLine, linefollow.DirectionClockwise},
		{"RightOfLineCalibrating", 9, linefollow.PositionRightOfLine, linefollow.DirectionStop},
		{"LeftOfLineCalibrating", 0, linefollow.PositionLeftOfLine, linefollow.DirectionStop},
		{"OffLineIgnored", 10, linefollow.PositionOffLine, linefollow.DirectionStop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newFakeBoard()
			actuator := NewActuator(board)
			f := newFollower(actuator, board, FollowConfig{CalibrationTicks: 10})

			rc := &RunContext{State: RunStateRunning, Counters: Counters{ForwardTicks: tt.ticks}}
			f.Follow(rc, tt.pos)

			if actuator.Last() != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, actuator.Last())
			}
			if rc.Counters.ForwardTicks != tt.ticks {
				t.Errorf("corrections must not count forward ticks: expected=%d, got=%d", tt.ticks, rc.Counters.ForwardTicks)
			}
		})
	}
}

func TestPollerHoldChecksButtonEachSlice(t *testing.T) {
	board := newFakeBoard()
	p := poller{sampler: NewSampler(board), clock: board, interval: time.Millisecond}

	if !p.hold(5 * time.Millisecond) {
		t.Fatal("expected hold to complete")
	}

	board.inputs[linefollow.ChannelButton] = true
	start := board.now
	if p.hold(time.Second) {
		t.Fatal("expected hold to abort")
	}
	if board.now-start > time.Millisecond {
		t.Errorf("abort took %s", board.now-start)
	}
}

func TestPollerUntil(t *testing.T) {
	board := newFakeBoard()
	p := poller{sampler: NewSampler(board), clock: board, interval: time.Millisecond}

	board.inputs[linefollow.ChannelLeftSensor] = true
	board.inputs[linefollow.ChannelRightSensor] = true
	if !p.until(Reaches(linefollow.PositionOnLine)) {
		t.Error("expected condition to be met immediately")
	}

	board.inputs[linefollow.ChannelButton] = true
	if p.until(Reaches(linefollow.PositionOffLine)) {
		t.Error("expected wait to abort on button")
	}
}

func TestDriveTable(t *testing.T) {
	seen := map[Levels]linefollow.Direction{}
	for d := linefollow.DirectionForward; d <= linefollow.DirectionReverseRight; d++ {
		levels := LevelsFor(d)
		if prev, ok := seen[levels]; ok {
			t.Errorf("%s and %s share levels %v", prev, d, levels)
		}
		seen[levels] = d
	}

	if LevelsFor(linefollow.Direction(42)) != (Levels{}) {
		t.Error("unknown direction must stop")
	}

	board := newFakeBoard()
	a := NewActuator(board)
	a.Drive(linefollow.DirectionClockwise)
	for i, ch := range linefollow.MotorChannels {
		if board.levels[ch] != driveTable[linefollow.DirectionClockwise][i] {
			t.Errorf("%s: expected=%t, got=%t", ch, driveTable[linefollow.DirectionClockwise][i], board.levels[ch])
		}
	}
}
