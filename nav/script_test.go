package nav_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dliang/linefollow"
	"github.com/dliang/linefollow/nav"
)

func TestDispatch_ExactEntry(t *testing.T) {
	script, err := nav.NewRouteScript("test",
		nav.Entry{Primary: []int{1}, Action: nav.Action{Name: "left", Steps: []nav.Step{
			nav.DriveTimed(linefollow.DirectionLeft, 800*time.Millisecond),
		}}},
	)
	require.NoError(t, err)

	action := script.Dispatch(1, 0)
	assert.Equal(t, []nav.Step{nav.DriveTimed(linefollow.DirectionLeft, 800*time.Millisecond)}, action.Steps)
	assert.False(t, action.Terminates())
}

func TestDispatch_Unmatched(t *testing.T) {
	script := nav.MustRouteScript("test",
		nav.Entry{Primary: []int{1, 3}, Secondary: []int{2}, Action: nav.Action{Steps: []nav.Step{
			nav.DriveTimed(linefollow.DirectionRight, time.Millisecond),
		}}},
		nav.Entry{Primary: []int{5}, Action: nav.Action{Steps: []nav.Step{nav.Terminate()}}},
	)

	tests := []struct {
		name      string
		primary   int
		secondary int
	}{
		{"Zero", 0, 0},
		{"SecondaryMismatch", 1, 1},
		{"BetweenEntries", 4, 2},
		{"PastTheEnd", 6, 0},
		{"FarPastTheEnd", 1000, 1000},
		{"Negative", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := script.Dispatch(tt.primary, tt.secondary)
			assert.True(t, action.IsFollow())
			assert.False(t, action.Terminates())
		})
	}

	assert.False(t, script.Dispatch(3, 2).IsFollow())
	assert.True(t, script.Dispatch(5, 99).Terminates())
	assert.Equal(t, 5, script.MaxPrimary())
}

func TestDispatch_FirstMatchWins(t *testing.T) {
	script := nav.MustRouteScript("test",
		nav.Entry{Primary: []int{4}, Secondary: []int{1}, Action: nav.Action{Name: "specific", Steps: []nav.Step{
			nav.DriveTimed(linefollow.DirectionRight, time.Millisecond),
		}}},
		nav.Entry{Primary: []int{4}, Action: nav.Action{Name: "any", Steps: []nav.Step{
			nav.DriveTimed(linefollow.DirectionLeft, time.Millisecond),
		}}},
	)

	assert.Equal(t, "specific", script.Dispatch(4, 1).Name)
	assert.Equal(t, "any", script.Dispatch(4, 2).Name)
	assert.Equal(t, "any", script.Dispatch(4, 0).Name)
}

func TestDispatch_ScriptIsImmutable(t *testing.T) {
	steps := []nav.Step{nav.DriveTimed(linefollow.DirectionLeft, 800*time.Millisecond)}
	script := nav.MustRouteScript("test", nav.Entry{Primary: []int{1}, Action: nav.Action{Steps: steps}})

	// changing the caller's slice after construction does not reach the script
	steps[0].Duration = time.Second

	got := script.Dispatch(1, 0)
	got.Steps[0].Direction = linefollow.DirectionRight

	again := script.Dispatch(1, 0)
	assert.Equal(t, linefollow.DirectionLeft, again.Steps[0].Direction)
	assert.Equal(t, 800*time.Millisecond, again.Steps[0].Duration)
}

func TestNewRouteScript_Invalid(t *testing.T) {
	left := nav.DriveTimed(linefollow.DirectionLeft, time.Millisecond)

	tests := []struct {
		name    string
		entries []nav.Entry
	}{
		{
			"NoPrimary",
			[]nav.Entry{{Action: nav.Action{Steps: []nav.Step{left}}}},
		},
		{
			"NoSteps",
			[]nav.Entry{{Primary: []int{1}}},
		},
		{
			"ZeroDuration",
			[]nav.Entry{{Primary: []int{1}, Action: nav.Action{Steps: []nav.Step{
				nav.DriveTimed(linefollow.DirectionLeft, 0),
			}}}},
		},
		{
			"BadDirection",
			[]nav.Entry{{Primary: []int{1}, Action: nav.Action{Steps: []nav.Step{
				nav.DriveTimed(linefollow.Direction(99), time.Millisecond),
			}}}},
		},
		{
			"BadCondition",
			[]nav.Entry{{Primary: []int{1}, Action: nav.Action{Steps: []nav.Step{
				nav.DriveUntil(linefollow.DirectionForward, nav.Reaches(linefollow.LinePosition(9))),
			}}}},
		},
		{
			"TerminateNotLast",
			[]nav.Entry{{Primary: []int{1}, Action: nav.Action{Steps: []nav.Step{nav.Terminate(), left}}}},
		},
		{
			"Duplicate",
			[]nav.Entry{
				{Primary: []int{1, 2}, Action: nav.Action{Steps: []nav.Step{left}}},
				{Primary: []int{2}, Action: nav.Action{Steps: []nav.Step{left}}},
			},
		},
		{
			"ShadowedByWildcard",
			[]nav.Entry{
				{Primary: []int{3}, Action: nav.Action{Steps: []nav.Step{left}}},
				{Primary: []int{3}, Secondary: []int{1}, Action: nav.Action{Steps: []nav.Step{left}}},
			},
		},
		{
			"SameSecondary",
			[]nav.Entry{
				{Primary: []int{3}, Secondary: []int{1, 2}, Action: nav.Action{Steps: []nav.Step{left}}},
				{Primary: []int{3}, Secondary: []int{2, 4}, Action: nav.Action{Steps: []nav.Step{left}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nav.NewRouteScript("bad", tt.entries...)
			assert.Error(t, err)
		})
	}
}

func TestActionMirror(t *testing.T) {
	a := nav.Action{Name: "turn", Steps: []nav.Step{
		nav.DriveTimed(linefollow.DirectionClockwise, time.Millisecond),
		nav.DriveTimed(linefollow.DirectionRight, 500*time.Millisecond),
		nav.DriveUntil(linefollow.DirectionForward, nav.Reaches(linefollow.PositionOnLine)),
	}}

	expected := []nav.Step{
		nav.DriveTimed(linefollow.DirectionCounterClockwise, time.Millisecond),
		nav.DriveTimed(linefollow.DirectionLeft, 500*time.Millisecond),
		nav.DriveUntil(linefollow.DirectionForward, nav.Reaches(linefollow.PositionOnLine)),
	}
	assert.Equal(t, expected, a.Mirror().Steps)
	assert.Equal(t, linefollow.DirectionClockwise, a.Steps[0].Direction, "mirror must not change the original")
	assert.Equal(t, 501*time.Millisecond, a.Duration())
}

func TestConditionMet(t *testing.T) {
	onLine := linefollow.SensorReading{Left: true, Right: true}
	dark := linefollow.SensorReading{}
	rightOnly := linefollow.SensorReading{Right: true}

	tests := []struct {
		name     string
		cond     nav.Condition
		reading  linefollow.SensorReading
		expected bool
	}{
		{"ReachesOnLine", nav.Reaches(linefollow.PositionOnLine), onLine, true},
		{"ReachesOnLineFromDark", nav.Reaches(linefollow.PositionOnLine), dark, false},
		{"LeavesOffLineStillDark", nav.Leaves(linefollow.PositionOffLine), dark, false},
		{"LeavesOffLineOneSensor", nav.Leaves(linefollow.PositionOffLine), rightOnly, true},
		{"LeavesOnLineOneSensor", nav.Leaves(linefollow.PositionOnLine), rightOnly, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cond.Met(tt.reading))
		})
	}

	assert.Equal(t, "leaves OffLine", nav.Leaves(linefollow.PositionOffLine).String())
	assert.Equal(t, "DriveTimed(Left, 800ms)", nav.DriveTimed(linefollow.DirectionLeft, 800*time.Millisecond).String())
}
