package trace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		given    Event
		expected string
	}{
		{
			"Route",
			Event{At: 0, Kind: KindRoute, Route: "summative"},
			"[0s] route summative",
		},
		{
			"State",
			Event{At: 1500 * time.Millisecond, Kind: KindState, From: "Armed", To: "Running"},
			"[1.5s] state Armed->Running",
		},
		{
			"Line",
			Event{At: 2 * time.Second, Kind: KindLine, Line: "Crossing", Primary: 3, Secondary: 1},
			"[2s] line Crossing primary=3 secondary=1",
		},
		{
			"ActionWithSpaces",
			Event{At: 10 * time.Millisecond, Kind: KindAction, Action: "long left", Steps: 2},
			"[10ms] action long_left steps=2",
		},
		{
			"Outcome",
			Event{At: 3 * time.Second, Kind: KindOutcome, Outcome: "Aborted"},
			"[3s] outcome Aborted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.given))
		})
	}
}

func TestParse(t *testing.T) {
	e, err := Parse("[2.25s] line Mark primary=0 secondary=4\r")
	require.NoError(t, err)
	assert.Equal(t, Event{At: 2250 * time.Millisecond, Kind: KindLine, Line: "Mark", Secondary: 4}, e)

	e, err = Parse("[40ms] state Running->Finished")
	require.NoError(t, err)
	assert.Equal(t, "Running", e.From)
	assert.Equal(t, "Finished", e.To)

	e, err = Parse("[1m2s] action t1-left steps=2")
	require.NoError(t, err)
	assert.Equal(t, time.Minute+2*time.Second, e.At)
	assert.Equal(t, "t1-left", e.Action)
	assert.Equal(t, 2, e.Steps)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected error
	}{
		{"Empty", "", ErrMalformed},
		{"NoTimestamp", "state Idle->Armed extra", ErrMalformed},
		{"BadDuration", "[soon] state Idle->Armed", ErrMalformed},
		{"BadState", "[1s] state Idle", ErrMalformed},
		{"BadCount", "[1s] line Crossing primary=x", ErrMalformed},
		{"UnknownKind", "[1s] banner hello", ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.line)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
