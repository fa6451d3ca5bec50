package runlog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dliang/linefollow/nav"
	"github.com/dliang/linefollow/routes"
	"github.com/dliang/linefollow/sim"
	"github.com/dliang/linefollow/trace"
)

func collect(t *testing.T, log string) []*Run {
	t.Helper()

	var c Collector
	var runs []*Run
	for _, line := range strings.Split(strings.TrimSpace(log), "\n") {
		e, err := trace.Parse(line)
		require.NoError(t, err, line)
		if run, ok := c.Add(e); ok {
			runs = append(runs, run)
		}
	}
	return runs
}

func TestCollector(t *testing.T) {
	tests := []struct {
		name     string
		log      string
		expected []*Run
	}{
		{
			"Terminated",
			`
[0s] route summative
[1s] state Idle->Armed
[1.2s] state Armed->Running
[3s] line Crossing primary=1 secondary=0
[3s] action turn steps=2
[3.5s] outcome Completed
[9s] line Crossing primary=2 secondary=0
[9s] action finish steps=1
[9s] outcome Terminated
[9s] state Running->Finished
[9s] state Finished->Idle
`,
			[]*Run{{
				Route:     "summative",
				Started:   1200 * time.Millisecond,
				Ended:     9 * time.Second,
				Crossings: 2,
				Actions: []Action{
					{Name: "turn", Steps: 2, At: 3 * time.Second, Took: 500 * time.Millisecond, Outcome: "Completed"},
					{Name: "finish", Steps: 1, At: 9 * time.Second, Outcome: "Terminated"},
				},
				Outcome: OutcomeTerminated,
			}},
		},
		{
			"StoppedThenAborted",
			`
[0s] route position
[1s] state Idle->Armed
[1.1s] state Armed->Running
[1.5s] line Mark primary=0 secondary=1
[2s] state Running->Finished
[2.1s] state Finished->Idle
[5s] state Idle->Armed
[5.1s] state Armed->Running
[6s] line Aborted primary=0 secondary=0
[6s] state Running->Finished
[6.2s] state Finished->Idle
`,
			[]*Run{
				{Route: "position", Started: 1100 * time.Millisecond, Ended: 2 * time.Second, Marks: 1, Outcome: OutcomeStopped},
				{Route: "position", Started: 5100 * time.Millisecond, Ended: 6 * time.Second, Outcome: OutcomeAborted},
			},
		},
		{
			"PausedThenCancelled",
			`
[0s] route out-and-back
[1s] state Idle->Armed
[1.1s] state Armed->Running
[2s] line Crossing primary=1 secondary=0
[3s] state Running->Armed
[4s] state Armed->Running
[5s] state Running->Armed
[7s] state Armed->Idle
`,
			[]*Run{{Route: "out-and-back", Started: 1100 * time.Millisecond, Ended: 5 * time.Second, Crossings: 1, Outcome: OutcomeCancelled}},
		},
		{
			"CancelledBeforeLaunch",
			`
[1s] state Idle->Armed
[2s] state Armed->Idle
`,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collect(t, tt.log))
		})
	}
}

func TestCollectorFromEngine(t *testing.T) {
	profile, err := routes.Lookup("out-and-back")
	require.NoError(t, err)

	board := sim.New(sim.Config{
		Track: []sim.Segment{
			sim.OnLine(100 * time.Millisecond),
			sim.Marking(10 * time.Millisecond),
			sim.RightOfLine(5 * time.Millisecond),
			sim.OnLine(100 * time.Millisecond),
			sim.Marking(10 * time.Millisecond),
			sim.OnLine(time.Hour),
		},
		Presses: []sim.Press{sim.Tap(0)},
	})

	engine, err := nav.New(board, board, profile.Script, profile.Config)
	require.NoError(t, err)

	var c Collector
	var runs []*Run
	engine.SetLogger(nav.LoggerFunc(func(line string) {
		e, err := trace.Parse(line)
		require.NoError(t, err, line)
		if run, ok := c.Add(e); ok {
			runs = append(runs, run)
		}
	}))

	engine.Announce()
	board.RunUntil(time.Second, engine.Tick)

	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, "out-and-back", run.Route)
	assert.Equal(t, 2, run.Crossings)
	assert.Equal(t, OutcomeTerminated, run.Outcome)
	require.Len(t, run.Actions, 2)
	assert.Equal(t, "turnaround", run.Actions[0].Name)
	assert.Equal(t, "Completed", run.Actions[0].Outcome)
	assert.Positive(t, run.Duration())
}
