package runlog

import (
	"github.com/dliang/linefollow/trace"
)

// Collector folds trace events into Runs. It is fed every event the robot prints, in order, and
// returns a Run each time one ends.
type Collector struct {
	route   string
	current *Run
}

// Add takes the next event. It returns the finished run when e is the transition back to Idle
// that closes one.
func (c *Collector) Add(e trace.Event) (*Run, bool) {
	switch e.Kind {
	case trace.KindRoute:
		c.route = e.Route

	case trace.KindState:
		return c.state(e)

	case trace.KindLine:
		if c.current == nil {
			return nil, false
		}
		switch e.Line {
		case "Crossing":
			c.current.Crossings = e.Primary
		case "Mark":
			c.current.Marks = e.Secondary
		case "Aborted":
			c.current.Outcome = OutcomeAborted
		}

	case trace.KindAction:
		if c.current == nil {
			return nil, false
		}
		c.current.Actions = append(c.current.Actions, Action{Name: e.Action, Steps: e.Steps, At: e.At})

	case trace.KindOutcome:
		if c.current == nil || len(c.current.Actions) == 0 {
			return nil, false
		}
		last := &c.current.Actions[len(c.current.Actions)-1]
		last.Outcome = e.Outcome
		last.Took = e.At - last.At

		switch e.Outcome {
		case "Terminated":
			c.current.Outcome = OutcomeTerminated
		case "Aborted":
			c.current.Outcome = OutcomeAborted
		}
	}

	return nil, false
}

func (c *Collector) state(e trace.Event) (*Run, bool) {
	switch e.To {
	case "Running":
		if c.current == nil {
			c.current = &Run{Route: c.route, Started: e.At}
		}

	case "Finished":
		if c.current != nil {
			c.current.Ended = e.At
			if c.current.Outcome == "" {
				c.current.Outcome = OutcomeStopped
			}
		}

	case "Armed":
		// a run that pauses keeps its record open until it resumes or is cancelled
		if c.current != nil && e.From == "Running" {
			c.current.Ended = e.At
		}

	case "Idle":
		run := c.current
		c.current = nil
		if run == nil {
			return nil, false
		}
		if e.From == "Armed" {
			run.Outcome = OutcomeCancelled
		}
		return run, true
	}

	return nil, false
}

// Current is the run in progress, or nil
func (c *Collector) Current() *Run {
	return c.current
}
