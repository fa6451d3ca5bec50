package ui

import (
	"strconv"

	"github.com/dliang/linefollow/trace"
)

// panelState is what the bench panel shows. It is rebuilt from the trace lines the engine prints.
type panelState struct {
	route     string
	runState  string
	primary   int
	secondary int
	action    string
	drive     string
}

func newPanelState() panelState {
	return panelState{runState: "Idle", action: "-", drive: "Stop"}
}

func (s *panelState) apply(e trace.Event) {
	switch e.Kind {
	case trace.KindRoute:
		s.route = e.Route
	case trace.KindState:
		s.runState = e.To
		if e.To == "Idle" {
			s.primary, s.secondary = 0, 0
			s.action = "-"
		}
	case trace.KindLine:
		s.primary, s.secondary = e.Primary, e.Secondary
	case trace.KindAction:
		s.action = e.Action + " (" + strconv.Itoa(e.Steps) + " steps)"
	case trace.KindOutcome:
		s.action += " " + e.Outcome
	case trace.KindDrive:
		s.drive = e.Direction
	}
}

func (s panelState) counters() string {
	return "primary " + strconv.Itoa(s.primary) + " / secondary " + strconv.Itoa(s.secondary)
}
