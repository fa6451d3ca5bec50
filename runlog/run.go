// Package runlog keeps a record of each run the robot makes. A Collector rebuilds runs from the
// trace lines on the robot's console, and the records are stored behind a small REST API.
package runlog

import (
	"errors"
	"net/http"
	"time"

	"github.com/calvinmclean/babyapi"
)

// Run is one press-to-finish run. Times are on the robot's clock, measured from power-up.
type Run struct {
	babyapi.DefaultResource

	Route     string        `json:"route"`
	Started   time.Duration `json:"started"`
	Ended     time.Duration `json:"ended"`
	Crossings int           `json:"crossings"`
	Marks     int           `json:"marks"`
	Actions   []Action      `json:"actions"`
	Outcome   Outcome       `json:"outcome"`

	UploadedAt time.Time `json:"uploaded_at"`
}

// Action is one scripted action the run executed
type Action struct {
	Name    string        `json:"name"`
	Steps   int           `json:"steps"`
	At      time.Duration `json:"at"`
	Took    time.Duration `json:"took"`
	Outcome string        `json:"outcome"`
}

// Outcome is how a run ended
type Outcome string

const (
	// OutcomeStopped was ended by a button press while following the line
	OutcomeStopped Outcome = "Stopped"
	// OutcomeAborted was ended by a button press during a scripted action or a crossing
	OutcomeAborted Outcome = "Aborted"
	// OutcomeTerminated reached the end of its route script
	OutcomeTerminated Outcome = "Terminated"
	// OutcomeCancelled was paused and then cancelled with a long hold
	OutcomeCancelled Outcome = "Cancelled"
)

// Duration is how long the run drove
func (r *Run) Duration() time.Duration {
	return r.Ended - r.Started
}

// Bind requires new runs to name their route and stamps the upload time
func (r *Run) Bind(req *http.Request) error {
	err := r.DefaultResource.Bind(req)
	if err != nil {
		return err
	}

	if req.Method == http.MethodPost {
		if r.Route == "" {
			return errors.New("missing required route field")
		}
		r.UploadedAt = time.Now()
	}

	return nil
}

// NewAPI serves runs at /runs
func NewAPI() *babyapi.API[*Run] {
	return babyapi.NewAPI("Runs", "/runs", func() *Run { return &Run{} })
}
