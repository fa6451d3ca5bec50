package nav

import "github.com/dliang/linefollow"

// Outcome is how a scripted action ended
type Outcome int

const (
	// OutcomeCompleted ran every step
	OutcomeCompleted Outcome = iota
	// OutcomeAborted stopped early because the button was pressed
	OutcomeAborted
	// OutcomeTerminated reached a Terminate step
	OutcomeTerminated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "Completed"
	case OutcomeAborted:
		return "Aborted"
	case OutcomeTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Executor runs the steps of an Action against the actuator
type Executor struct {
	actuator *Actuator
	poll     poller
}

func newExecutor(actuator *Actuator, poll poller) *Executor {
	return &Executor{actuator: actuator, poll: poll}
}

// Run executes a's steps in order. A button press during any wait stops the motors within one poll
// interval and returns OutcomeAborted. The last commanded direction is left running on completion;
// following resumes from there.
func (x *Executor) Run(a Action) Outcome {
	for _, s := range a.Steps {
		switch s.Kind {
		case StepDriveTimed:
			x.actuator.Drive(s.Direction)
			if !x.poll.hold(s.Duration) {
				x.actuator.Stop()
				return OutcomeAborted
			}
		case StepDriveUntil:
			x.actuator.Drive(s.Direction)
			if !x.poll.until(s.Until) {
				x.actuator.Stop()
				return OutcomeAborted
			}
		case StepTerminate:
			x.actuator.Drive(linefollow.DirectionStop)
			return OutcomeTerminated
		}
	}
	return OutcomeCompleted
}
