package nav

import (
	"errors"
	"time"

	"github.com/dliang/linefollow"
)

const (
	defaultPollInterval = time.Millisecond
	defaultForwardTick  = time.Millisecond

	// DefaultCancelHold is the hold that ends a paused run when PauseOnPress is set
	DefaultCancelHold = 2 * time.Second
)

// Config has the timing and policy values for one robot and track
type Config struct {
	// PollInterval bounds how long any blocking wait goes without checking the button
	PollInterval time.Duration
	// SettleDelay is waited after leaving a transverse line before the crossing counts, so bounce
	// on the trailing edge of the line is not seen as a second line
	SettleDelay time.Duration
	// CancelHold is how long the button must be held after arming for the release to cancel the
	// launch instead of starting the run. Zero disables cancelling.
	CancelHold time.Duration
	// PauseOnPress makes a press during a run re-arm instead of finishing the run. Counters are kept
	// and the next release resumes the run. It needs a CancelHold, which is then the only way to
	// end a run from the button.
	PauseOnPress bool

	Follow FollowConfig

	Verbose bool
}

// FollowConfig has values for the bang-bang line-following correction
type FollowConfig struct {
	// ForwardTick is how long each on-line forward tick drives before the next sample
	ForwardTick time.Duration
	// TrimPeriod substitutes TrimDirection for Forward on every TrimPeriod-th forward tick to make up
	// for one motor running faster than the other. Zero disables trimming.
	TrimPeriod    int
	TrimDirection linefollow.Direction
	// CalibrationTicks is the number of forward ticks after launch during which crossings count as
	// calibration marks and single-sensor corrections are suppressed
	CalibrationTicks int
}

// DefaultConfig returns a Config with a 1ms poll and no trim, settle or calibration
func DefaultConfig() Config {
	return Config{
		PollInterval: defaultPollInterval,
		Follow: FollowConfig{
			ForwardTick:   defaultForwardTick,
			TrimDirection: linefollow.DirectionForward,
		},
	}
}

// Validate checks that the Config can drive a run
func (c Config) Validate() error {
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.SettleDelay < 0 || c.CancelHold < 0 {
		return errors.New("delays must not be negative")
	}
	if c.PauseOnPress && c.CancelHold == 0 {
		return errors.New("pause on press needs a cancel hold to stop a run")
	}
	if c.Follow.ForwardTick < 0 {
		return errors.New("forward tick must not be negative")
	}
	if c.Follow.TrimPeriod < 0 || c.Follow.CalibrationTicks < 0 {
		return errors.New("tick counts must not be negative")
	}
	if c.Follow.TrimPeriod > 0 && !c.Follow.TrimDirection.Valid() {
		return errors.New("invalid trim direction")
	}
	return nil
}
