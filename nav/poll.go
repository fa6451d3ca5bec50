package nav

import "time"

// poller implements every blocking wait in the core. Waits are split into slices no longer than
// interval and the button is read before each slice; a held button ends the wait early.
type poller struct {
	sampler  Sampler
	clock    Clock
	interval time.Duration
}

// hold waits for d. It returns false if the button was pressed before d elapsed.
func (p poller) hold(d time.Duration) bool {
	for remaining := d; remaining > 0; {
		if p.sampler.Button() {
			return false
		}
		slice := min(p.interval, remaining)
		p.clock.Delay(slice)
		remaining -= slice
	}
	return true
}

// until waits for cond to be met by a sensor sample. It returns false if the button was pressed
// first.
func (p poller) until(cond Condition) bool {
	for {
		if cond.Met(p.sampler.Sample()) {
			return true
		}
		if p.sampler.Button() {
			return false
		}
		p.clock.Delay(p.interval)
	}
}
