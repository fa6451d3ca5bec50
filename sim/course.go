package sim

import "time"

const (
	markingWidth   = 15 * time.Millisecond
	edgeWidth      = 5 * time.Millisecond
	markSpacing    = 100 * time.Millisecond
	lineupLength   = 200 * time.Millisecond
	calibrationGap = 1500 * time.Millisecond
	crossingGap    = 2500 * time.Millisecond
)

// Course builds a track with marks calibration marks near the start followed by crossings
// transverse lines. Every marking is exited on the right edge of the line for a moment, as a real
// robot drifting over it would, and the gaps are long enough for any scripted action to finish
// before the next line.
func Course(marks, crossings int) []Segment {
	track := []Segment{OnLine(lineupLength)}
	for range marks {
		track = append(track, Marking(markingWidth), RightOfLine(edgeWidth), OnLine(markSpacing))
	}
	track = append(track, OnLine(calibrationGap))
	for range crossings {
		track = append(track, Marking(markingWidth), RightOfLine(edgeWidth), OnLine(crossingGap))
	}
	return track
}

// Length is how long it takes to play track
func Length(track []Segment) time.Duration {
	var total time.Duration
	for _, seg := range track {
		total += seg.For
	}
	return total
}
