// Package routes is the catalogue of tracks the robot knows. Every fact about a track's geometry
// lives in its script here; the nav engine is the same for all of them.
package routes

import (
	"errors"
	"sort"
	"time"

	"github.com/dliang/linefollow"
	"github.com/dliang/linefollow/nav"
)

var ErrUnknownRoute = errors.New("unknown route")

type unknownRouteError struct {
	name string
}

func (e unknownRouteError) Error() string {
	return ErrUnknownRoute.Error() + ": " + e.name
}

func (e unknownRouteError) Unwrap() error {
	return ErrUnknownRoute
}

// Profile is a route script together with the tuning it was timed with
type Profile struct {
	Name        string
	Description string
	Script      nav.RouteScript
	Config      nav.Config
}

const ms = time.Millisecond

// nudge is the 1ms pulse scripts send before the real maneuver so the motor driver registers the
// change of direction
func nudge(d linefollow.Direction) nav.Step {
	return nav.DriveTimed(d, ms)
}

func action(name string, steps ...nav.Step) nav.Action {
	return nav.Action{Name: name, Steps: steps}
}

func counts(values ...int) []int {
	return values
}

var (
	// OutAndBack follows the line to the far marking, turns around on the spot and stops when it
	// crosses the start marking again
	OutAndBack = Profile{
		Name:        "out-and-back",
		Description: "Turn around at the far line and stop back at the start line.",
		Script: nav.MustRouteScript("out-and-back",
			nav.Entry{Primary: counts(1), Action: action("turnaround",
				nav.DriveUntil(linefollow.DirectionCounterClockwise, nav.Leaves(linefollow.PositionOnLine)),
				nav.DriveUntil(linefollow.DirectionCounterClockwise, nav.Reaches(linefollow.PositionOnLine)),
			)},
			nav.Entry{Primary: counts(2), Action: action("finish", nav.Terminate())},
		),
		Config: func() nav.Config {
			cfg := nav.DefaultConfig()
			cfg.Follow.ForwardTick = 0
			return cfg
		}(),
	}

	// Position starts on one of four numbered start lines. The lines crossed during the first
	// second of driving are counted as marks and say which start it was; after that each T
	// intersection is a crossing and the mark count picks the branch. Starts 1/3 and 2/4 are
	// mirror images at the first two intersections.
	Position = Profile{
		Name:        "position",
		Description: "Count start marks, then take the branch for that start at each T intersection.",
		Script: nav.MustRouteScript("position",
			// first T intersection
			nav.Entry{Primary: counts(1), Secondary: counts(1, 3), Action: action("t1-left",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionLeft, 800*ms))},
			nav.Entry{Primary: counts(1), Secondary: counts(2, 4), Action: action("t1-right",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionRight, 800*ms))},

			// second T intersection
			nav.Entry{Primary: counts(2), Secondary: counts(1, 3), Action: action("t2-right",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionRight, 600*ms))},
			nav.Entry{Primary: counts(2), Secondary: counts(2, 4), Action: action("t2-left",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionLeft, 600*ms))},

			// third T intersection
			nav.Entry{Primary: counts(3), Secondary: counts(1, 4), Action: action("t3-right",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionRight, 700*ms))},
			nav.Entry{Primary: counts(3), Secondary: counts(2, 3), Action: action("t3-left",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionLeft, 700*ms))},

			// position line: back up and turn around
			nav.Entry{Primary: counts(4), Secondary: counts(1, 4), Action: action("reverse-right",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionBackward, 800*ms), nav.DriveTimed(linefollow.DirectionRight, 800*ms))},
			nav.Entry{Primary: counts(4), Secondary: counts(2, 3), Action: action("reverse-left",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionBackward, 800*ms), nav.DriveTimed(linefollow.DirectionLeft, 800*ms))},
			nav.Entry{Primary: counts(4), Action: action("reverse",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionBackward, 800*ms))},

			// second T intersection again, toward the box
			nav.Entry{Primary: counts(5), Secondary: counts(2, 4), Action: action("t2-return-left",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionLeft, 900*ms))},
			nav.Entry{Primary: counts(5), Secondary: counts(1, 3), Action: action("t2-return-right",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionRight, 900*ms))},

			// the box's T intersection. The two sides are not timed the same.
			nav.Entry{Primary: counts(6), Secondary: counts(2, 4), Action: action("box-right",
				nudge(linefollow.DirectionForward),
				nav.DriveTimed(linefollow.DirectionForward, 300*ms),
				nav.DriveTimed(linefollow.DirectionRight, 800*ms),
				nav.DriveTimed(linefollow.DirectionForward, 300*ms),
			)},
			nav.Entry{Primary: counts(6), Secondary: counts(1, 3), Action: action("box-left",
				nudge(linefollow.DirectionForward),
				nav.DriveTimed(linefollow.DirectionForward, 250*ms),
				nav.DriveTimed(linefollow.DirectionLeft, 900*ms),
				nav.DriveTimed(linefollow.DirectionForward, 300*ms),
			)},
			nav.Entry{Primary: counts(6), Action: action("box",
				nudge(linefollow.DirectionForward), nav.DriveTimed(linefollow.DirectionForward, 300*ms))},

			// stop inside the box
			nav.Entry{Primary: counts(7), Action: action("finish", nav.Terminate())},
		),
		Config: func() nav.Config {
			cfg := nav.DefaultConfig()
			cfg.Follow.TrimPeriod = 10
			cfg.Follow.TrimDirection = linefollow.DirectionLeft
			cfg.Follow.CalibrationTicks = 1000
			return cfg
		}(),
	}

	// Summative is the final course: 25 numbered lines, each one either driven straight through or
	// marking a turn, a brief stop, or the finish
	Summative = Profile{
		Name:        "summative",
		Description: "Final course with 25 scripted lines.",
		Script: nav.MustRouteScript("summative",
			nav.Entry{Primary: counts(1, 2, 3, 5, 6, 7, 9, 12, 14, 15, 18, 21, 22, 24), Action: action("straight",
				nudge(linefollow.DirectionForward),
				nav.DriveUntil(linefollow.DirectionForward, nav.Reaches(linefollow.PositionOnLine)),
			)},
			nav.Entry{Primary: counts(23), Action: action("straight-correct",
				nudge(linefollow.DirectionForward),
				nav.DriveUntil(linefollow.DirectionForward, nav.Reaches(linefollow.PositionOnLine)),
				nudge(linefollow.DirectionForward),
				nav.DriveTimed(linefollow.DirectionCounterClockwise, 200*ms),
			)},
			nav.Entry{Primary: counts(4, 13), Action: action("long-left",
				nudge(linefollow.DirectionCounterClockwise), nav.DriveTimed(linefollow.DirectionLeft, 800*ms))},
			nav.Entry{Primary: counts(8, 20), Action: action("short-left",
				nudge(linefollow.DirectionCounterClockwise), nav.DriveTimed(linefollow.DirectionLeft, 500*ms))},
			nav.Entry{Primary: counts(10, 11), Action: action("short-right",
				nudge(linefollow.DirectionClockwise), nav.DriveTimed(linefollow.DirectionRight, 500*ms))},
			nav.Entry{Primary: counts(16, 17), Action: action("skip-t",
				nudge(linefollow.DirectionClockwise),
				nav.DriveUntil(linefollow.DirectionClockwise, nav.Leaves(linefollow.PositionOffLine)),
				nav.DriveUntil(linefollow.DirectionForward, nav.Reaches(linefollow.PositionOnLine)),
			)},
			nav.Entry{Primary: counts(19), Action: action("pause",
				nudge(linefollow.DirectionStop),
				nav.DriveTimed(linefollow.DirectionBackward, 50*ms),
				nav.DriveTimed(linefollow.DirectionStop, 500*ms),
				nav.DriveUntil(linefollow.DirectionForward, nav.Reaches(linefollow.PositionOnLine)),
			)},
			nav.Entry{Primary: counts(25), Action: action("finish", nav.Terminate())},
		),
		Config: func() nav.Config {
			cfg := nav.DefaultConfig()
			cfg.SettleDelay = 10 * ms
			cfg.Follow.TrimPeriod = 20
			cfg.Follow.TrimDirection = linefollow.DirectionLeft
			return cfg
		}(),
	}
)

var profiles = []Profile{
	OutAndBack,
	Position,
	Summative,
}

// Lookup finds a profile by name
func Lookup(name string) (Profile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, unknownRouteError{name: name}
}

// Names lists every profile name in sorted order
func Names() []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
