package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"fyne.io/fyne/v2/app"

	"github.com/dliang/linefollow/nav"
	"github.com/dliang/linefollow/routes"
	"github.com/dliang/linefollow/runlog"
	"github.com/dliang/linefollow/sim"
	"github.com/dliang/linefollow/trace"
	"github.com/dliang/linefollow/ui"
)

type options struct {
	route        string
	marks        int
	interactive  bool
	pauseOnPress bool
	verbose      bool
	runlogAddr   string
}

func main() {
	var opts options
	flag.StringVar(&opts.route, "route", "summative", "Route profile to run")
	flag.IntVar(&opts.marks, "marks", 0, "Calibration marks on the simulated course, which picks the start for the position route")
	flag.BoolVar(&opts.interactive, "interactive", false, "Run in real time with bench commands from stdin instead of a scripted course")
	flag.BoolVar(&opts.pauseOnPress, "pause", false, "Pause the run on a press instead of finishing it; holding the button for 2s ends it")
	flag.BoolVar(&opts.verbose, "verbose", false, "Trace every drive direction change")
	flag.StringVar(&opts.runlogAddr, "runlog", "", "Address of a runlog server to upload finished runs to")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if os.Getenv("ENABLE_UI") == "true" {
		runUI(ctx, opts)
		return
	}

	profile, err := loadProfile(opts.route, opts)
	if err != nil {
		slog.Error("error loading route", "error", err)
		os.Exit(1)
	}

	if opts.interactive {
		err = runInteractive(ctx, profile, os.Stdin, os.Stdout)
	} else {
		err = runCourse(ctx, profile, opts)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func loadProfile(name string, opts options) (routes.Profile, error) {
	profile, err := routes.Lookup(name)
	if err != nil {
		return routes.Profile{}, fmt.Errorf("%w, available routes: %v", err, routes.Names())
	}
	profile.Config.PauseOnPress = opts.pauseOnPress
	if opts.pauseOnPress && profile.Config.CancelHold == 0 {
		profile.Config.CancelHold = nav.DefaultCancelHold
	}
	profile.Config.Verbose = opts.verbose
	return profile, nil
}

// runCourse plays a generated course for the route in virtual time and reports each run
func runCourse(ctx context.Context, profile routes.Profile, opts options) error {
	track := sim.Course(opts.marks, profile.Script.MaxPrimary())
	board := sim.New(sim.Config{Track: track, Presses: []sim.Press{sim.Tap(0)}})

	engine, err := nav.New(board, board, profile.Script, profile.Config)
	if err != nil {
		return fmt.Errorf("error creating engine: %w", err)
	}

	var collector runlog.Collector
	var runs []*runlog.Run
	engine.SetLogger(nav.LoggerFunc(func(line string) {
		fmt.Println(line)

		e, err := trace.Parse(line)
		if err != nil {
			slog.Warn("unparseable trace line", "line", line, "error", err)
			return
		}
		if run, ok := collector.Add(e); ok {
			runs = append(runs, run)
		}
	}))

	engine.Announce()
	board.RunUntil(sim.Length(track), engine.Tick)

	if len(runs) == 0 {
		return errors.New("course ended without finishing a run")
	}

	for _, run := range runs {
		slog.Info("run finished",
			"route", run.Route,
			"outcome", run.Outcome,
			"crossings", run.Crossings,
			"marks", run.Marks,
			"actions", len(run.Actions),
			"duration", run.Duration(),
		)
		if opts.runlogAddr == "" {
			continue
		}

		uploadCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		id, err := runlog.NewClient(opts.runlogAddr).Upload(uploadCtx, run)
		cancel()
		if err != nil {
			return err
		}
		slog.Info("uploaded run", "id", id)
	}

	return nil
}

func runUI(ctx context.Context, opts options) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	application := app.New()
	benchUI := ui.NewBenchUI()

	cfg := ui.Config{Route: opts.route, PauseOnPress: opts.pauseOnPress, Verbose: opts.verbose}
	cw := ui.NewConfigWindow(application)
	cw.OnSubmit = func() {
		opts.pauseOnPress = cfg.PauseOnPress
		opts.verbose = cfg.Verbose
		profile, err := loadProfile(cfg.Route, opts)
		if err != nil {
			slog.Error("error loading route", "error", err)
			cancel()
			return
		}

		r, w := io.Pipe()

		// read from Stdin also
		go func() {
			defer w.Close()
			io.Copy(w, os.Stdin)
		}()

		go func() {
			defer cancel()
			err := runInteractive(ctx, profile, r, io.MultiWriter(os.Stdout, benchUI))
			if err != nil {
				slog.Error("simulation failed", "error", err)
			}
		}()

		benchUI.Show(ctx, application, w)
	}
	cw.Show(&cfg)

	application.Run()
}
