// Package monitor reads the robot's console on the host: it logs every trace line, rebuilds runs
// from them and hands each finished run to an uploader.
package monitor

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dliang/linefollow/runlog"
	"github.com/dliang/linefollow/trace"
)

// Uploader stores finished runs. *runlog.Client is one.
type Uploader interface {
	Upload(ctx context.Context, r *runlog.Run) (string, error)
}

type Monitor struct {
	logger    *slog.Logger
	uploader  Uploader
	collector runlog.Collector

	// OnRun is called with every finished run after it is uploaded
	OnRun func(*runlog.Run)
}

// New creates a Monitor. uploader may be nil to only log.
func New(logger *slog.Logger, uploader Uploader) *Monitor {
	return &Monitor{logger: logger, uploader: uploader}
}

// Run reads console lines from r until it ends or ctx is done. Closing r is how a caller stops a
// read that is blocked.
func (m *Monitor) Run(ctx context.Context, r io.Reader) error {
	g, ctx := errgroup.WithContext(ctx)
	lines := make(chan string, 64)

	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return scanner.Err()
	})

	g.Go(func() error {
		for line := range lines {
			m.handle(ctx, line)
		}
		return nil
	})

	return g.Wait()
}

func (m *Monitor) handle(ctx context.Context, line string) {
	line = strings.Trim(strings.TrimSpace(line), "\x00")
	if line == "" {
		return
	}

	e, err := trace.Parse(line)
	if err != nil {
		// help text, debug dumps and panics are passed through as they are
		m.logger.Info("console", "line", line)
		return
	}

	m.logger.Info(e.Kind.String(), attrs(e)...)

	run, ok := m.collector.Add(e)
	if !ok {
		return
	}

	m.logger.Info("run finished",
		"route", run.Route,
		"outcome", run.Outcome,
		"crossings", run.Crossings,
		"marks", run.Marks,
		"duration", run.Duration(),
	)

	if m.uploader != nil {
		id, err := m.uploader.Upload(ctx, run)
		if err != nil {
			m.logger.Error("error uploading run", "error", err)
		} else {
			m.logger.Info("uploaded run", "id", id)
		}
	}

	if m.OnRun != nil {
		m.OnRun(run)
	}
}

func attrs(e trace.Event) []any {
	out := []any{"at", e.At}
	switch e.Kind {
	case trace.KindRoute:
		out = append(out, "route", e.Route)
	case trace.KindState:
		out = append(out, "from", e.From, "to", e.To)
	case trace.KindLine:
		out = append(out, "event", e.Line, "primary", e.Primary, "secondary", e.Secondary)
	case trace.KindAction:
		out = append(out, "action", e.Action, "steps", e.Steps)
	case trace.KindOutcome:
		out = append(out, "outcome", e.Outcome)
	case trace.KindDrive:
		out = append(out, "direction", e.Direction)
	}
	return out
}
