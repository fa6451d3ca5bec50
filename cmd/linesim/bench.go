package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dliang/linefollow"
	"github.com/dliang/linefollow/bench"
	"github.com/dliang/linefollow/nav"
	"github.com/dliang/linefollow/routes"
	"github.com/dliang/linefollow/sim"
)

// simBench is a simulated robot on the bench: real time, sensors held on the line until told
// otherwise, and bench commands read from in. Inputs go straight to the board, which is safe to
// change while a tick is blocked on them; engine calls are queued.
type simBench struct {
	queue  *bench.Queue
	board  *sim.Board
	engine *nav.Engine
	in     *bufio.Reader
	out    io.Writer
}

var _ bench.Controller = (*simBench)(nil)

func (b *simBench) SetButton(pressed bool) {
	b.board.SetButton(pressed)
}

func (b *simBench) SetSensors(r linefollow.SensorReading) {
	b.board.SetSensors(r)
}

// ClearSensors puts the robot back on the line. The bench has no track to fall back to.
func (b *simBench) ClearSensors() {
	b.board.SetSensors(linefollow.SensorReading{Left: true, Right: true})
}

func (b *simBench) Verbose() {
	b.queued(b.engine.Verbose)
}

func (b *simBench) Debug() {
	b.queued(func() {
		rc := b.engine.Context()
		fmt.Fprintf(b.out, "[%s] %s primary=%d secondary=%d ticks=%d drive=%s sensors=%s\n",
			b.board.Now(), rc.State, rc.Counters.Primary, rc.Counters.Secondary, rc.Counters.ForwardTicks,
			b.engine.Direction(), b.board.Sensors().Position())
	})
}

func (b *simBench) queued(f func()) {
	if !b.queue.Do(f) {
		fmt.Fprintln(b.out, "busy, command dropped")
	}
}

func (b *simBench) ReadByte() (byte, error) {
	return b.in.ReadByte()
}

// runInteractive runs profile in real time until ctx is done or in is closed
func runInteractive(ctx context.Context, profile routes.Profile, in io.Reader, out io.Writer) error {
	board := sim.New(sim.Config{Realtime: true})
	board.SetSensors(linefollow.SensorReading{Left: true, Right: true})

	engine, err := nav.New(board, board, profile.Script, profile.Config)
	if err != nil {
		return fmt.Errorf("error creating engine: %w", err)
	}
	engine.SetLogger(nav.LoggerFunc(func(line string) {
		fmt.Fprintln(out, line)
	}))

	b := &simBench{
		queue:  bench.NewQueue(16),
		board:  board,
		engine: engine,
		in:     bufio.NewReader(in),
		out:    out,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer cancel()
		err := bench.Run(b)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
			slog.Error("error reading bench commands", "error", err)
		}
	}()

	// a tick blocked in a wait only returns on a press
	go func() {
		<-ctx.Done()
		board.SetButton(true)
	}()

	engine.Announce()
	for ctx.Err() == nil {
		engine.Tick()
		b.queue.Drain()
	}
	engine.Stop()

	return nil
}
