package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// timer shows how long the current run has been going. It freezes when the run stops.
type timer struct {
	startTime time.Time
	stopTime  time.Time
	mtx       *sync.Mutex
	text      *canvas.Text
}

func newTimer() *timer {
	return &timer{
		mtx:  &sync.Mutex{},
		text: canvas.NewText("00:00.000", nil),
	}
}

func (t *timer) Start(now time.Time) {
	t.mtx.Lock()
	t.startTime = now
	t.stopTime = time.Time{}
	t.mtx.Unlock()
}

func (t *timer) Stop(now time.Time) {
	t.mtx.Lock()
	if !t.startTime.IsZero() && t.stopTime.IsZero() {
		t.stopTime = now
	}
	t.mtx.Unlock()
}

func (t *timer) elapsed() time.Duration {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	switch {
	case t.startTime.IsZero():
		return 0
	case !t.stopTime.IsZero():
		return t.stopTime.Sub(t.startTime)
	default:
		return time.Since(t.startTime)
	}
}

func (t *timer) Go(ctx context.Context) {
	ticker := time.NewTicker(64 * time.Millisecond)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			fyne.Do(func() {
				t.text.Text = formatElapsed(t.elapsed())
				t.text.Refresh()
			})
		}
	}()
}

func formatElapsed(elapsed time.Duration) string {
	minutes := int(elapsed.Minutes())
	seconds := int(elapsed.Seconds()) % 60
	millis := int(elapsed.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}
