// Package ui is a fyne bench panel for the simulator. It sends bench commands through a writer and
// shows what the robot is doing by reading back its trace lines.
package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/dliang/linefollow/trace"
)

const maxLogLines = 200

type BenchUI struct {
	mtx     sync.Mutex
	state   panelState
	pending []byte
	logs    []string

	// refresh is set once the window exists
	refresh func()

	runTimer *timer
}

var _ io.Writer = (*BenchUI)(nil)

func NewBenchUI() *BenchUI {
	return &BenchUI{state: newPanelState()}
}

// Write takes console output. Complete lines update the panel; partial lines wait for the rest.
func (ui *BenchUI) Write(p []byte) (int, error) {
	ui.mtx.Lock()
	ui.pending = append(ui.pending, p...)
	for {
		i := bytes.IndexByte(ui.pending, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSpace(string(ui.pending[:i]))
		ui.pending = ui.pending[i+1:]
		if line != "" {
			ui.addLine(line)
		}
	}
	refresh := ui.refresh
	ui.mtx.Unlock()

	if refresh != nil {
		fyne.Do(refresh)
	}
	return len(p), nil
}

func (ui *BenchUI) addLine(line string) {
	ui.logs = append(ui.logs, line)
	if len(ui.logs) > maxLogLines {
		ui.logs = ui.logs[len(ui.logs)-maxLogLines:]
	}

	e, err := trace.Parse(line)
	if err != nil {
		return
	}
	ui.state.apply(e)

	if e.Kind != trace.KindState || ui.runTimer == nil {
		return
	}
	switch {
	case e.From == "Armed" && e.To == "Running":
		if ui.state.primary == 0 && ui.state.secondary == 0 {
			ui.runTimer.Start(time.Now())
		}
	case e.To == "Finished", e.To == "Idle":
		ui.runTimer.Stop(time.Now())
	}
}

func (ui *BenchUI) snapshot() (panelState, string) {
	ui.mtx.Lock()
	defer ui.mtx.Unlock()
	return ui.state, strings.Join(ui.logs, "\n")
}

// Show opens the bench window on app. Commands are written to w.
func (ui *BenchUI) Show(ctx context.Context, app fyne.App, w io.Writer) {
	window := app.NewWindow("Line Follower Bench")
	c := &controllerWrapper{writer: w}

	ui.mtx.Lock()
	ui.runTimer = newTimer()
	ui.mtx.Unlock()
	ui.runTimer.Go(ctx)

	routeLabel := widget.NewLabel("")
	stateLabel := widget.NewLabel("")
	countersLabel := widget.NewLabel("")
	actionLabel := widget.NewLabel("")
	driveLabel := widget.NewLabel("")

	buttonButton := widget.NewButton("Hold Button", nil)
	var held bool
	buttonButton.OnTapped = func() {
		held = !held
		if held {
			c.Press()
			buttonButton.SetText("Release Button")
		} else {
			c.Release()
			buttonButton.SetText("Hold Button")
		}
	}

	var leftCheck, rightCheck *widget.Check
	overrideCheck := widget.NewCheck("Override sensors", nil)
	onSensorChange := func(bool) {
		if overrideCheck.Checked {
			c.SetSensors(leftCheck.Checked, rightCheck.Checked)
		}
	}
	leftCheck = widget.NewCheck("Left on line", onSensorChange)
	rightCheck = widget.NewCheck("Right on line", onSensorChange)
	overrideCheck.OnChanged = func(on bool) {
		if on {
			c.SetSensors(leftCheck.Checked, rightCheck.Checked)
		} else {
			c.ClearSensors()
		}
	}

	logContent := widget.NewLabel("")
	logScroll := container.NewVScroll(logContent)
	logScroll.SetMinSize(fyne.NewSize(300, 150))
	logAccordion := widget.NewAccordion(widget.NewAccordionItem("Trace", logScroll))

	refresh := func() {
		s, logs := ui.snapshot()
		routeLabel.SetText("Route: " + s.route)
		stateLabel.SetText("State: " + s.runState)
		countersLabel.SetText(s.counters())
		actionLabel.SetText("Action: " + s.action)
		driveLabel.SetText("Drive: " + s.drive)
		logContent.SetText(logs)
		logScroll.ScrollToBottom()
	}
	refresh()

	ui.mtx.Lock()
	ui.refresh = refresh
	ui.mtx.Unlock()

	contentContainer := container.NewVBox(
		container.NewHBox(
			container.NewPadded(ui.runTimer.text),
			layout.NewSpacer(),
			routeLabel,
		),
		stateLabel,
		countersLabel,
		actionLabel,
		driveLabel,
		buttonButton,
		widget.NewCard("Sensors", "", container.NewVBox(
			overrideCheck,
			container.NewGridWithColumns(2, leftCheck, rightCheck),
		)),
		widget.NewButton("Debug", c.Debug),
		logAccordion,
	)

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			app.Quit()
		})
	}()

	window.SetContent(contentContainer)
	window.Resize(fyne.NewSize(360, 480))
	window.Show()
}
