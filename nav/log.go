package nav

import "github.com/dliang/linefollow/trace"

// Logger receives trace lines from the Engine
type Logger interface {
	Log(line string)
}

// LoggerFunc adapts a function to Logger
type LoggerFunc func(line string)

func (f LoggerFunc) Log(line string) {
	f(line)
}

// printLogger writes to the console with the println builtin, which TinyGo routes to the serial port
type printLogger struct{}

func (printLogger) Log(line string) {
	println(line)
}

func (e *Engine) emit(ev trace.Event) {
	ev.At = e.clock.Now()
	e.logger.Log(trace.Format(ev))
}
