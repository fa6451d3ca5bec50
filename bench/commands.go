// Package bench is the flag-byte command set for poking a robot by hand: hold the button, fake the
// sensors, dump state. The firmware reads it from USB serial and linesim reads it from stdin or the
// bench panel.
package bench

import (
	"errors"

	"github.com/dliang/linefollow"
)

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is a robot that can be driven from the bench
type Controller interface {
	SetButton(pressed bool)
	SetSensors(linefollow.SensorReading)
	ClearSensors()
	Debug()
	Verbose()

	// I/O
	ReadByte() (byte, error)
}

var (
	PressCommand = &Command{
		Flag:      'P',
		InputSize: 0,
		Run: func(c Controller, _ []byte) error {
			c.SetButton(true)
			return nil
		},
		Description: "Hold the start/stop button down.",
	}
	ReleaseCommand = &Command{
		Flag:      'R',
		InputSize: 0,
		Run: func(c Controller, _ []byte) error {
			c.SetButton(false)
			return nil
		},
		Description: "Release the start/stop button.",
	}
	SensorsCommand = &Command{
		Flag:      'S',
		InputSize: 2,
		Run: func(c Controller, input []byte) error {
			left, err := b2b(input[0])
			if err != nil {
				return err
			}
			right, err := b2b(input[1])
			if err != nil {
				return err
			}
			c.SetSensors(linefollow.SensorReading{Left: left, Right: right})
			return nil
		},
		Description: "Override the line sensors. Input: left then right, '1' on the line or '0' off it.",
	}
	TrackCommand = &Command{
		Flag:      'L',
		InputSize: 0,
		Run: func(c Controller, _ []byte) error {
			c.ClearSensors()
			return nil
		},
		Description: "Stop overriding the line sensors.",
	}
	DebugCommand = &Command{
		Flag:      'D',
		InputSize: 0,
		Run: func(c Controller, _ []byte) error {
			c.Debug()
			return nil
		},
		Description: "Print the run state, counters and drive direction.",
	}
	VerboseCommand = &Command{
		Flag:      'V',
		InputSize: 0,
		Run: func(c Controller, _ []byte) error {
			c.Verbose()
			return nil
		},
		Description: "Enable verbose output.",
	}
	HelpCommand = &Command{
		Flag:        'H',
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, _ []byte) error {
			println("Available Commands:")
			for _, cmd := range commands {
				println(string(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

var errInvalidInput = errors.New("invalid input")

func b2b(b byte) (bool, error) {
	switch b {
	case '1':
		return true, nil
	case '0':
		return false, nil
	}
	return false, errors.New(errInvalidInput.Error() + ": " + string(b))
}

var commands = []*Command{
	PressCommand,
	ReleaseCommand,
	SensorsCommand,
	TrackCommand,
	DebugCommand,
	VerboseCommand,
}

// Lookup returns the command for flag
func Lookup(flag byte) (*Command, bool) {
	if flag == HelpCommand.Flag {
		return HelpCommand, true
	}
	for _, cmd := range commands {
		if cmd.Flag == flag {
			return cmd, true
		}
	}
	return nil, false
}

// Run reads commands from c until ReadByte fails. Unknown bytes, including whitespace between
// commands, are skipped.
func Run(c Controller) error {
	for {
		cmdIn, err := c.ReadByte()
		if err != nil {
			return err
		}

		cmd, ok := Lookup(cmdIn)
		if !ok {
			continue
		}

		in := make([]byte, cmd.InputSize)
		for i := 0; i < int(cmd.InputSize); i++ {
			in[i], err = c.ReadByte()
			if err != nil {
				return err
			}
		}

		err = cmd.Run(c, in)
		if err != nil {
			println("error:", err.Error())
		}
	}
}
