package ui

import (
	"fmt"
	"io"
)

// controllerWrapper turns panel input into bench commands on the same stream stdin feeds
type controllerWrapper struct {
	writer io.Writer
}

func (c *controllerWrapper) Press() {
	fmt.Fprint(c.writer, "P\n")
}

func (c *controllerWrapper) Release() {
	fmt.Fprint(c.writer, "R\n")
}

func (c *controllerWrapper) SetSensors(left, right bool) {
	fmt.Fprintf(c.writer, "S%c%c\n", bit(left), bit(right))
}

func (c *controllerWrapper) ClearSensors() {
	fmt.Fprint(c.writer, "L\n")
}

func (c *controllerWrapper) Debug() {
	fmt.Fprint(c.writer, "D\n")
}

func bit(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}
