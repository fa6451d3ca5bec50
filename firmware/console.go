//go:build tinygo

package main

import (
	"machine"
	"strconv"
	"time"

	"github.com/dliang/linefollow"
	"github.com/dliang/linefollow/bench"
	"github.com/dliang/linefollow/firmware/device"
	"github.com/dliang/linefollow/nav"
)

const serialPollDelay = 10 * time.Millisecond

// console applies bench commands from USB serial. Reads happen on their own goroutine. Board inputs
// are set directly so they reach a tick blocked in a wait; engine calls are queued and run by the
// main loop between ticks.
type console struct {
	queue  *bench.Queue
	board  *device.Board
	engine *nav.Engine
	clock  nav.Clock
}

var _ bench.Controller = (*console)(nil)

func (c *console) SetButton(pressed bool) {
	c.board.SetButton(pressed)
}

func (c *console) SetSensors(r linefollow.SensorReading) {
	c.board.SetSensors(r)
}

func (c *console) ClearSensors() {
	c.board.ClearSensors()
}

func (c *console) Verbose() {
	c.queued(func() {
		c.engine.Verbose()
		println(c.ts(), "Set Verbose Mode")
	})
}

// Debug prints the run state like
//
//	[12.5s] Running primary=3 secondary=1 ticks=2040 drive=Forward
func (c *console) Debug() {
	c.queued(func() {
		rc := c.engine.Context()
		d := c.ts() + " " + rc.State.String()
		d += " primary=" + strconv.Itoa(rc.Counters.Primary)
		d += " secondary=" + strconv.Itoa(rc.Counters.Secondary)
		d += " ticks=" + strconv.Itoa(rc.Counters.ForwardTicks)
		d += " drive=" + c.engine.Direction().String()
		println(d)
	})
}

func (c *console) queued(f func()) {
	if !c.queue.Do(f) {
		println(c.ts(), "busy, command dropped")
	}
}

// ReadByte waits for the next byte from the host, sleeping between checks so the control loop
// keeps running
func (c *console) ReadByte() (byte, error) {
	for machine.Serial.Buffered() == 0 {
		time.Sleep(serialPollDelay)
	}
	return machine.Serial.ReadByte()
}

// ts returns the timestamp for logging
func (c *console) ts() string {
	return "[" + c.clock.Now().String() + "]"
}
