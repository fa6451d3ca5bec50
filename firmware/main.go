//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/dliang/linefollow/bench"
	"github.com/dliang/linefollow/firmware/device"
	"github.com/dliang/linefollow/nav"
	"github.com/dliang/linefollow/routes"
)

// route is the profile flashed onto the robot. Override it with
// -ldflags="-X main.route=position"
var route = "summative"

func main() {
	// give the USB console a moment to enumerate so the first trace lines are not lost
	time.Sleep(2 * time.Second)

	board, err := device.New(device.BoardConfig{
		LeftSensor:  machine.GP26,
		RightSensor: machine.GP27,
		Button:      machine.GP15,
		Indicator:   machine.LED,
		LeftMotor: device.MotorConfig{
			Forward: machine.GP16,
			Reverse: machine.GP17,
			Enable:  machine.GP18,
		},
		RightMotor: device.MotorConfig{
			Forward: machine.GP19,
			Reverse: machine.GP20,
			Enable:  machine.GP21,
		},
		ButtonActiveLow: true,
	})
	if err != nil {
		panic("error creating board: " + err.Error())
	}

	profile, err := routes.Lookup(route)
	if err != nil {
		panic(err.Error())
	}

	clock := nav.NewSleepClock()
	engine, err := nav.New(board, clock, profile.Script, profile.Config)
	if err != nil {
		panic("error creating engine: " + err.Error())
	}

	c := &console{
		queue:  bench.NewQueue(8),
		board:  board,
		engine: engine,
		clock:  clock,
	}
	go func() {
		err := bench.Run(c)
		if err != nil {
			println("console closed:", err.Error())
		}
	}()

	engine.Announce()
	for {
		engine.Tick()
		c.queue.Drain()
	}
}
