//go:build tinygo

package device

import "machine"

// MotorConfig has the L293 pins for one side of the robot
type MotorConfig struct {
	// Forward and Reverse are the 1A/2A (or 3A/4A) direction inputs
	Forward machine.Pin
	Reverse machine.Pin
	// Enable is the 1,2EN (or 3,4EN) pin. Boards that tie it high can use machine.NoPin.
	Enable machine.Pin
}

// BoardConfig maps the robot's channels to pins
type BoardConfig struct {
	LeftSensor  machine.Pin
	RightSensor machine.Pin
	Button      machine.Pin
	Indicator   machine.Pin

	LeftMotor  MotorConfig
	RightMotor MotorConfig

	// SensorsActiveLow inverts the IR sensors for modules that pull low over the line
	SensorsActiveLow bool
	// ButtonActiveLow uses the internal pull-up with a button to ground
	ButtonActiveLow bool
}
