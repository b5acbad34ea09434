// Package script extracts robot commands from user-submitted program text.
// The recognized vocabulary is a small closed set of robot.* calls; anything
// else in the source is ignored.
package script

import "fmt"

// RobotKind identifies which simulated robot a command targets.
type RobotKind int

const (
	// RobotArm is the 5-joint manipulator.
	RobotArm RobotKind = iota
	// RobotRover is the 4-wheel differential-drive ground vehicle.
	RobotRover
)

// String returns the robot kind identifier used in CLI flags and storage.
func (k RobotKind) String() string {
	switch k {
	case RobotArm:
		return "arm"
	case RobotRover:
		return "rover"
	default:
		return "unknown"
	}
}

// ParseRobotKind converts a string identifier to a RobotKind.
func ParseRobotKind(s string) (RobotKind, error) {
	switch s {
	case "arm":
		return RobotArm, nil
	case "rover":
		return RobotRover, nil
	default:
		return RobotArm, fmt.Errorf("script: unknown robot kind %q", s)
	}
}

// Command is one extracted robot instruction. The set of implementations is
// closed; the executor matches exhaustively and a new command kind must be
// handled by every consumer.
type Command interface {
	// Robot returns the robot kind this command targets. Commands for the
	// inactive robot are skipped at execution time, not at parse time.
	Robot() RobotKind
	// String returns a display form used by `check` and command tracing.
	String() string

	isCommand()
}

// MoveJoint rotates a single arm joint to an absolute angle in degrees.
type MoveJoint struct {
	Joint int     // 0..4: base, shoulder, elbow, wrist, gripper rotation
	Angle float64 // degrees, clamped to the joint's range on apply
}

// OpenGripper opens the arm's gripper.
type OpenGripper struct{}

// CloseGripper closes the arm's gripper with an effort ceiling in [0, 1].
type CloseGripper struct {
	MaxEffort float64
}

// MoveToPose moves the arm's end effector to a 3D point via inverse
// kinematics.
type MoveToPose struct {
	X, Y, Z float64
}

// SetVelocity commands the rover's linear (m/s) and angular (rad/s) velocity.
type SetVelocity struct {
	Linear  float64
	Angular float64
}

// ReadDistance samples the rover's frontal distance sensor.
type ReadDistance struct{}

// SetLight sets the rover's LED color.
type SetLight struct {
	Color string
}

func (MoveJoint) Robot() RobotKind    { return RobotArm }
func (OpenGripper) Robot() RobotKind  { return RobotArm }
func (CloseGripper) Robot() RobotKind { return RobotArm }
func (MoveToPose) Robot() RobotKind   { return RobotArm }
func (SetVelocity) Robot() RobotKind  { return RobotRover }
func (ReadDistance) Robot() RobotKind { return RobotRover }
func (SetLight) Robot() RobotKind     { return RobotRover }

func (c MoveJoint) String() string {
	return fmt.Sprintf("moveJoint(%d, %g)", c.Joint, c.Angle)
}
func (OpenGripper) String() string { return "openGripper()" }
func (c CloseGripper) String() string {
	return fmt.Sprintf("closeGripper(%g)", c.MaxEffort)
}
func (c MoveToPose) String() string {
	return fmt.Sprintf("moveToPose(%g, %g, %g)", c.X, c.Y, c.Z)
}
func (c SetVelocity) String() string {
	return fmt.Sprintf("move(%g, %g)", c.Linear, c.Angular)
}
func (ReadDistance) String() string { return "getDistance()" }
func (c SetLight) String() string {
	return fmt.Sprintf("setLight(%q)", c.Color)
}

func (MoveJoint) isCommand()    {}
func (OpenGripper) isCommand()  {}
func (CloseGripper) isCommand() {}
func (MoveToPose) isCommand()   {}
func (SetVelocity) isCommand()  {}
func (ReadDistance) isCommand() {}
func (SetLight) isCommand()     {}
