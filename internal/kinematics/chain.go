// Package kinematics implements forward and inverse kinematics plus
// trajectory interpolation for the 5-joint manipulator arm.
//
// The arm is a serial chain: a base column that rotates about the world Y
// axis, three links articulated in the rotated arm plane (shoulder, elbow,
// wrist), and a fixed gripper offset. Joint angles are exchanged in degrees;
// all internal math is in radians.
package kinematics

import "github.com/msorokin/robolab/internal/core"

// Joint indices into a JointConfig.
const (
	JointBase = iota // rotation about the world Y axis
	JointShoulder
	JointElbow
	JointWrist
	JointGripperRot // gripper rotation about its own Z axis
	JointCount
)

// Link lengths of the kinematic chain in meters. These are process-wide
// constants of the simulated hardware, not user configuration.
const (
	LinkBase    = 0.50 // ground to shoulder pivot
	LinkUpper   = 0.40 // shoulder to elbow
	LinkForearm = 0.35 // elbow to wrist
	LinkHand    = 0.25 // wrist to gripper mount
	LinkGripper = 0.10 // gripper mount to fingertip reference point
)

// MaxReach is the maximum distance from the shoulder pivot to the end
// effector with the arm fully extended.
const MaxReach = LinkUpper + LinkForearm + LinkHand + LinkGripper

// JointConfig is an ordered set of joint angles in degrees.
type JointConfig [JointCount]float64

// jointLimits holds the per-joint angle range in degrees.
var jointLimits = [JointCount][2]float64{
	JointBase:       {-180, 180},
	JointShoulder:   {-90, 90},
	JointElbow:      {-150, 150},
	JointWrist:      {-90, 90},
	JointGripperRot: {-180, 180},
}

// ClampAngle restricts an angle to the given joint's range.
func ClampAngle(joint int, angle float64) float64 {
	if joint < 0 || joint >= JointCount {
		return angle
	}
	return core.ClampF(angle, jointLimits[joint][0], jointLimits[joint][1])
}

// Clamped returns a copy of the configuration with every angle restricted to
// its joint's range.
func (j JointConfig) Clamped() JointConfig {
	for i := range j {
		j[i] = ClampAngle(i, j[i])
	}
	return j
}

// JointRange returns the [min, max] angle range in degrees for a joint.
func JointRange(joint int) (min, max float64) {
	if joint < 0 || joint >= JointCount {
		return 0, 0
	}
	return jointLimits[joint][0], jointLimits[joint][1]
}
