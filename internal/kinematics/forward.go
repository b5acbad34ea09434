package kinematics

import (
	"math"

	"github.com/msorokin/robolab/internal/core"
)

// Forward computes the end-effector position for a joint configuration.
//
// The planar links accumulate angles measured from the vertical: with all
// angles at zero the arm points straight up from the shoulder pivot. The
// rotated arm plane is then swung about the Y axis by the base angle, with
// the bearing convention x = r·sin(base), z = r·cos(base). Gripper rotation
// does not affect position.
func Forward(j JointConfig) core.Vec3 {
	shoulder := core.Deg2Rad(j[JointShoulder])
	elbow := core.Deg2Rad(j[JointElbow])
	wrist := core.Deg2Rad(j[JointWrist])

	a1 := shoulder
	a2 := shoulder + elbow
	a3 := shoulder + elbow + wrist

	r := LinkUpper*math.Sin(a1) + LinkForearm*math.Sin(a2) + (LinkHand+LinkGripper)*math.Sin(a3)
	y := LinkBase + LinkUpper*math.Cos(a1) + LinkForearm*math.Cos(a2) + (LinkHand+LinkGripper)*math.Cos(a3)

	base := core.Deg2Rad(j[JointBase])
	return core.Vec3{
		X: r * math.Sin(base),
		Y: y,
		Z: r * math.Cos(base),
	}
}
