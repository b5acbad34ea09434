package kinematics

import (
	"math"

	"github.com/msorokin/robolab/internal/core"
)

const (
	// ikMaxIterations bounds the refinement loop.
	ikMaxIterations = 50
	// ikTolerance is the convergence distance in meters.
	ikTolerance = 0.01
)

// shoulderPivot is the fixed rotation center of the planar sub-chain.
var shoulderPivot = core.Vec3{Y: LinkBase}

// Inverse solves for a joint configuration placing the end effector at the
// target point, starting from the current configuration.
//
// Targets beyond the arm's reach are clamped onto the reach sphere by radial
// scaling about the shoulder pivot; the solver never fails. The base angle
// follows the horizontal bearing to the target, shoulder and elbow solve the
// planar 2-link sub-chain by the law of cosines (with the cosine arguments
// clamped to [-1, 1] so unreachable geometry degrades instead of producing a
// domain error), the wrist keeps the gripper level, and gripper rotation
// holds its prior value. Each iteration checks convergence with forward
// kinematics before refining. The result is clamped per joint.
func Inverse(target core.Vec3, current JointConfig) JointConfig {
	rel := target.Sub(shoulderPivot)
	if d := rel.Length(); d > MaxReach {
		rel = rel.Scale(MaxReach / d)
	}
	goal := shoulderPivot.Add(rel)

	est := current
	for i := 0; i < ikMaxIterations; i++ {
		if Forward(est).DistanceTo(goal) < ikTolerance {
			break
		}
		est = solveOnce(goal, est)
	}
	return est.Clamped()
}

// solveOnce computes one closed-form estimate for the goal point.
func solveOnce(goal core.Vec3, prior JointConfig) JointConfig {
	base := math.Atan2(goal.X, goal.Z)

	// Project into the rotated arm plane: horizontal radius and height
	// above the shoulder pivot.
	r := goal.HorizontalLength()
	h := goal.Y - LinkBase

	// The hand (wrist to fingertip) stays level, so the 2-link sub-chain
	// must reach the wrist point one hand-length short of the goal.
	const hand = LinkHand + LinkGripper
	pr := r - hand
	ph := h

	d := math.Hypot(pr, ph)
	gamma := math.Atan2(pr, ph) // wrist-point angle from vertical

	// Law of cosines, both arguments clamped against unreachable geometry.
	cosElbow := (LinkUpper*LinkUpper + LinkForearm*LinkForearm - d*d) /
		(2 * LinkUpper * LinkForearm)
	cosElbow = core.ClampF(cosElbow, -1, 1)
	elbow := math.Pi - math.Acos(cosElbow)

	cosAlpha := 1.0
	if d > 0 {
		cosAlpha = (LinkUpper*LinkUpper + d*d - LinkForearm*LinkForearm) /
			(2 * LinkUpper * d)
	}
	cosAlpha = core.ClampF(cosAlpha, -1, 1)
	shoulder := gamma - math.Acos(cosAlpha)

	// Level end effector: the hand direction is horizontal, so the wrist
	// compensates for the accumulated shoulder and elbow rotation.
	wrist := math.Pi/2 - (shoulder + elbow)

	return JointConfig{
		JointBase:       core.Rad2Deg(base),
		JointShoulder:   core.Rad2Deg(shoulder),
		JointElbow:      core.Rad2Deg(elbow),
		JointWrist:      core.Rad2Deg(wrist),
		JointGripperRot: prior[JointGripperRot],
	}
}
