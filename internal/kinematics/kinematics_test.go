package kinematics

import (
	"math"
	"testing"

	"github.com/msorokin/robolab/internal/core"
)

func TestForwardZeroConfig(t *testing.T) {
	// All angles zero: arm points straight up from the shoulder pivot.
	p := Forward(JointConfig{})

	if math.Abs(p.X) > 1e-9 || math.Abs(p.Z) > 1e-9 {
		t.Errorf("zero config should be on the Y axis, got %+v", p)
	}
	wantY := LinkBase + MaxReach
	if math.Abs(p.Y-wantY) > 1e-9 {
		t.Errorf("zero config height = %v, expected %v", p.Y, wantY)
	}
}

func TestForwardBaseRotationPreservesRadius(t *testing.T) {
	j := JointConfig{JointShoulder: 40, JointElbow: 60, JointWrist: -10}

	ref := Forward(j)
	refRadius := ref.HorizontalLength()

	for _, base := range []float64{-180, -90, -45, 30, 90, 180} {
		j[JointBase] = base
		p := Forward(j)
		if math.Abs(p.HorizontalLength()-refRadius) > 1e-9 {
			t.Errorf("base=%v changed radius: %v != %v", base, p.HorizontalLength(), refRadius)
		}
		if math.Abs(p.Y-ref.Y) > 1e-9 {
			t.Errorf("base=%v changed height: %v != %v", base, p.Y, ref.Y)
		}
	}
}

func TestForwardGripperRotationIgnored(t *testing.T) {
	j := JointConfig{JointBase: 30, JointShoulder: 20, JointElbow: 90, JointWrist: -20}
	p1 := Forward(j)
	j[JointGripperRot] = 135
	p2 := Forward(j)
	if p1 != p2 {
		t.Errorf("gripper rotation moved the end effector: %+v != %+v", p1, p2)
	}
}

func TestInverseReachesTargets(t *testing.T) {
	targets := []core.Vec3{
		{X: -0.4, Y: 0.7, Z: 0.3},
		{X: 0.0, Y: 0.55, Z: 0.6},
		{X: 0.2, Y: 0.8, Z: 0.5},
		{X: 0.6, Y: 0.5, Z: 0.0},
		{X: 0.45, Y: 0.65, Z: 0.45},
	}

	start := JointConfig{JointShoulder: 10, JointElbow: 20}
	for _, target := range targets {
		sol := Inverse(target, start)
		got := Forward(sol)
		if d := got.DistanceTo(target); d > ikTolerance {
			t.Errorf("Inverse(%+v): end effector off by %v (got %+v)", target, d, got)
		}
	}
}

func TestInverseForwardRoundTrip(t *testing.T) {
	// Positions produced by the solver are inside the constrained workspace
	// by construction, so a fresh solve from a different start must land on
	// the same point.
	seed := Inverse(core.Vec3{X: 0.2, Y: 0.8, Z: 0.5}, JointConfig{})
	pos := Forward(seed)

	resolved := Inverse(pos, JointConfig{JointBase: -45, JointShoulder: 30})
	if d := Forward(resolved).DistanceTo(pos); d > ikTolerance {
		t.Errorf("round trip drifted by %v", d)
	}
}

func TestInverseClampsUnreachableTargets(t *testing.T) {
	// Far targets at pivot height: the solution extends fully along the
	// bearing to the target, so the end effector sits on the ray at max
	// reach from the shoulder pivot.
	targets := []core.Vec3{
		{X: 5, Y: LinkBase, Z: 5},
		{X: 3, Y: LinkBase, Z: -2},
		{X: -4, Y: LinkBase, Z: 0.5},
	}

	for _, target := range targets {
		sol := Inverse(target, JointConfig{})
		got := Forward(sol)

		rel := got.Sub(core.Vec3{Y: LinkBase})
		if d := rel.Length(); math.Abs(d-MaxReach) > 0.01 {
			t.Errorf("Inverse(%+v): distance from pivot = %v, expected %v", target, d, MaxReach)
		}

		ray := target.Sub(core.Vec3{Y: LinkBase}).Normalized()
		along := rel.X*ray.X + rel.Y*ray.Y + rel.Z*ray.Z
		if math.Abs(along-rel.Length()) > 0.01 {
			t.Errorf("Inverse(%+v): end effector off the target ray", target)
		}
	}
}

func TestInverseNeverPanicsOnDegenerateTargets(t *testing.T) {
	// Targets too close for the 2-link sub-chain exercise the cosine clamp
	// path; the solver must degrade, not raise a domain error.
	targets := []core.Vec3{
		{X: 0, Y: LinkBase, Z: 0}, // at the pivot
		{X: 0.05, Y: 0.52, Z: 0.02},
		{X: 0, Y: 5, Z: 0}, // straight up, beyond reach
	}

	for _, target := range targets {
		sol := Inverse(target, JointConfig{})
		for i, a := range sol {
			min, max := JointRange(i)
			if a < min || a > max {
				t.Errorf("Inverse(%+v): joint %d = %v outside [%v, %v]", target, i, a, min, max)
			}
			if math.IsNaN(a) {
				t.Errorf("Inverse(%+v): joint %d is NaN", target, i)
			}
		}
	}
}

func TestInverseHoldsGripperRotation(t *testing.T) {
	start := JointConfig{JointGripperRot: 77}
	sol := Inverse(core.Vec3{X: 0.2, Y: 0.8, Z: 0.5}, start)
	if sol[JointGripperRot] != 77 {
		t.Errorf("gripper rotation = %v, expected 77", sol[JointGripperRot])
	}
}

func TestClampedRespectsJointRanges(t *testing.T) {
	j := JointConfig{400, -400, 200, 100, -300}.Clamped()
	want := JointConfig{180, -90, 150, 90, -180}
	if j != want {
		t.Errorf("Clamped() = %v, expected %v", j, want)
	}
}

func TestTrajectoryWaypoints(t *testing.T) {
	start := JointConfig{0, 0, 0, 0, 0}
	target := JointConfig{45, 30, -60, 15, 90}

	wps := Trajectory(start, target, 20)

	if len(wps) != 21 {
		t.Fatalf("Trajectory() returned %d waypoints, expected 21", len(wps))
	}
	if wps[0] != start {
		t.Errorf("first waypoint = %v, expected start %v", wps[0], start)
	}
	if wps[len(wps)-1] != target {
		t.Errorf("last waypoint = %v, expected target %v", wps[len(wps)-1], target)
	}

	// The same eased parameter applies to every joint: per-waypoint progress
	// must be identical across joints.
	for i, wp := range wps {
		var progress float64
		set := false
		for j := range wp {
			if target[j] == start[j] {
				continue
			}
			p := (wp[j] - start[j]) / (target[j] - start[j])
			if !set {
				progress = p
				set = true
				continue
			}
			if math.Abs(p-progress) > 1e-9 {
				t.Fatalf("waypoint %d: joint progress diverges (%v vs %v)", i, p, progress)
			}
		}
	}

	// Midpoint of the eased curve is the halfway configuration.
	mid := wps[10]
	for j := range mid {
		want := (start[j] + target[j]) / 2
		if math.Abs(mid[j]-want) > 1e-9 {
			t.Errorf("midpoint joint %d = %v, expected %v", j, mid[j], want)
		}
	}
}

func TestTrajectoryDefaultSteps(t *testing.T) {
	wps := Trajectory(JointConfig{}, JointConfig{JointBase: 90}, 0)
	if len(wps) != DefaultTrajectorySteps+1 {
		t.Errorf("default trajectory has %d waypoints, expected %d", len(wps), DefaultTrajectorySteps+1)
	}
}
