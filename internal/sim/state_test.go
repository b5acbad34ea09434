package sim

import (
	"math"
	"testing"
	"time"

	"github.com/msorokin/robolab/internal/kinematics"
	"github.com/msorokin/robolab/internal/rover"
	"github.com/msorokin/robolab/internal/script"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestSetJointsClamps(t *testing.T) {
	s := NewState(script.RobotArm)
	s.SetJoints(kinematics.JointConfig{400, 400, 400, 400, 400})

	got := s.Joints()
	want := kinematics.JointConfig{180, 90, 150, 90, 180}
	if got != want {
		t.Errorf("Joints() = %v, expected %v", got, want)
	}
}

func TestGripperClosingDevelopsEffort(t *testing.T) {
	s := NewState(script.RobotArm)

	// Open fully first.
	s.SetGripper(true, 0)
	for i := 0; i < 60; i++ {
		s.PhysicsTick(t0, 1.0/60)
	}
	if open, pos, _ := s.Gripper(); !open || pos != 1 {
		t.Fatalf("gripper should be fully open, pos=%v", pos)
	}

	// Close with an effort ceiling.
	s.SetGripper(false, 0.6)
	for i := 0; i < 60; i++ {
		s.PhysicsTick(t0, 1.0/60)
	}
	_, pos, effort := s.Gripper()
	if pos != 0 {
		t.Errorf("gripper position = %v, expected fully closed", pos)
	}
	if math.Abs(effort-0.6) > 1e-9 {
		t.Errorf("holding effort = %v, expected ceiling 0.6", effort)
	}
}

func TestGripperOpenHasZeroEffort(t *testing.T) {
	s := NewState(script.RobotArm)
	s.SetGripper(false, 0.8)
	s.PhysicsTick(t0, 0.5)

	s.SetGripper(true, 0)
	s.PhysicsTick(t0, 0.5)
	if _, _, effort := s.Gripper(); effort != 0 {
		t.Errorf("opening gripper effort = %v, expected 0", effort)
	}
}

func TestResetActiveOnlyTouchesActiveRobot(t *testing.T) {
	s := NewState(script.RobotArm)
	s.SetJoints(kinematics.JointConfig{45, 30, 0, 0, 0})
	s.CommandVelocity(1.0, 0.5, t0)
	s.SetLED("00ff00")

	s.ResetActive() // arm is active

	if s.Joints() != (kinematics.JointConfig{}) {
		t.Error("arm reset should zero joints")
	}
	if r := s.Rover(); r.VX == 0 {
		t.Error("arm reset must not touch rover velocity")
	}
	if s.LED() != "00ff00" {
		t.Error("arm reset must not touch the LED")
	}

	s.SetActiveRobot(script.RobotRover)
	s.ResetActive()
	if r := s.Rover(); r.VX != 0 || r.WZ != 0 {
		t.Error("rover reset should stop the rover")
	}
	if s.LED() != "" {
		t.Error("rover reset should clear the LED")
	}
}

func TestSnapshotDerivesEndEffector(t *testing.T) {
	s := NewState(script.RobotArm)
	j := kinematics.JointConfig{30, 20, 90, -20, 0}
	s.SetJoints(j)

	snap := s.Snapshot()
	if snap.EndEffector != kinematics.Forward(j) {
		t.Errorf("snapshot end effector = %+v, expected recomputed FK", snap.EndEffector)
	}
}

func TestSnapshotGridIsIsolated(t *testing.T) {
	s := NewState(script.RobotRover)
	s.SetActiveRobot(script.RobotRover)

	world := &ObstacleWorld{Circles: []Circle{{Tag: TagObstacle, X: 0, Z: 2, Radius: 0.3}}}
	sensor := rover.NewSensor(world)
	s.SenseTick(sensor, t0, 10, 5)

	snap := s.Snapshot()
	if snap.Grid == nil {
		t.Fatal("snapshot grid missing after a sensing update")
	}

	// Mutating the snapshot must not leak into live state.
	for i := range snap.Grid.Cells {
		snap.Grid.Cells[i] = rover.CellOccupied
	}
	if _, occupied := s.Snapshot().Grid.Counts(); occupied == len(snap.Grid.Cells) {
		t.Error("snapshot grid shares storage with live state")
	}
}

func TestLoopSenseGate(t *testing.T) {
	s := NewState(script.RobotRover)
	world := &ObstacleWorld{Circles: []Circle{{Tag: TagObstacle, X: 0, Z: 2, Radius: 0.3}}}
	sensor := rover.NewSensor(world)
	loop := NewLoop(s, sensor, DefaultParams())

	// First tick establishes the time base and performs the first sense.
	loop.Tick(t0)
	if s.Snapshot().Grid == nil {
		t.Fatal("first tick should run a sensing update")
	}
	firstDistance := s.Distance()
	if math.Abs(firstDistance-1.7) > 1e-9 {
		t.Errorf("distance = %v, expected 1.7", firstDistance)
	}

	// Move the obstacle; within the 100 ms gate no re-scan happens.
	world.Circles[0].Z = 3
	loop.Tick(t0.Add(50 * time.Millisecond))
	if d := s.Distance(); d != firstDistance {
		t.Errorf("distance re-sampled inside the gate: %v", d)
	}

	loop.Tick(t0.Add(150 * time.Millisecond))
	if d := s.Distance(); math.Abs(d-2.7) > 1e-9 {
		t.Errorf("distance after gate = %v, expected 2.7", d)
	}
}

func TestLoopCoastsBetweenCommands(t *testing.T) {
	s := NewState(script.RobotRover)
	sensor := rover.NewSensor(&ObstacleWorld{})
	loop := NewLoop(s, sensor, DefaultParams())

	s.CommandVelocity(1.0, 0, t0)
	loop.Tick(t0)

	// No further commands: friction decays the velocity tick by tick.
	now := t0
	prev := s.Rover().VX
	for i := 0; i < 30; i++ {
		now = now.Add(time.Second / 60)
		// Refresh the command timestamp so only friction acts here.
		s.CommandVelocity(prev, 0, now)
		loop.Tick(now)
		v := s.Rover().VX
		if v > prev {
			t.Fatalf("velocity grew between ticks: %v > %v", v, prev)
		}
		prev = v
	}
	if r := s.Rover(); r.Z <= 0 {
		t.Errorf("rover should have coasted forward, z=%v", r.Z)
	}
}
