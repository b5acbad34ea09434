package sim

import (
	"sync"
	"time"

	"github.com/msorokin/robolab/internal/kinematics"
	"github.com/msorokin/robolab/internal/rover"
	"github.com/msorokin/robolab/internal/script"
)

// gripperRate is the gripper travel speed in fraction of full range per
// second: a full open/close takes half a second.
const gripperRate = 2.0

// State is the shared mutable simulation state. All access goes through its
// methods; the executor, the physics tick, and the sensing update never call
// into each other directly.
type State struct {
	mu sync.Mutex

	robot script.RobotKind

	// Arm
	joints          kinematics.JointConfig
	gripperOpen     bool    // target state
	gripperPosition float64 // 1 fully open .. 0 fully closed
	gripperEffort   float64
	gripperMax      float64
	trajectory      []kinematics.JointConfig // planned waypoints, for display

	// Rover
	rover    rover.State
	led      string
	distance float64
	grid     *rover.Grid

	// Executor progress, for display and run records.
	running  bool
	cmdIndex int
	cmdTotal int
	current  string
}

// NewState creates simulation state for the given active robot, with both
// robots in their initial configuration.
func NewState(kind script.RobotKind) *State {
	s := &State{robot: kind}
	s.reset()
	return s
}

func (s *State) reset() {
	s.joints = kinematics.JointConfig{}
	s.gripperOpen = false
	s.gripperPosition = 0
	s.gripperEffort = 0
	s.gripperMax = script.DefaultCloseEffort
	s.trajectory = nil
	s.rover = rover.NewState()
	s.led = ""
	s.distance = rover.SensorMaxRange
	s.grid = nil
}

// Reset fully re-initializes both robots. Safe to call at any executor
// suspension point; no partially-applied joint or velocity state survives.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// ResetActive re-initializes the currently active robot's slice of state.
func (s *State) ResetActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.robot {
	case script.RobotArm:
		s.joints = kinematics.JointConfig{}
		s.gripperOpen = false
		s.gripperPosition = 0
		s.gripperEffort = 0
		s.gripperMax = script.DefaultCloseEffort
		s.trajectory = nil
	case script.RobotRover:
		s.rover.Reset()
		s.led = ""
		s.distance = rover.SensorMaxRange
	}
}

// ActiveRobot returns which robot commands currently execute against.
func (s *State) ActiveRobot() script.RobotKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.robot
}

// SetActiveRobot switches the active robot.
func (s *State) SetActiveRobot(kind script.RobotKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.robot = kind
}

// Joints returns the current joint configuration.
func (s *State) Joints() kinematics.JointConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joints
}

// SetJoints applies a joint configuration, clamped to per-joint ranges.
func (s *State) SetJoints(j kinematics.JointConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joints = j.Clamped()
}

// SetGripper sets the gripper target state. For a closing command the effort
// ceiling is recorded; actual effort develops tick by tick from the closing
// motion.
func (s *State) SetGripper(open bool, maxEffort float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gripperOpen = open
	if !open {
		if maxEffort < 0 {
			maxEffort = 0
		} else if maxEffort > 1 {
			maxEffort = 1
		}
		s.gripperMax = maxEffort
	}
}

// Gripper returns the gripper target state, position, and current effort.
func (s *State) Gripper() (open bool, position, effort float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gripperOpen, s.gripperPosition, s.gripperEffort
}

// SetTrajectory records planned motion waypoints for display.
func (s *State) SetTrajectory(wps []kinematics.JointConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trajectory = wps
}

// ClearTrajectory discards the planned-motion display state.
func (s *State) ClearTrajectory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trajectory = nil
}

// CommandVelocity applies a rover velocity command and refreshes the
// staleness watchdog.
func (s *State) CommandVelocity(vx, wz float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rover.Command(vx, wz, now)
}

// Rover returns a copy of the rover state.
func (s *State) Rover() rover.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rover
}

// SetLED sets the rover's LED color.
func (s *State) SetLED(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.led = color
}

// LED returns the rover's LED color.
func (s *State) LED() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.led
}

// Distance returns the last distance-sensor reading without mutating
// anything.
func (s *State) Distance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.distance
}

// PhysicsTick advances the rover integrator and the gripper motion by dt
// seconds. Runs every frame regardless of executor activity: a moving
// vehicle coasts under friction between commands.
func (s *State) PhysicsTick(now time.Time, dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rover.Integrate(now, dt)
	s.stepGripper(dt)
}

// stepGripper moves the gripper toward its target and derives effort from
// the closing rate. Callers hold the lock.
func (s *State) stepGripper(dt float64) {
	if dt <= 0 {
		return
	}
	target := 0.0
	if s.gripperOpen {
		target = 1.0
	}

	delta := target - s.gripperPosition
	step := gripperRate * dt
	moved := step
	if delta < 0 {
		if -delta < step {
			moved = -delta
		}
		s.gripperPosition -= moved
		// Closing: effort follows the closing rate up to the ceiling,
		// and holds the ceiling once fully closed.
		if s.gripperPosition > 0 {
			s.gripperEffort = s.gripperMax * (moved / step)
		} else {
			s.gripperEffort = s.gripperMax
		}
	} else if delta > 0 {
		if delta < step {
			moved = delta
		}
		s.gripperPosition += moved
		s.gripperEffort = 0
	} else if s.gripperOpen {
		s.gripperEffort = 0
	}
}

// SenseTick samples the distance sensor and fuses a 360° scan into the
// occupancy grid. The grid is lazily (re)allocated for the given map
// parameters.
func (s *State) SenseTick(sensor *rover.Sensor, now time.Time, mapSize float64, resolution int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.distance = sensor.Distance(now, &s.rover)

	scan := sensor.Scan(&s.rover)
	if s.grid == nil {
		s.grid = &rover.Grid{}
	}
	s.grid.Ensure(mapSize, resolution)
	s.grid.Fuse(s.rover.X, s.rover.Z, scan, sensor.MaxRange())
}

// StartRun marks the beginning of a command sequence.
func (s *State) StartRun(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	s.cmdIndex = 0
	s.cmdTotal = total
	s.current = ""
}

// SetCurrentCommand records executor progress for display.
func (s *State) SetCurrentCommand(index int, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmdIndex = index
	s.current = label
}

// FinishRun marks the end of a command sequence.
func (s *State) FinishRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.current = ""
}
