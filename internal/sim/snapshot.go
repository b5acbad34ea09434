package sim

import (
	"github.com/msorokin/robolab/internal/core"
	"github.com/msorokin/robolab/internal/kinematics"
	"github.com/msorokin/robolab/internal/rover"
	"github.com/msorokin/robolab/internal/script"
)

// Snapshot is an immutable copy of the simulation state for rendering and
// run records. The end-effector pose is derived here; it is never stored as
// ground truth.
type Snapshot struct {
	Robot script.RobotKind

	Joints          kinematics.JointConfig
	EndEffector     core.Vec3
	GripperOpen     bool
	GripperPosition float64
	GripperEffort   float64
	Trajectory      int // remaining planned waypoints, 0 when idle

	Rover    rover.State
	LED      string
	Distance float64
	Grid     *rover.Grid // deep copy; nil until the first sensing update

	Running        bool
	CommandIndex   int
	CommandTotal   int
	CurrentCommand string
}

// Snapshot captures a consistent copy of the full simulation state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Robot:           s.robot,
		Joints:          s.joints,
		EndEffector:     kinematics.Forward(s.joints),
		GripperOpen:     s.gripperOpen,
		GripperPosition: s.gripperPosition,
		GripperEffort:   s.gripperEffort,
		Trajectory:      len(s.trajectory),
		Rover:           s.rover,
		LED:             s.led,
		Distance:        s.distance,
		Running:         s.running,
		CommandIndex:    s.cmdIndex,
		CommandTotal:    s.cmdTotal,
		CurrentCommand:  s.current,
	}

	if s.grid != nil {
		clone := *s.grid
		clone.Cells = make([]rover.CellState, len(s.grid.Cells))
		copy(clone.Cells, s.grid.Cells)
		snap.Grid = &clone
	}
	return snap
}
