// Package rover implements the ground vehicle's physics, sensing, and
// occupancy mapping. The vehicle model is a simplified 2D velocity
// integrator on the XZ plane, not a rigid-body solver.
package rover

import (
	"math"
	"time"

	"github.com/msorokin/robolab/internal/core"
)

// Velocity command limits.
const (
	MaxLinear  = 2.0 // m/s
	MaxAngular = 1.5 // rad/s
)

// GroundOffset is the fixed height of the rover body above the ground plane.
const GroundOffset = 0.15

const (
	// watchdogTimeout forces a stop when no fresh velocity command has
	// arrived in time.
	watchdogTimeout = 500 * time.Millisecond
	// frictionBase is the per-frame decay factor at the 60 Hz reference
	// rate; the tick normalizes it by elapsed time.
	frictionBase = 0.95
	// stopThreshold snaps small velocity magnitudes to exactly zero.
	stopThreshold = 0.01
)

// State holds the rover's mutable pose and velocity. It is owned by the
// simulation host; the physics tick only observes velocity and timestamps
// and mutates pose and velocity.
type State struct {
	X, Y, Z float64 // Y is fixed to GroundOffset
	Heading float64 // radians about the Y axis
	VX      float64 // linear velocity, m/s
	WZ      float64 // angular velocity, rad/s

	LastCommand time.Time // timestamp of the last velocity command
	CommandSeen bool      // whether any velocity command arrived yet
}

// NewState returns a rover at the origin, stopped.
func NewState() State {
	return State{Y: GroundOffset}
}

// Reset re-initializes the rover to its initial pose and a full stop.
func (s *State) Reset() {
	*s = NewState()
}

// Command applies a velocity command and refreshes the watchdog timestamp.
// Commanded values are clamped to the rover's limits.
func (s *State) Command(vx, wz float64, now time.Time) {
	s.VX = core.ClampF(vx, -MaxLinear, MaxLinear)
	s.WZ = core.ClampF(wz, -MaxAngular, MaxAngular)
	s.LastCommand = now
	s.CommandSeen = true
}

// Position returns the rover origin as a point in simulation space.
func (s *State) Position() core.Vec3 {
	return core.Vec3{X: s.X, Y: s.Y, Z: s.Z}
}

// Forward returns the unit vector the rover is facing along the ground.
func (s *State) Forward() core.Vec3 {
	return core.Vec3{X: math.Sin(s.Heading), Z: math.Cos(s.Heading)}
}

// Integrate advances the rover by dt seconds of simulated time.
//
// Order per tick: watchdog cutoff, friction decay with snap-to-zero, heading
// integration, then position integration. Writes are skipped when the
// corresponding velocity component is exactly zero.
func (s *State) Integrate(now time.Time, dt float64) {
	if dt <= 0 {
		return
	}

	// Watchdog: stale commands force a full stop.
	if s.CommandSeen && now.Sub(s.LastCommand) > watchdogTimeout {
		s.VX = 0
		s.WZ = 0
	}

	// Friction, normalized to the 60 Hz reference rate.
	decay := math.Pow(frictionBase, dt*60)
	s.VX *= decay
	s.WZ *= decay
	if math.Abs(s.VX) < stopThreshold {
		s.VX = 0
	}
	if math.Abs(s.WZ) < stopThreshold {
		s.WZ = 0
	}

	if s.WZ != 0 {
		s.Heading += s.WZ * dt
	}
	if s.VX != 0 {
		s.X += s.VX * math.Sin(s.Heading) * dt
		s.Z += s.VX * math.Cos(s.Heading) * dt
	}
}
