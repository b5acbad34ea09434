package rover

import (
	"math"
	"time"

	"github.com/msorokin/robolab/internal/core"
)

// Sensor defaults.
const (
	SensorMaxRange  = 5.0 // meters
	DefaultScanRays = 36

	// sampleInterval rate-limits the distance sensor to 10 Hz.
	sampleInterval = 100 * time.Millisecond
)

// World is the intersection provider supplied by the simulation host. It
// answers a single-ray query against tagged obstacle geometry; the robot's
// own body, helpers, and the ground never appear as candidates.
type World interface {
	// Raycast returns the nearest hit distance along the ray from origin
	// in direction dir, and whether anything was hit within maxRange.
	Raycast(origin, dir core.Vec3, maxRange float64) (float64, bool)
}

// Sensor performs ray-based distance sensing for the rover.
type Sensor struct {
	world    World
	maxRange float64
	rays     int

	lastSample   time.Time
	lastDistance float64
	sampled      bool
}

// NewSensor creates a sensor over the given world with default range and
// ray count.
func NewSensor(world World) *Sensor {
	return &Sensor{
		world:        world,
		maxRange:     SensorMaxRange,
		rays:         DefaultScanRays,
		lastDistance: SensorMaxRange,
	}
}

// MaxRange returns the sensor's maximum range in meters.
func (s *Sensor) MaxRange() float64 {
	return s.maxRange
}

// SetMaxRange overrides the sensor range (used by host configuration).
func (s *Sensor) SetMaxRange(r float64) {
	if r > 0 {
		s.maxRange = r
		s.lastDistance = r
	}
}

// SetRays overrides the number of rays in a full scan.
func (s *Sensor) SetRays(n int) {
	if n > 0 {
		s.rays = n
	}
}

// Distance returns the frontal distance reading for the rover.
//
// Sampling is gated to 10 Hz by wall-clock time; between samples the last
// reading is returned unchanged. A miss reads as exactly the maximum range.
func (s *Sensor) Distance(now time.Time, st *State) float64 {
	if s.sampled && now.Sub(s.lastSample) < sampleInterval {
		return s.lastDistance
	}
	s.lastSample = now
	s.sampled = true

	d, hit := s.world.Raycast(st.Position(), st.Forward(), s.maxRange)
	if !hit {
		d = s.maxRange
	}
	s.lastDistance = core.ClampF(d, 0, s.maxRange)
	return s.lastDistance
}

// Reading is one ray result of a 360° scan.
type Reading struct {
	Angle    float64 // radians, anchored to world axes
	Distance float64 // meters, in [0, max range]; a miss reads max range
}

// Scan casts rays evenly spaced around a full turn from the rover origin.
// Angles are anchored to the world axes, not the vehicle heading.
func (s *Sensor) Scan(st *State) []Reading {
	readings := make([]Reading, 0, s.rays)
	origin := st.Position()

	for i := 0; i < s.rays; i++ {
		angle := float64(i) * 2 * math.Pi / float64(s.rays)
		dir := core.Vec3{X: math.Sin(angle), Z: math.Cos(angle)}

		d, hit := s.world.Raycast(origin, dir, s.maxRange)
		if !hit {
			d = s.maxRange
		}
		readings = append(readings, Reading{
			Angle:    angle,
			Distance: core.ClampF(d, 0, s.maxRange),
		})
	}
	return readings
}
