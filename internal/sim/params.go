// Package sim owns the shared simulation state and the frame loop that
// advances it. The executor, physics tick, and sensing update are the only
// mutators; they cooperate exclusively through the state container.
package sim

// Params contains host-tunable simulation parameters.
type Params struct {
	TickRate        int     // simulation ticks per second
	MapSize         float64 // occupancy grid extent in meters
	Resolution      int     // occupancy grid cells per meter
	SensorRange     float64 // distance sensor max range in meters
	SensorRays      int     // rays per 360° scan
	TrajectorySteps int     // interpolation segments per arm motion
}

// DefaultParams returns the parameters used without host configuration.
func DefaultParams() Params {
	return Params{
		TickRate:        60,
		MapSize:         10,
		Resolution:      5,
		SensorRange:     5.0,
		SensorRays:      36,
		TrajectorySteps: 20,
	}
}
