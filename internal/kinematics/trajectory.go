package kinematics

import "github.com/msorokin/robolab/internal/core"

// DefaultTrajectorySteps is the number of interpolation segments for an
// animated motion; a trajectory holds one more waypoint than segments.
const DefaultTrajectorySteps = 20

// Trajectory produces steps+1 evenly spaced configurations from start to
// target. The ease-in-out curve is applied to the interpolation parameter,
// so all five joints share the same eased progress at every waypoint.
func Trajectory(start, target JointConfig, steps int) []JointConfig {
	if steps < 1 {
		steps = DefaultTrajectorySteps
	}

	waypoints := make([]JointConfig, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := core.EaseInOut(float64(i) / float64(steps))
		var wp JointConfig
		for j := range wp {
			wp[j] = core.Lerp(start[j], target[j], t)
		}
		waypoints = append(waypoints, wp)
	}
	return waypoints
}
