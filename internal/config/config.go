// Package config provides YAML-based configuration loading for the
// simulation host: frame-loop parameters, sensor settings, and world
// geometry.
package config

import (
	"github.com/msorokin/robolab/internal/sim"
)

// SimConfig contains all tunable parameters of the simulation host.
type SimConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Sensor     SensorConfig     `yaml:"sensor"`
	Mapping    MappingConfig    `yaml:"mapping"`
}

// SimulationConfig defines frame-loop and motion parameters.
type SimulationConfig struct {
	TickRate        int `yaml:"tick_rate"`
	TrajectorySteps int `yaml:"trajectory_steps"`
}

// SensorConfig defines the distance sensor parameters.
type SensorConfig struct {
	MaxRange float64 `yaml:"max_range"`
	Rays     int     `yaml:"rays"`
}

// MappingConfig defines the occupancy grid parameters.
type MappingConfig struct {
	Size       float64 `yaml:"size"`       // grid extent in meters
	Resolution int     `yaml:"resolution"` // cells per meter
}

// Params converts the config into frame-loop parameters, substituting
// defaults for missing or non-positive values.
func (c SimConfig) Params() sim.Params {
	p := sim.DefaultParams()
	if c.Simulation.TickRate > 0 {
		p.TickRate = c.Simulation.TickRate
	}
	if c.Simulation.TrajectorySteps > 0 {
		p.TrajectorySteps = c.Simulation.TrajectorySteps
	}
	if c.Sensor.MaxRange > 0 {
		p.SensorRange = c.Sensor.MaxRange
	}
	if c.Sensor.Rays > 0 {
		p.SensorRays = c.Sensor.Rays
	}
	if c.Mapping.Size > 0 {
		p.MapSize = c.Mapping.Size
	}
	if c.Mapping.Resolution > 0 {
		p.Resolution = c.Mapping.Resolution
	}
	return p
}

// WorldConfig describes the static scene geometry the rover senses.
type WorldConfig struct {
	Circles []CircleConfig `yaml:"circles"`
	Walls   []WallConfig   `yaml:"walls"`
}

// CircleConfig is a circular obstacle footprint on the ground plane.
type CircleConfig struct {
	Tag    string  `yaml:"tag"`
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"`
}

// WallConfig is a straight wall segment on the ground plane.
type WallConfig struct {
	Tag string  `yaml:"tag"`
	X1  float64 `yaml:"x1"`
	Z1  float64 `yaml:"z1"`
	X2  float64 `yaml:"x2"`
	Z2  float64 `yaml:"z2"`
}

// World converts the config into raycast-able scene geometry. Entries
// without a tag default to the obstacle tag so hand-written world files
// stay terse.
func (c WorldConfig) World() *sim.ObstacleWorld {
	w := &sim.ObstacleWorld{}
	for _, cc := range c.Circles {
		tag := cc.Tag
		if tag == "" {
			tag = sim.TagObstacle
		}
		w.Circles = append(w.Circles, sim.Circle{
			Tag: tag, X: cc.X, Z: cc.Z, Radius: cc.Radius,
		})
	}
	for _, wc := range c.Walls {
		tag := wc.Tag
		if tag == "" {
			tag = sim.TagObstacle
		}
		w.Walls = append(w.Walls, sim.Wall{
			Tag: tag, X1: wc.X1, Z1: wc.Z1, X2: wc.X2, Z2: wc.Z2,
		})
	}
	return w
}
