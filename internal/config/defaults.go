package config

import (
	_ "embed"
)

//go:embed defaults/robolab.yaml
var defaultSimYAML []byte

//go:embed defaults/world.yaml
var defaultWorldYAML []byte

// DefaultSimConfig returns the default simulation configuration.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Simulation: SimulationConfig{
			TickRate:        60,
			TrajectorySteps: 20,
		},
		Sensor: SensorConfig{
			MaxRange: 5.0,
			Rays:     36,
		},
		Mapping: MappingConfig{
			Size:       10,
			Resolution: 5,
		},
	}
}

// DefaultWorldConfig returns the default scene: a few obstacles around the
// origin plus untagged decoration the sensor ignores.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Circles: []CircleConfig{
			{Tag: "obstacle", X: 0, Z: 3, Radius: 0.4},
			{Tag: "obstacle", X: -2, Z: -1.5, Radius: 0.3},
			{Tag: "decoration", X: 1.5, Z: 0.5, Radius: 0.2},
		},
		Walls: []WallConfig{
			{Tag: "obstacle", X1: -4, Z1: 4, X2: 4, Z2: 4},
			{Tag: "obstacle", X1: 4, Z1: 4, X2: 4, Z2: -4},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML by name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "robolab":
		return defaultSimYAML
	case "world":
		return defaultWorldYAML
	default:
		return nil
	}
}
