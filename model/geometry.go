package model

import (
	"math"

	odometry "github.com/milosgajdos/go-odometry"
)

// Geometry is differential drive robot geometry.
// It is set once at construction and never changes afterwards.
type Geometry struct {
	// WheelRadius is wheel radius in meters
	WheelRadius float64
	// WheelSeparation is the distance between the wheels in meters
	WheelSeparation float64
	// NoiseGainLeft relates left wheel speed magnitude to its measurement variance
	NoiseGainLeft float64
	// NoiseGainRight relates right wheel speed magnitude to its measurement variance
	NoiseGainRight float64
}

// Validate checks geometry parameters.
// It returns *odometry.ConfigError if either of the following conditions is met:
// - wheel radius or wheel separation is not a positive finite number
// - either of the noise gains is negative or not finite
func (g Geometry) Validate() error {
	if !(g.WheelRadius > 0) || math.IsInf(g.WheelRadius, 1) {
		return odometry.NewConfigError("wheel radius", g.WheelRadius, "must be positive")
	}

	if !(g.WheelSeparation > 0) || math.IsInf(g.WheelSeparation, 1) {
		return odometry.NewConfigError("wheel separation", g.WheelSeparation, "must be positive")
	}

	if !(g.NoiseGainLeft >= 0) || math.IsInf(g.NoiseGainLeft, 1) {
		return odometry.NewConfigError("left noise gain", g.NoiseGainLeft, "must be non-negative")
	}

	if !(g.NoiseGainRight >= 0) || math.IsInf(g.NoiseGainRight, 1) {
		return odometry.NewConfigError("right noise gain", g.NoiseGainRight, "must be non-negative")
	}

	return nil
}
