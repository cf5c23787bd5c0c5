package config

import (
	"fmt"
	"math"
	"time"

	"github.com/caarlos0/env/v11"
	odometry "github.com/milosgajdos/go-odometry"
	"github.com/milosgajdos/go-odometry/clock"
	"github.com/milosgajdos/go-odometry/model"
	"github.com/sirupsen/logrus"
)

const (
	// ClockFixed integrates with the nominal tick period
	ClockFixed = "fixed"
	// ClockMeasured integrates with the measured time between ticks
	ClockMeasured = "measured"
)

// Config is odometry configuration
type Config struct {
	WheelRadius     float64 `env:"ODOM_WHEEL_RADIUS" envDefault:"0.05"`
	WheelSeparation float64 `env:"ODOM_WHEEL_SEPARATION" envDefault:"0.08"`
	NoiseGainLeft   float64 `env:"ODOM_NOISE_GAIN_LEFT" envDefault:"100"`
	NoiseGainRight  float64 `env:"ODOM_NOISE_GAIN_RIGHT" envDefault:"100"`
	// Rate is integration rate in Hz
	Rate float64 `env:"ODOM_RATE" envDefault:"60"`
	// Clock is either fixed or measured
	Clock       string `env:"ODOM_CLOCK" envDefault:"fixed"`
	WrapHeading bool   `env:"ODOM_WRAP_HEADING" envDefault:"false"`
	LogLevel    string `env:"ODOM_LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables.
// It returns error if the environment can't be parsed or the configuration is invalid.
func Load() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadFrom loads configuration from environ instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	c := &Config{}
	if err := env.ParseWithOptions(c, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks configuration.
func (c *Config) Validate() error {
	if err := c.Geometry().Validate(); err != nil {
		return err
	}

	if !(c.Rate > 0) || math.IsInf(c.Rate, 1) {
		return odometry.NewConfigError("rate", c.Rate, "must be positive")
	}

	if c.Clock != ClockFixed && c.Clock != ClockMeasured {
		return fmt.Errorf("invalid clock: %q", c.Clock)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return nil
}

// Geometry returns robot geometry
func (c *Config) Geometry() model.Geometry {
	return model.Geometry{
		WheelRadius:     c.WheelRadius,
		WheelSeparation: c.WheelSeparation,
		NoiseGainLeft:   c.NoiseGainLeft,
		NoiseGainRight:  c.NoiseGainRight,
	}
}

// Period returns integration period rounded down to nanoseconds.
// It returns 0 if the rate is not positive.
func (c *Config) Period() time.Duration {
	if !(c.Rate > 0) {
		return 0
	}

	return time.Duration(float64(time.Second) / c.Rate)
}

// TimeSource creates the configured time source
func (c *Config) TimeSource() (odometry.TimeSource, error) {
	switch c.Clock {
	case ClockFixed:
		ts, err := clock.NewFixedRate(c.Rate)
		if err != nil {
			return nil, err
		}
		return ts, nil
	case ClockMeasured:
		ts, err := clock.NewMeasured(c.Period())
		if err != nil {
			return nil, err
		}
		return ts, nil
	default:
		return nil, fmt.Errorf("invalid clock: %q", c.Clock)
	}
}

// Level returns the configured log level
func (c *Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return l
}
