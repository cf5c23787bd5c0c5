package config

import (
	"context"
	"errors"
	"testing"
	"time"

	odometry "github.com/milosgajdos/go-odometry"
	"github.com/milosgajdos/go-odometry/clock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)

	c, err := LoadFrom(map[string]string{})
	assert.NotNil(c)
	assert.NoError(err)

	g := c.Geometry()
	assert.Equal(0.05, g.WheelRadius)
	assert.Equal(0.08, g.WheelSeparation)
	assert.Equal(100.0, g.NoiseGainLeft)
	assert.Equal(100.0, g.NoiseGainRight)
	assert.Equal(60.0, c.Rate)
	assert.Equal(ClockFixed, c.Clock)
	assert.False(c.WrapHeading)
	assert.Equal(logrus.InfoLevel, c.Level())
	assert.Equal(time.Second/60, c.Period())
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("ODOM_WHEEL_RADIUS", "0.1")
	t.Setenv("ODOM_RATE", "100")
	t.Setenv("ODOM_CLOCK", "measured")
	t.Setenv("ODOM_WRAP_HEADING", "true")
	t.Setenv("ODOM_LOG_LEVEL", "debug")

	c, err := Load()
	assert.NotNil(c)
	assert.NoError(err)

	assert.Equal(0.1, c.WheelRadius)
	assert.Equal(10*time.Millisecond, c.Period())
	assert.Equal(ClockMeasured, c.Clock)
	assert.True(c.WrapHeading)
	assert.Equal(logrus.DebugLevel, c.Level())
}

func TestLoadInvalid(t *testing.T) {
	assert := assert.New(t)

	for _, environ := range []map[string]string{
		{"ODOM_WHEEL_RADIUS": "0"},
		{"ODOM_WHEEL_SEPARATION": "-0.08"},
		{"ODOM_NOISE_GAIN_LEFT": "-1"},
		{"ODOM_RATE": "0"},
	} {
		c, err := LoadFrom(environ)
		assert.Nil(c)
		assert.Error(err)

		var cfgErr *odometry.ConfigError
		assert.True(errors.As(err, &cfgErr))
	}

	for _, environ := range []map[string]string{
		{"ODOM_WHEEL_RADIUS": "wide"},
		{"ODOM_CLOCK": "sundial"},
		{"ODOM_LOG_LEVEL": "loud"},
	} {
		c, err := LoadFrom(environ)
		assert.Nil(c)
		assert.Error(err)
	}
}

func TestTimeSource(t *testing.T) {
	assert := assert.New(t)

	c, err := LoadFrom(map[string]string{})
	assert.NoError(err)

	ts, err := c.TimeSource()
	assert.NoError(err)
	assert.IsType(&clock.FixedStep{}, ts)
	_, dt, err := ts.Next(context.Background())
	assert.NoError(err)
	assert.Equal(1.0/60, dt)
	ts.Stop()

	c.Clock = ClockMeasured
	ts, err = c.TimeSource()
	assert.NoError(err)
	assert.IsType(&clock.Measured{}, ts)
	ts.Stop()

	c.Clock = "sundial"
	ts, err = c.TimeSource()
	assert.Nil(ts)
	assert.Error(err)

	// constructor errors do not leak typed nil time sources
	for _, clk := range []string{ClockFixed, ClockMeasured} {
		c.Clock = clk
		c.Rate = 0
		ts, err = c.TimeSource()
		assert.True(ts == nil)
		assert.Error(err)
	}
}
