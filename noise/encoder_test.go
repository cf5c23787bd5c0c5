package noise

import (
	"math"
	"testing"

	"github.com/milosgajdos/go-odometry/wheel"
	"github.com/stretchr/testify/assert"
)

func TestNewEncoder(t *testing.T) {
	assert := assert.New(t)

	e, err := NewEncoder(100, 50)
	assert.NotNil(e)
	assert.NoError(err)

	kl, kr := e.Gains()
	assert.Equal(100.0, kl)
	assert.Equal(50.0, kr)

	e, err = NewEncoder(0, 0)
	assert.NotNil(e)
	assert.NoError(err)

	for _, gains := range [][2]float64{
		{-1, 0},
		{0, -1},
		{math.NaN(), 0},
		{0, math.Inf(1)},
	} {
		e, err := NewEncoder(gains[0], gains[1])
		assert.Nil(e)
		assert.Error(err)
	}
}

func TestEncoderCov(t *testing.T) {
	assert := assert.New(t)

	e, err := NewEncoder(100, 50)
	assert.NotNil(e)
	assert.NoError(err)

	for _, test := range []struct {
		speeds wheel.Speeds
		right  float64
		left   float64
	}{
		{speeds: wheel.Speeds{}, right: 0, left: 0},
		{speeds: wheel.Speeds{Left: 1, Right: 1}, right: 50, left: 100},
		{speeds: wheel.Speeds{Left: -2, Right: 0.5}, right: 25, left: 200},
	} {
		cov := e.Cov(test.speeds)
		assert.Equal(2, cov.SymmetricDim())
		assert.Equal(test.right, cov.At(0, 0))
		assert.Equal(test.left, cov.At(1, 1))
		assert.Equal(0.0, cov.At(0, 1))
		assert.Equal(0.0, cov.At(1, 0))
	}
}

func TestEncoderString(t *testing.T) {
	assert := assert.New(t)

	e, err := NewEncoder(100, 50)
	assert.NotNil(e)
	assert.NoError(err)
	assert.Equal("Encoder{Kl=100 Kr=50}", e.String())
}
