package sim

import (
	"fmt"
	"math"
	"time"

	odometry "github.com/milosgajdos/go-odometry"
	"github.com/milosgajdos/go-odometry/noise"
	"github.com/milosgajdos/go-odometry/wheel"
)

// Segment is a part of a drive profile during which wheel speeds are constant
type Segment struct {
	// Speeds are commanded wheel speeds
	Speeds wheel.Speeds
	// Duration is segment duration
	Duration time.Duration
}

// Profile is a sequence of drive segments
type Profile []Segment

// Duration returns total profile duration
func (p Profile) Duration() time.Duration {
	var d time.Duration
	for _, s := range p {
		d += s.Duration
	}

	return d
}

// At returns commanded wheel speeds at elapsed time t.
// It returns false if t is outside of the profile.
func (p Profile) At(t time.Duration) (wheel.Speeds, bool) {
	if t < 0 {
		return wheel.Speeds{}, false
	}

	for _, s := range p {
		if t < s.Duration {
			return s.Speeds, true
		}
		t -= s.Duration
	}

	return wheel.Speeds{}, false
}

// Square returns a profile which drives a square with the given side length and wheel speed
// for a robot with geometry given by wheel radius r and wheel separation l.
// It returns error if any of the parameters is not a positive finite number.
func Square(side, speed, r, l float64) (Profile, error) {
	for _, param := range []struct {
		name string
		val  float64
	}{
		{"square side", side},
		{"wheel speed", speed},
		{"wheel radius", r},
		{"wheel separation", l},
	} {
		if !(param.val > 0) || math.IsInf(param.val, 1) {
			return nil, odometry.NewConfigError(param.name, param.val, "must be positive and finite")
		}
	}

	fwd := time.Duration(side / (speed * r) * float64(time.Second))
	// turning in place at speed rotates by 2*r*speed/l rad/s
	turn := time.Duration((math.Pi / 2) / (2 * r * speed / l) * float64(time.Second))

	var p Profile
	for i := 0; i < 4; i++ {
		p = append(p,
			Segment{Speeds: wheel.Speeds{Left: speed, Right: speed}, Duration: fwd},
			Segment{Speeds: wheel.Speeds{Left: -speed, Right: speed}, Duration: turn},
		)
	}

	return p, nil
}

// Wheels drives wheel speed producers from a profile
type Wheels struct {
	profile Profile
	store   *wheel.Store
	noise   odometry.Noise
}

// NewWheels creates new Wheels which writes profile speeds into store and returns it.
// Each write is perturbed by a sample of noise n. Nil n means noiseless wheels.
// It returns error if n is not two dimensional.
func NewWheels(p Profile, store *wheel.Store, n odometry.Noise) (*Wheels, error) {
	if store == nil {
		return nil, fmt.Errorf("invalid wheel speed store: nil")
	}

	if n == nil {
		z, err := noise.NewZero(2)
		if err != nil {
			return nil, err
		}
		n = z
	}

	if n.Cov().SymmetricDim() != 2 {
		return nil, fmt.Errorf("invalid wheel noise dimension: %d", n.Cov().SymmetricDim())
	}

	return &Wheels{
		profile: p,
		store:   store,
		noise:   n,
	}, nil
}

// Apply writes wheel speeds commanded at elapsed time t into the store.
// It returns false without writing anything once t is past the end of the profile.
func (w *Wheels) Apply(t time.Duration) bool {
	s, ok := w.profile.At(t)
	if !ok {
		return false
	}

	sample := w.noise.Sample()
	s.Left += sample.AtVec(0)
	s.Right += sample.AtVec(1)

	w.store.SetLeft(s.Left)
	w.store.SetRight(s.Right)

	return true
}
