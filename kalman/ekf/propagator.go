package ekf

import (
	"fmt"
	"math"

	odometry "github.com/milosgajdos/go-odometry"
	"github.com/milosgajdos/go-odometry/matrix"
	"github.com/milosgajdos/go-odometry/model"
	"github.com/milosgajdos/go-odometry/noise"
	"github.com/milosgajdos/go-odometry/wheel"
	"gonum.org/v1/gonum/mat"
)

// Propagator is the prediction stage of Extended Kalman Filter for differential drive odometry.
// It propagates pose covariance with the first order update:
//
//  P' = H*P*H' + W*E*W'
//
// where H is the state Jacobian, W is the wheel speed Jacobian
// and E is the wheel speed measurement covariance.
type Propagator struct {
	// g is robot geometry
	g model.Geometry
	// e is wheel encoder noise
	e *noise.Encoder
	// h is state Jacobian; only its heading column changes between steps
	h *mat.Dense
	// w is wheel speed Jacobian
	w *mat.Dense
	// q is process noise of the last step
	q *mat.SymDense
}

// New creates new Propagator for robot geometry g and returns it.
// It returns error if g is not valid.
func New(g model.Geometry) (*Propagator, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	e, err := noise.NewEncoder(g.NoiseGainLeft, g.NoiseGainRight)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder noise: %w", err)
	}

	h, err := matrix.Identity(3)
	if err != nil {
		return nil, err
	}

	return &Propagator{
		g: g,
		e: e,
		h: h,
		w: mat.NewDense(3, 2, nil),
		q: mat.NewSymDense(3, nil),
	}, nil
}

// Propagate propagates covariance prev by one step of length dt.
// heading is robot heading before the step, s are the wheel speeds
// and dist is the linear speed they produce.
// It returns the new covariance and the state Jacobian of the step.
// It returns error if prev is not a 3x3 matrix or if dt is not positive.
// NaN and Inf inputs are not checked: they propagate into the result.
func (p *Propagator) Propagate(prev mat.Symmetric, heading float64, s wheel.Speeds, dist, dt float64) (*mat.SymDense, *mat.Dense, error) {
	if prev == nil || prev.SymmetricDim() != 3 {
		return nil, nil, fmt.Errorf("invalid covariance matrix")
	}

	if !(dt > 0) {
		return nil, nil, odometry.NewConfigError("step period", dt, "must be positive")
	}

	p.stateJacobian(heading, dist, dt)
	p.inputJacobian(heading, dt)

	// Q = W*E*W'
	we := &mat.Dense{}
	we.Mul(p.w, p.e.Cov(s))
	q := &mat.Dense{}
	q.Mul(we, p.w.T())

	// H*P*H'
	hp := &mat.Dense{}
	hp.Mul(p.h, prev)
	cov := &mat.Dense{}
	cov.Mul(hp, p.h.T())
	cov.Add(cov, q)

	if err := matrix.CopyUpper(p.q, q); err != nil {
		return nil, nil, err
	}

	next := mat.NewSymDense(3, nil)
	if err := matrix.CopyUpper(next, cov); err != nil {
		return nil, nil, err
	}

	return next, mat.DenseCopyOf(p.h), nil
}

// stateJacobian updates state Jacobian:
// sensitivity of position to heading error given the motion increment.
func (p *Propagator) stateJacobian(heading, dist, dt float64) {
	p.h.Set(0, 2, -dist*math.Sin(heading)*dt)
	p.h.Set(1, 2, dist*math.Cos(heading)*dt)
}

// inputJacobian updates wheel speed Jacobian.
// Its first column maps right wheel speed error, the second one left wheel speed error.
func (p *Propagator) inputJacobian(heading, dt float64) {
	k := p.g.WheelRadius * dt / 2
	c, s := math.Cos(heading), math.Sin(heading)
	l := p.g.WheelSeparation

	p.w.SetRow(0, []float64{k * c, k * c})
	p.w.SetRow(1, []float64{k * s, k * s})
	p.w.SetRow(2, []float64{k * 2 / l, -k * 2 / l})
}

// StateJacobian returns state Jacobian of the last step
func (p *Propagator) StateJacobian() mat.Matrix {
	return mat.DenseCopyOf(p.h)
}

// InputJacobian returns wheel speed Jacobian of the last step
func (p *Propagator) InputJacobian() mat.Matrix {
	return mat.DenseCopyOf(p.w)
}

// ProcessNoise returns process noise of the last step
func (p *Propagator) ProcessNoise() mat.Symmetric {
	q := mat.NewSymDense(p.q.SymmetricDim(), nil)
	q.CopySym(p.q)

	return q
}

// Geometry returns robot geometry
func (p *Propagator) Geometry() model.Geometry {
	return p.g
}
