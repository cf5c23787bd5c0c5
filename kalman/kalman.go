package kalman

import (
	"github.com/milosgajdos/go-odometry/wheel"
	"gonum.org/v1/gonum/mat"
)

// Propagator propagates pose covariance through a linearized motion model.
// There is no measurement update: uncertainty only grows with wheel speed noise.
type Propagator interface {
	// Propagate returns pose covariance after one step of length dt and the state Jacobian of the step
	Propagate(prev mat.Symmetric, heading float64, s wheel.Speeds, dist, dt float64) (*mat.SymDense, *mat.Dense, error)
	// ProcessNoise returns process noise injected by the last step
	ProcessNoise() mat.Symmetric
}
