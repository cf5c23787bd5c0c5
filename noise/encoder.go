package noise

import (
	"fmt"
	"math"

	"github.com/milosgajdos/go-odometry/wheel"
	"gonum.org/v1/gonum/mat"
)

// Encoder is wheel encoder measurement noise.
// Variance of each wheel speed measurement grows linearly with the magnitude of the speed.
type Encoder struct {
	// kl is left wheel noise gain
	kl float64
	// kr is right wheel noise gain
	kr float64
}

// NewEncoder creates new Encoder noise with left and right wheel noise gains kl and kr.
// It returns error if either of the gains is negative or not finite.
func NewEncoder(kl, kr float64) (*Encoder, error) {
	for _, k := range []float64{kl, kr} {
		if !(k >= 0) || math.IsInf(k, 1) {
			return nil, fmt.Errorf("invalid encoder noise gain: %v", k)
		}
	}

	return &Encoder{
		kl: kl,
		kr: kr,
	}, nil
}

// Gains returns left and right wheel noise gains
func (e *Encoder) Gains() (kl, kr float64) {
	return e.kl, e.kr
}

// Cov returns wheel speed measurement covariance for speeds s.
// The first diagonal element is right wheel variance, the second one left wheel variance:
//
//  E = diag(kr*|right|, kl*|left|)
func (e *Encoder) Cov(s wheel.Speeds) *mat.DiagDense {
	return mat.NewDiagDense(2, []float64{
		e.kr * math.Abs(s.Right),
		e.kl * math.Abs(s.Left),
	})
}

// String implements the Stringer interface.
func (e *Encoder) String() string {
	return fmt.Sprintf("Encoder{Kl=%v Kr=%v}", e.kl, e.kr)
}
