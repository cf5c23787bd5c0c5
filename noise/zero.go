package noise

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Zero is wheel speed noise of a perfect encoder: every sample is zero
type Zero struct {
	dim int
}

// NewZero creates new zero noise of dimension dim and returns it.
// It returns error if dim is non-positive.
func NewZero(dim int) (*Zero, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid noise dimension: %d", dim)
	}

	return &Zero{dim: dim}, nil
}

// Sample returns a zero vector
func (z *Zero) Sample() mat.Vector {
	return mat.NewVecDense(z.dim, nil)
}

// Cov returns a zero covariance matrix
func (z *Zero) Cov() mat.Symmetric {
	return mat.NewSymDense(z.dim, nil)
}

// Mean returns a zero mean
func (z *Zero) Mean() []float64 {
	return make([]float64, z.dim)
}

// Reset does nothing
func (z *Zero) Reset() error { return nil }

// String implements the Stringer interface.
func (z *Zero) String() string {
	return fmt.Sprintf("Zero{\nMean=%v\nCov=%v\n}", z.Mean(), mat.Formatted(z.Cov(), mat.Prefix("    "), mat.Squeeze()))
}
