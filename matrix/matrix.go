package matrix

import (
	"fmt"

	mtx "github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Identity returns n x n identity matrix.
// It returns error if n is non-positive.
func Identity(n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid matrix dimension: %d", n)
	}

	return mtx.NewDenseValIdentity(n, 1.0)
}

// CopyUpper copies the upper triangle of square matrix m into dst.
// It returns error if m is not square or its size differs from dst.
func CopyUpper(dst *mat.SymDense, m mat.Matrix) error {
	r, c := m.Dims()
	if r != c || r != dst.SymmetricDim() {
		return fmt.Errorf("invalid matrix dimensions: [%d x %d]", r, c)
	}

	for i := 0; i < r; i++ {
		for j := i; j < c; j++ {
			dst.SetSym(i, j, m.At(i, j))
		}
	}

	return nil
}

// IsSymmetric returns true if m is square and m[i][j] and m[j][i]
// are within tol of each other for all i, j.
// It panics if m is nil.
func IsSymmetric(m mat.Matrix, tol float64) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}

	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if !scalar.EqualWithinAbs(m.At(i, j), m.At(j, i), tol) {
				return false
			}
		}
	}

	return true
}

// Diag returns diagonal elements of square matrix m.
// It panics if m is nil.
func Diag(m mat.Matrix) []float64 {
	r, c := m.Dims()
	n := r
	if c < n {
		n = c
	}

	diag := make([]float64, n)
	for i := range diag {
		diag[i] = m.At(i, i)
	}

	return diag
}

// NonNegativeDiag returns true if none of the diagonal elements of m is negative.
// It panics if m is nil.
func NonNegativeDiag(m mat.Matrix) bool {
	return floats.Min(append(Diag(m), 0)) >= 0
}
