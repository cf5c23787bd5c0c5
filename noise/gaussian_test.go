package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestNewGaussian(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGaussian([]float64{2, 3}, mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1}))
	assert.NotNil(g)
	assert.NoError(err)

	// mismatched dimensions
	g, err = NewGaussian([]float64{2}, mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1}))
	assert.Nil(g)
	assert.Error(err)

	// covariance must be positive definite
	g, err = NewGaussian([]float64{0, 0}, mat.NewSymDense(2, []float64{1, 2, 2, 1}))
	assert.Nil(g)
	assert.Error(err)

	g, err = NewWheelGaussian(0.01, 0.02)
	assert.NotNil(g)
	assert.NoError(err)
	assert.Equal(0.01, g.Cov().At(0, 0))
	assert.Equal(0.02, g.Cov().At(1, 1))
}

func TestGaussianMeanCov(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{2, 3}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	gCov := g.Cov()
	assert.Equal(cov.SymmetricDim(), gCov.SymmetricDim())
	assert.True(mat.Equal(cov, gCov))
	assert.EqualValues(mean, g.Mean())

	// returned values are copies
	g.Mean()[0] = 100
	gCov.(*mat.SymDense).SetSym(0, 0, 100)
	assert.EqualValues(mean, g.Mean())
	assert.Equal(1.0, g.Cov().At(0, 0))
}

func TestGaussianSample(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{2, -3}
	g, err := NewGaussian(mean, mat.NewSymDense(2, []float64{0.01, 0, 0, 0.01}))
	assert.NotNil(g)
	assert.NoError(err)

	n := 2000
	xs, ys := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		s := g.Sample()
		assert.Equal(2, s.Len())
		xs[i], ys[i] = s.AtVec(0), s.AtVec(1)
	}

	// samples are drawn around the mean
	assert.InDelta(mean[0], stat.Mean(xs, nil), 0.05)
	assert.InDelta(mean[1], stat.Mean(ys, nil), 0.05)
}

func TestGaussianReset(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGaussian([]float64{2, 3}, mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1}))
	assert.NotNil(g)
	assert.NoError(err)

	sample1 := g.Sample()
	assert.NoError(g.Reset())
	sample2 := g.Sample()
	assert.NotEqual(sample1, sample2)
}

func TestGaussianString(t *testing.T) {
	assert := assert.New(t)

	str := `Gaussian{
Mean=[2 3]
Cov=⎡  1  0.1⎤
    ⎣0.1    1⎦
}`
	g, err := NewGaussian([]float64{2, 3}, mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1}))
	assert.NotNil(g)
	assert.NoError(err)
	assert.Equal(str, g.String())
}
