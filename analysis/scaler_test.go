package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/cachelab/cachelab/internal/testutil"
)

func TestStandardScaler_FitTransform_ZeroMeanUnitStd(t *testing.T) {
	// GIVEN a training matrix with different column scales
	train := mat.NewDense(4, 2, []float64{
		1, 100,
		2, 300,
		3, 500,
		4, 700,
	})

	// WHEN fit and transformed
	s := NewStandardScaler()
	out, err := s.FitTransform(train)
	require.NoError(t, err)

	// THEN every column has mean 0 and population std 1
	col := make([]float64, 4)
	for j := 0; j < 2; j++ {
		mat.Col(col, j, out)
		m, v := stat.PopMeanVariance(col, nil)
		testutil.AssertNear(t, "mean", 0, m, 1e-12)
		testutil.AssertNear(t, "std", 1, math.Sqrt(v), 1e-12)
	}
}

func TestStandardScaler_Transform_UsesFrozenTrainingParameters(t *testing.T) {
	// GIVEN a scaler fitted on training rows
	s := NewStandardScaler()
	require.NoError(t, s.Fit(mat.NewDense(2, 1, []float64{0, 10})))
	mean, scale := s.Mean(), s.Scale()

	// WHEN a test matrix with very different statistics is transformed
	out, err := s.Transform(mat.NewDense(2, 1, []float64{1000, 2000}))
	require.NoError(t, err)

	// THEN the parameters are unchanged and applied as fitted
	assert.Equal(t, mean, s.Mean())
	assert.Equal(t, scale, s.Scale())
	assert.Equal(t, (1000.0-5)/5, out.At(0, 0))
	assert.Equal(t, (2000.0-5)/5, out.At(1, 0))

	// THEN a second Fit is rejected
	assert.ErrorIs(t, s.Fit(mat.NewDense(1, 1, []float64{1})), ErrAlreadyFitted)
	assert.Equal(t, mean, s.Mean())
}

func TestStandardScaler_ConstantColumn_MapsToZero(t *testing.T) {
	s := NewStandardScaler()
	out, err := s.FitTransform(mat.NewDense(3, 1, []float64{7, 7, 7}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, s.Scale())
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, out.At(i, 0))
	}
}

func TestStandardScaler_TransformBeforeFit_ReturnsErrNotFitted(t *testing.T) {
	_, err := NewStandardScaler().Transform(mat.NewDense(1, 1, nil))
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestStandardScaler_WidthMismatch_ReturnsErrDimensionMismatch(t *testing.T) {
	s := NewStandardScaler()
	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err := s.Transform(mat.NewDense(1, 3, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestStandardScaler_ParameterAccessorsReturnCopies(t *testing.T) {
	s := NewStandardScaler()
	require.NoError(t, s.Fit(mat.NewDense(2, 1, []float64{0, 2})))
	m := s.Mean()
	m[0] = 99
	assert.Equal(t, []float64{1}, s.Mean())
	assert.True(t, s.Fitted())
}
