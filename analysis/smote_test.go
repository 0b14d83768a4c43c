package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func imbalanced() Partition {
	// 6 hits spread over x in [10,15], 3 misses clustered near x=0
	x := mat.NewDense(9, 2, []float64{
		10, 1,
		11, 1,
		12, 1,
		13, 1,
		14, 1,
		15, 1,
		0, 0,
		1, 0,
		2, 0,
	})
	return Partition{X: x, Y: []int{1, 1, 1, 1, 1, 1, 0, 0, 0}}
}

func TestSMOTE_Resample_EqualizesClassCounts(t *testing.T) {
	// GIVEN a 6:3 training partition
	train := imbalanced()

	// WHEN resampled
	out, err := SMOTE{K: 5}.Resample(train, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	// THEN both classes have 6 rows and originals keep their positions
	counts := map[int]int{}
	for _, l := range out.Y {
		counts[l]++
	}
	assert.Equal(t, 6, counts[0])
	assert.Equal(t, 6, counts[1])
	assert.Equal(t, 12, out.Rows())
	assert.True(t, mat.Equal(train.X, out.X.Slice(0, 9, 0, 2)))
}

func TestSMOTE_Resample_SyntheticRowsInterpolateMinority(t *testing.T) {
	train := imbalanced()
	out, err := SMOTE{K: 2}.Resample(train, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	// synthetic rows lie on segments between minority rows: x in [0,2], y == 0
	for i := 9; i < out.Rows(); i++ {
		assert.Equal(t, 0, out.Y[i])
		assert.GreaterOrEqual(t, out.X.At(i, 0), 0.0)
		assert.LessOrEqual(t, out.X.At(i, 0), 2.0)
		assert.Equal(t, 0.0, out.X.At(i, 1))
	}
}

func TestSMOTE_Resample_DoesNotMutateInput(t *testing.T) {
	train := imbalanced()
	before := mat.DenseCopyOf(train.X)
	_, err := SMOTE{K: 5}.Resample(train, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.True(t, mat.Equal(before, train.X))
	assert.Len(t, train.Y, 9)
}

func TestSMOTE_Resample_Balanced_ReturnsCopy(t *testing.T) {
	p := Partition{X: mat.NewDense(2, 1, []float64{1, 2}), Y: []int{0, 1}}
	out, err := SMOTE{K: 5}.Resample(p, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, p.Y, out.Y)
	assert.True(t, mat.Equal(p.X, out.X))
}

func TestSMOTE_Resample_SingleMinorityRow_Duplicates(t *testing.T) {
	p := Partition{X: mat.NewDense(3, 1, []float64{1, 2, 9}), Y: []int{1, 1, 0}}
	out, err := SMOTE{K: 5}.Resample(p, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, 4, out.Rows())
	assert.Equal(t, 9.0, out.X.At(3, 0))
	assert.Equal(t, 0, out.Y[3])
}

func TestSMOTE_Resample_SingleClass_ReturnsErrSingleClass(t *testing.T) {
	p := Partition{X: mat.NewDense(2, 1, []float64{1, 2}), Y: []int{1, 1}}
	_, err := SMOTE{K: 5}.Resample(p, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrSingleClass)
}

func TestSMOTE_Resample_InvalidK_ReturnsError(t *testing.T) {
	_, err := SMOTE{K: 0}.Resample(imbalanced(), rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestNearestNeighbours_SmallCluster(t *testing.T) {
	p := imbalanced()
	// misses are rows 6,7,8 at x=0,1,2
	nn := nearestNeighbours(p.X, []int{6, 7, 8}, 5)
	assert.Equal(t, [][]int{{7, 8}, {6, 8}, {7, 6}}, nn)
}

func TestSMOTE_Resample_LargePartition_Balances(t *testing.T) {
	// GIVEN 20000 rows with a 70/30 class split
	rng := rand.New(rand.NewSource(8))
	n, c := 20000, 4
	x := mat.NewDense(n, c, nil)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			x.Set(i, j, rng.NormFloat64())
		}
		if rng.Float64() < 0.7 {
			y[i] = 1
		}
	}

	// WHEN resampled
	out, err := SMOTE{K: DefaultSMOTENeighbors}.Resample(Partition{X: x, Y: y}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// THEN the classes are equal
	counts := map[int]int{}
	for _, l := range out.Y {
		counts[l]++
	}
	assert.Equal(t, counts[0], counts[1])
}
