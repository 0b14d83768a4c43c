package analysis

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainTestSplit_DisjointAndCovering(t *testing.T) {
	// GIVEN 101 rows and a 40% test share
	split, err := TrainTestSplit(101, 0.4, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	// THEN test holds ceil(101*0.4)=41 rows and train the remaining 60
	assert.Len(t, split.Test, 41)
	assert.Len(t, split.Train, 60)

	// THEN no row is in both and the union is every row
	seen := make(map[int]bool)
	for _, r := range split.Train {
		seen[r] = true
	}
	for _, r := range split.Test {
		assert.False(t, seen[r], "row %d in both partitions", r)
		seen[r] = true
	}
	all := make([]int, 0, len(seen))
	for r := range seen {
		all = append(all, r)
	}
	sort.Ints(all)
	for i, r := range all {
		assert.Equal(t, i, r)
	}
	assert.Len(t, all, 101)
}

func TestTrainTestSplit_SameSeed_SamePartition(t *testing.T) {
	a, err := TrainTestSplit(50, 0.4, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	b, err := TrainTestSplit(50, 0.4, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTrainTestSplit_InvalidFraction_ReturnsError(t *testing.T) {
	for _, f := range []float64{0, 1, -0.1, 1.5} {
		_, err := TrainTestSplit(10, f, rand.New(rand.NewSource(1)))
		assert.Error(t, err, "fraction %v", f)
	}
}

func TestTrainTestSplit_EmptyPartition_ReturnsError(t *testing.T) {
	// ceil(1*0.4) = 1 leaves nothing for training
	_, err := TrainTestSplit(1, 0.4, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}
