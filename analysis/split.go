package analysis

import (
	"fmt"
	"math"
	"math/rand"
)

// Split holds disjoint row indices for the training and test partitions.
type Split struct {
	Train []int
	Test  []int
}

// TrainTestSplit partitions row indices 0..n-1 with a seeded shuffle.
// The test partition holds ceil(n*testFraction) rows and the training
// partition the remainder; both must be non-empty.
func TrainTestSplit(n int, testFraction float64, rng *rand.Rand) (Split, error) {
	if math.IsNaN(testFraction) || testFraction <= 0 || testFraction >= 1 {
		return Split{}, fmt.Errorf("test fraction must be in (0, 1), got %v", testFraction)
	}
	nTest := int(math.Ceil(testFraction * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain == 0 {
		return Split{}, fmt.Errorf("cannot split %d rows with test fraction %v: a partition would be empty", n, testFraction)
	}

	perm := rng.Perm(n)
	return Split{
		Test:  perm[:nTest],
		Train: perm[nTest:],
	}, nil
}
