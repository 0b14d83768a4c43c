package analysis

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cachelab/cachelab/internal/neighbors"
)

// DefaultSMOTENeighbors is the neighbourhood size used for interpolation.
const DefaultSMOTENeighbors = 5

// SMOTE oversamples the minority class by interpolating between a minority
// row and one of its K nearest minority-class neighbours.
type SMOTE struct {
	K int
}

// Resample returns p with synthetic minority rows appended until both
// classes have equal counts. Original rows keep their positions.
// An already balanced partition is returned as a copy.
func (s SMOTE) Resample(p Partition, rng *rand.Rand) (Partition, error) {
	if s.K < 1 {
		return Partition{}, fmt.Errorf("smote neighbours must be >= 1, got %d", s.K)
	}

	var byClass [2][]int
	for i, label := range p.Y {
		byClass[label] = append(byClass[label], i)
	}
	minority, majority := LabelMiss, LabelHit
	if len(byClass[LabelHit]) < len(byClass[LabelMiss]) {
		minority, majority = LabelHit, LabelMiss
	}
	if len(byClass[minority]) == 0 {
		return Partition{}, fmt.Errorf("smote: %w", ErrSingleClass)
	}

	need := len(byClass[majority]) - len(byClass[minority])
	n, c := p.X.Dims()
	out := mat.NewDense(n+need, c, nil)
	out.Slice(0, n, 0, c).(*mat.Dense).Copy(p.X)
	labels := make([]int, n+need)
	copy(labels, p.Y)
	if need == 0 {
		return Partition{X: out, Y: labels}, nil
	}

	rows := byClass[minority]
	neighbours := nearestNeighbours(p.X, rows, s.K)
	logrus.Debugf("smote: synthesizing %d rows for class %d from %d originals", need, minority, len(rows))

	for i := 0; i < need; i++ {
		pick := rng.Intn(len(rows))
		base := p.X.RawRowView(rows[pick])
		dst := out.RawRowView(n + i)
		nn := neighbours[pick]
		if len(nn) == 0 {
			copy(dst, base)
		} else {
			other := p.X.RawRowView(nn[rng.Intn(len(nn))])
			gap := rng.Float64()
			// dst = base + gap*(other-base)
			floats.SubTo(dst, other, base)
			floats.Scale(gap, dst)
			floats.Add(dst, base)
		}
		labels[n+i] = minority
	}
	return Partition{X: out, Y: labels}, nil
}

// nearestNeighbours returns, for each position in rows, the row indices of
// its k nearest other members of rows by Euclidean distance.
// k is clamped to len(rows)-1.
func nearestNeighbours(x *mat.Dense, rows []int, k int) [][]int {
	if k > len(rows)-1 {
		k = len(rows) - 1
	}
	out := make([][]int, len(rows))
	if k <= 0 {
		return out
	}
	index := neighbors.New(x, rows)
	for i, r := range rows {
		found := index.Query(x.RawRowView(r), k, r)
		nn := make([]int, len(found))
		for j, nb := range found {
			nn[j] = nb.Row
		}
		out[i] = nn
	}
	return out
}
