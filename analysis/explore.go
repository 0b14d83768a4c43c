package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is a labelled Pearson correlation matrix.
type CorrelationMatrix struct {
	Labels []string
	Values *mat.SymDense
}

// At returns the correlation between features i and j.
func (c *CorrelationMatrix) At(i, j int) float64 {
	return c.Values.At(i, j)
}

// Correlation computes the pairwise Pearson correlation of every feature
// column. Constant columns produce NaN entries.
func Correlation(ds *Dataset) (*CorrelationMatrix, error) {
	if ds.Rows() < 2 {
		return nil, fmt.Errorf("correlation needs at least 2 rows, got %d", ds.Rows())
	}
	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, ds.X, nil)
	return &CorrelationMatrix{
		Labels: append([]string(nil), ds.Features...),
		Values: &corr,
	}, nil
}

// ClassCount is the number of rows carrying one label value.
type ClassCount struct {
	Label int
	Count int
}

// ClassCounts tallies label values, most frequent first.
func ClassCounts(labels []int) []ClassCount {
	tally := make(map[int]int)
	for _, l := range labels {
		tally[l]++
	}
	counts := make([]ClassCount, 0, len(tally))
	for l, n := range tally {
		counts = append(counts, ClassCount{Label: l, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}
