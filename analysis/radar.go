package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ClassProfile holds per-feature means for the hit and miss groups.
// A group with no rows has NaN means.
type ClassProfile struct {
	Features []string
	Hit      []float64
	Miss     []float64
}

// Complete reports whether both groups had at least one row.
func (p *ClassProfile) Complete() bool {
	for i := range p.Features {
		if math.IsNaN(p.Hit[i]) || math.IsNaN(p.Miss[i]) {
			return false
		}
	}
	return true
}

// ClassMeans computes the mean of every feature column within the hit rows
// and within the miss rows of the full dataset.
func ClassMeans(ds *Dataset) *ClassProfile {
	_, c := ds.X.Dims()
	profile := &ClassProfile{
		Features: append([]string(nil), ds.Features...),
		Hit:      make([]float64, c),
		Miss:     make([]float64, c),
	}
	var hitRows, missRows []int
	for i, l := range ds.Y {
		if l == LabelHit {
			hitRows = append(hitRows, i)
		} else {
			missRows = append(missRows, i)
		}
	}
	fillMeans(profile.Hit, ds.X, hitRows)
	fillMeans(profile.Miss, ds.X, missRows)
	return profile
}

func fillMeans(dst []float64, x *mat.Dense, rows []int) {
	if len(rows) == 0 {
		for j := range dst {
			dst[j] = math.NaN()
		}
		return
	}
	col := make([]float64, len(rows))
	for j := range dst {
		for i, r := range rows {
			col[i] = x.At(r, j)
		}
		dst[j] = stat.Mean(col, nil)
	}
}

// RadarAngles returns n evenly spaced angles in [0, 2π) followed by the
// first angle again, so a polygon drawn through them closes.
func RadarAngles(n int) []float64 {
	if n == 0 {
		return nil
	}
	angles := make([]float64, n+1)
	for i := 0; i < n; i++ {
		angles[i] = float64(i) / float64(n) * 2 * math.Pi
	}
	angles[n] = angles[0]
	return angles
}

// ClosePolygon returns values with the first value repeated at the end.
func ClosePolygon(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values)+1)
	copy(out, values)
	out[len(values)] = values[0]
	return out
}
