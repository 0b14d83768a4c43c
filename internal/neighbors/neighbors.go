// Package neighbors answers k-nearest-neighbour queries over the rows of a
// feature matrix with a k-d tree.
package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Neighbor is one query result. Dist is the squared Euclidean distance.
type Neighbor struct {
	Row  int
	Dist float64
}

// Index holds a subset of matrix rows for repeated nearest-neighbour queries.
type Index struct {
	tree *kdtree.Tree
	size int
}

// New indexes the given rows of x. The row slices are referenced, not copied,
// so x must not change while the Index is in use.
func New(x *mat.Dense, rows []int) *Index {
	pts := make(points, len(rows))
	for i, r := range rows {
		pts[i] = point{vec: x.RawRowView(r), row: r}
	}
	return &Index{tree: kdtree.New(pts, false), size: len(rows)}
}

// Len returns the number of indexed rows.
func (ix *Index) Len() int {
	return ix.size
}

// Query returns up to k indexed rows nearest to q, closest first, ties by
// row. The row equal to skip is never returned; pass -1 to keep every row.
func (ix *Index) Query(q []float64, k, skip int) []Neighbor {
	if k <= 0 || ix.size == 0 {
		return nil
	}
	want := k
	if skip >= 0 {
		want++
	}
	if want > ix.size {
		want = ix.size
	}
	keep := kdtree.NewNKeeper(want)
	ix.tree.NearestSet(keep, point{vec: q, row: -1})

	out := make([]Neighbor, 0, len(keep.Heap))
	for _, c := range keep.Heap {
		p, ok := c.Comparable.(point)
		if !ok || p.row == skip {
			continue
		}
		out = append(out, Neighbor{Row: p.row, Dist: c.Dist})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dist != out[j].Dist {
			return out[i].Dist < out[j].Dist
		}
		return out[i].Row < out[j].Row
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

type point struct {
	vec []float64
	row int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.vec[d] - c.(point).vec[d]
}

func (p point) Dims() int { return len(p.vec) }

func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var sum float64
	for i, v := range p.vec {
		d := v - q.vec[i]
		sum += d * d
	}
	return sum
}

type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{points: p, Dim: d}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool { return p.points[i].vec[p.Dim] < p.points[j].vec[p.Dim] }
func (p plane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
