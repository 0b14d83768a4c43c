package model

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DecisionTree is a CART classifier with axis-aligned splits chosen by Gini
// impurity. Without MaxDepth it grows until every leaf is pure or no split
// lowers impurity.
type DecisionTree struct {
	MaxDepth        int
	MinSamplesSplit int

	rng      *rand.Rand
	root     *treeNode
	features int
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	// positive-class share among training rows that reached the node
	proba float64
	leaf  bool
}

// NewDecisionTree returns an unfitted tree. rng orders candidate features so
// equally good splits are broken reproducibly; nil uses a fixed seed.
func NewDecisionTree(maxDepth int, rng *rand.Rand) *DecisionTree {
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	return &DecisionTree{MaxDepth: maxDepth, MinSamplesSplit: 2, rng: rng}
}

// Name implements Classifier.
func (t *DecisionTree) Name() string { return "Decision Tree" }

// Fit grows the tree on x.
func (t *DecisionTree) Fit(x *mat.Dense, y []int) error {
	if err := checkTraining(x, y); err != nil {
		return err
	}
	r, c := x.Dims()
	rows := make([]int, r)
	for i := range rows {
		rows[i] = i
	}
	t.features = c
	t.root = t.grow(x, y, rows, 0)
	return nil
}

func (t *DecisionTree) grow(x *mat.Dense, y []int, rows []int, depth int) *treeNode {
	pos := 0
	for _, r := range rows {
		pos += y[r]
	}
	node := &treeNode{proba: float64(pos) / float64(len(rows))}
	if pos == 0 || pos == len(rows) ||
		len(rows) < t.MinSamplesSplit ||
		(t.MaxDepth > 0 && depth >= t.MaxDepth) {
		node.leaf = true
		return node
	}

	best := bestSplit(x, y, rows, pos, t.rng.Perm(t.features))
	if best.feature < 0 {
		node.leaf = true
		return node
	}

	var left, right []int
	for _, r := range rows {
		if x.At(r, best.feature) <= best.threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	node.feature = best.feature
	node.threshold = best.threshold
	node.left = t.grow(x, y, left, depth+1)
	node.right = t.grow(x, y, right, depth+1)
	return node
}

type split struct {
	feature   int
	threshold float64
	impurity  float64
}

// bestSplit scans every feature in order and returns the threshold with the
// lowest weighted child Gini impurity. feature is -1 when no split improves
// on the parent.
func bestSplit(x *mat.Dense, y []int, rows []int, pos int, order []int) split {
	n := float64(len(rows))
	best := split{feature: -1, impurity: gini(pos, len(rows))}
	sorted := make([]int, len(rows))

	for _, f := range order {
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return x.At(sorted[i], f) < x.At(sorted[j], f)
		})
		leftPos := 0
		for i := 0; i < len(sorted)-1; i++ {
			leftPos += y[sorted[i]]
			lo, hi := x.At(sorted[i], f), x.At(sorted[i+1], f)
			if lo == hi {
				continue
			}
			nl := i + 1
			nr := len(sorted) - nl
			imp := (float64(nl)*gini(leftPos, nl) + float64(nr)*gini(pos-leftPos, nr)) / n
			if imp < best.impurity-1e-12 {
				best = split{feature: f, threshold: lo + (hi-lo)/2, impurity: imp}
			}
		}
	}
	return best
}

func gini(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 1 - p*p - (1-p)*(1-p)
}

// PredictProba implements ProbabilisticClassifier.
func (t *DecisionTree) PredictProba(x *mat.Dense) ([]float64, error) {
	if t.root == nil {
		return nil, ErrNotFitted
	}
	if err := checkWidth(x, t.features); err != nil {
		return nil, err
	}
	r, _ := x.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		node := t.root
		for !node.leaf {
			if x.At(i, node.feature) <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		out[i] = node.proba
	}
	return out, nil
}

// Predict implements Classifier.
func (t *DecisionTree) Predict(x *mat.Dense) ([]int, error) {
	proba, err := t.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return threshold(proba), nil
}

// Depth returns the depth of the fitted tree; a single leaf has depth 0.
func (t *DecisionTree) Depth() int {
	return depth(t.root)
}

func depth(n *treeNode) int {
	if n == nil || n.leaf {
		return 0
	}
	return 1 + max(depth(n.left), depth(n.right))
}
