// Package model holds the classifier bank evaluated by the analysis pipeline.
//
// Every classifier is fit on the balanced, standardized training matrix and
// predicts hit (1) or miss (0) for each row of a test matrix. Classifiers that
// can also score rows implement ProbabilisticClassifier.
package model

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrNotFitted is returned by Predict before Fit.
var ErrNotFitted = errors.New("model: classifier not fitted")

// Classifier is a binary classifier over dense feature rows.
type Classifier interface {
	// Name returns the human-readable model name.
	Name() string
	// Fit trains on x with labels y (0 or 1).
	Fit(x *mat.Dense, y []int) error
	// Predict returns one 0/1 label per row of x.
	Predict(x *mat.Dense) ([]int, error)
}

// ProbabilisticClassifier can score rows with a probability of the positive class.
type ProbabilisticClassifier interface {
	Classifier
	PredictProba(x *mat.Dense) ([]float64, error)
}

// Options configures classifier construction.
type Options struct {
	// Neighbors is k for the nearest-neighbour classifier.
	Neighbors int
	// MaxDepth bounds the decision tree; 0 means unlimited.
	MaxDepth int
	// MinSamplesSplit is the smallest node the tree will split.
	MinSamplesSplit int
	// C is the inverse L2 regularization strength of logistic regression.
	C float64
	// Rand breaks ties; nil uses a fixed seed.
	Rand *rand.Rand
}

// DefaultOptions mirrors the conventional defaults for each classifier.
func DefaultOptions() Options {
	return Options{Neighbors: 5, MinSamplesSplit: 2, C: 1.0}
}

// Registered classifier keys.
const (
	LogisticKey = "logistic"
	TreeKey     = "tree"
	KNNKey      = "knn"
)

var constructors = map[string]func(Options) Classifier{
	LogisticKey: func(o Options) Classifier { return NewLogisticRegression(o.C) },
	TreeKey:     newTree,
	KNNKey:      func(o Options) Classifier { return NewKNN(o.Neighbors) },
}

func newTree(o Options) Classifier {
	t := NewDecisionTree(o.MaxDepth, o.Rand)
	if o.MinSamplesSplit > 0 {
		t.MinSamplesSplit = o.MinSamplesSplit
	}
	return t
}

// New constructs the classifier registered under key.
func New(key string, opts Options) (Classifier, error) {
	ctor, ok := constructors[key]
	if !ok {
		return nil, fmt.Errorf("unknown model %q; valid: %v", key, Names())
	}
	return ctor(opts), nil
}

// IsValid reports whether key names a registered classifier.
func IsValid(key string) bool {
	_, ok := constructors[key]
	return ok
}

// Names returns the registered classifier keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for k := range constructors {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func checkTraining(x *mat.Dense, y []int) error {
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return fmt.Errorf("empty training matrix")
	}
	if r != len(y) {
		return fmt.Errorf("training matrix has %d rows but %d labels", r, len(y))
	}
	for i, l := range y {
		if l != 0 && l != 1 {
			return fmt.Errorf("label %d at row %d is not 0 or 1", l, i)
		}
	}
	return nil
}

func checkWidth(x *mat.Dense, want int) error {
	_, c := x.Dims()
	if c != want {
		return fmt.Errorf("model fitted on %d features, got %d", want, c)
	}
	return nil
}

// threshold turns positive-class probabilities into labels; ties go to 0.
func threshold(proba []float64) []int {
	out := make([]int, len(proba))
	for i, p := range proba {
		if p > 0.5 {
			out[i] = 1
		}
	}
	return out
}
