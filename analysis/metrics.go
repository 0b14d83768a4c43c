package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Confusion counts binary outcomes with 1 (hit) as the positive class.
type Confusion struct {
	TP, FP, TN, FN int
}

// NewConfusion tallies predictions against the true labels.
func NewConfusion(yTrue, yPred []int) (Confusion, error) {
	if len(yTrue) != len(yPred) {
		return Confusion{}, fmt.Errorf("%w: %d labels vs %d predictions", ErrDimensionMismatch, len(yTrue), len(yPred))
	}
	var c Confusion
	for i, t := range yTrue {
		switch {
		case t == LabelHit && yPred[i] == LabelHit:
			c.TP++
		case t == LabelHit:
			c.FN++
		case yPred[i] == LabelHit:
			c.FP++
		default:
			c.TN++
		}
	}
	return c, nil
}

// Accuracy is the share of correct predictions.
func (c Confusion) Accuracy() float64 {
	return ratio(c.TP+c.TN, c.TP+c.TN+c.FP+c.FN)
}

// Precision is TP/(TP+FP); 0 when nothing was predicted positive.
func (c Confusion) Precision() float64 {
	return ratio(c.TP, c.TP+c.FP)
}

// Recall is TP/(TP+FN); 0 when there are no positives.
func (c Confusion) Recall() float64 {
	return ratio(c.TP, c.TP+c.FN)
}

// F1 is the harmonic mean of precision and recall.
func (c Confusion) F1() float64 {
	return ratio(2*c.TP, 2*c.TP+c.FP+c.FN)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// ROCPoint is one (false-positive rate, true-positive rate) pair.
type ROCPoint struct {
	FPR       float64 `yaml:"fpr"`
	TPR       float64 `yaml:"tpr"`
	Threshold float64 `yaml:"threshold"`
}

// ROCCurve computes the ROC curve of scores against the true labels.
// Points are ordered by increasing FPR, starting at (0,0) and ending at (1,1);
// the point at index i classifies score >= Threshold as a hit.
func ROCCurve(yTrue []int, scores []float64) ([]ROCPoint, error) {
	if len(yTrue) != len(scores) {
		return nil, fmt.Errorf("%w: %d labels vs %d scores", ErrDimensionMismatch, len(yTrue), len(scores))
	}
	var pos, neg int
	for _, t := range yTrue {
		if t == LabelHit {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, fmt.Errorf("roc: %w", ErrSingleClass)
	}

	y := append([]float64(nil), scores...)
	classes := make([]bool, len(yTrue))
	for i, t := range yTrue {
		classes[i] = t == LabelHit
	}
	stat.SortWeightedLabeled(y, classes, nil)
	if !sort.Float64sAreSorted(y) {
		return nil, fmt.Errorf("roc: scores could not be ordered")
	}

	tpr, fpr, thresh := stat.ROC(nil, y, classes, nil)
	curve := make([]ROCPoint, len(tpr))
	for i := range tpr {
		curve[i] = ROCPoint{FPR: fpr[i], TPR: tpr[i], Threshold: thresh[i]}
	}
	return curve, nil
}

// AUC integrates a ROC curve with the trapezoidal rule.
func AUC(curve []ROCPoint) float64 {
	if len(curve) < 2 {
		return 0
	}
	x := make([]float64, len(curve))
	f := make([]float64, len(curve))
	for i, p := range curve {
		x[i] = p.FPR
		f[i] = p.TPR
	}
	return integrate.Trapezoidal(x, f)
}

// ContainsPoint reports whether the curve passes through (fpr, tpr).
func ContainsPoint(curve []ROCPoint, fpr, tpr float64) bool {
	for _, p := range curve {
		if p.FPR == fpr && p.TPR == tpr {
			return true
		}
	}
	return false
}
