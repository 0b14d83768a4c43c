package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cachelab/cachelab/internal/neighbors"
)

// KNN classifies a row by uniform majority vote among its k nearest
// training rows under Euclidean distance.
type KNN struct {
	K int

	x     *mat.Dense
	y     []int
	index *neighbors.Index
}

// NewKNN returns an unfitted classifier with neighbourhood size k.
func NewKNN(k int) *KNN {
	if k < 1 {
		k = 5
	}
	return &KNN{K: k}
}

// Name implements Classifier.
func (m *KNN) Name() string { return "K-Nearest Neighbors" }

// Fit memorizes a copy of the training data.
func (m *KNN) Fit(x *mat.Dense, y []int) error {
	if err := checkTraining(x, y); err != nil {
		return err
	}
	m.x = mat.DenseCopyOf(x)
	m.y = append([]int(nil), y...)
	rows := make([]int, len(m.y))
	for i := range rows {
		rows[i] = i
	}
	m.index = neighbors.New(m.x, rows)
	return nil
}

// PredictProba returns the share of hits among each row's k neighbours.
func (m *KNN) PredictProba(x *mat.Dense) ([]float64, error) {
	if m.x == nil {
		return nil, ErrNotFitted
	}
	_, c := m.x.Dims()
	if err := checkWidth(x, c); err != nil {
		return nil, err
	}
	k := m.K
	if k > len(m.y) {
		k = len(m.y)
	}

	r, _ := x.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		hits := 0
		for _, nb := range m.index.Query(x.RawRowView(i), k, -1) {
			hits += m.y[nb.Row]
		}
		out[i] = float64(hits) / float64(k)
	}
	return out, nil
}

// Predict implements Classifier.
func (m *KNN) Predict(x *mat.Dense) ([]int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return threshold(proba), nil
}
