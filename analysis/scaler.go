package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler standardizes columns to zero mean and unit variance.
//
// Fit and Transform are deliberately separate: Fit runs once on the balanced
// training matrix and freezes the parameters; Transform applies them to any
// matrix of the same width, including the test partition.
type StandardScaler struct {
	mean   []float64
	scale  []float64
	fitted bool
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes the per-column mean and population standard deviation of x.
// Constant columns get a scale of 1 so they map to zero.
func (s *StandardScaler) Fit(x mat.Matrix) error {
	if s.fitted {
		return ErrAlreadyFitted
	}
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return fmt.Errorf("fitting scaler on empty matrix")
	}
	s.mean = make([]float64, c)
	s.scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, x)
		m, v := stat.PopMeanVariance(col, nil)
		sd := math.Sqrt(v)
		if sd == 0 || math.IsNaN(sd) {
			sd = 1
		}
		s.mean[j] = m
		s.scale[j] = sd
	}
	s.fitted = true
	return nil
}

// Transform returns a standardized copy of x using the fitted parameters.
func (s *StandardScaler) Transform(x mat.Matrix) (*mat.Dense, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}
	r, c := x.Dims()
	if r == 0 {
		return &mat.Dense{}, nil
	}
	if c != len(s.mean) {
		return nil, fmt.Errorf("%w: scaler fitted on %d columns, got %d", ErrDimensionMismatch, len(s.mean), c)
	}
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return (v - s.mean[j]) / s.scale[j]
	}, x)
	return out, nil
}

// FitTransform fits on x and returns the standardized copy of x.
func (s *StandardScaler) FitTransform(x mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}

// Fitted reports whether Fit has run.
func (s *StandardScaler) Fitted() bool {
	return s.fitted
}

// Mean returns a copy of the fitted column means.
func (s *StandardScaler) Mean() []float64 {
	return append([]float64(nil), s.mean...)
}

// Scale returns a copy of the fitted column standard deviations.
func (s *StandardScaler) Scale() []float64 {
	return append([]float64(nil), s.scale...)
}
