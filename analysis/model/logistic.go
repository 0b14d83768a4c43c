package model

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// LogisticRegression is an L2-regularized linear classifier with an intercept.
// The objective is sum(log-loss) + ||w||²/(2C); the intercept is not penalized.
type LogisticRegression struct {
	C       float64
	MaxIter int

	weights   []float64
	intercept float64
}

// NewLogisticRegression returns an unfitted model with regularization C.
func NewLogisticRegression(c float64) *LogisticRegression {
	if c <= 0 {
		c = 1
	}
	return &LogisticRegression{C: c, MaxIter: 100}
}

// Name implements Classifier.
func (m *LogisticRegression) Name() string { return "Logistic Regression" }

// Fit minimizes the penalized log-loss with L-BFGS.
func (m *LogisticRegression) Fit(x *mat.Dense, y []int) error {
	if err := checkTraining(x, y); err != nil {
		return err
	}
	r, c := x.Dims()
	// Labels as ±1 so the margin is sign*z.
	sign := make([]float64, r)
	for i, l := range y {
		sign[i] = -1
		if l == 1 {
			sign[i] = 1
		}
	}
	invC := 1 / m.C

	// params = [w_0..w_{c-1}, b]
	objective := func(params []float64) float64 {
		w, b := params[:c], params[c]
		loss := 0.5 * invC * floats.Dot(w, w)
		for i := 0; i < r; i++ {
			z := floats.Dot(w, x.RawRowView(i)) + b
			loss += logOnePlusExp(-sign[i] * z)
		}
		return loss
	}
	gradient := func(grad, params []float64) {
		w, b := params[:c], params[c]
		for j := range grad {
			grad[j] = 0
		}
		for i := 0; i < r; i++ {
			row := x.RawRowView(i)
			z := floats.Dot(w, row) + b
			// d/dz log(1+exp(-s z)) = -s * sigmoid(-s z)
			g := -sign[i] * sigmoid(-sign[i]*z)
			floats.AddScaled(grad[:c], g, row)
			grad[c] += g
		}
		floats.AddScaled(grad[:c], invC, w)
	}

	problem := optimize.Problem{Func: objective, Grad: gradient}
	settings := &optimize.Settings{
		GradientThreshold: 1e-4,
		MajorIterations:   m.MaxIter,
	}
	result, err := optimize.Minimize(problem, make([]float64, c+1), settings, &optimize.LBFGS{})
	if result == nil {
		return fmt.Errorf("fitting logistic regression: %w", err)
	}
	if err != nil {
		logrus.Warnf("logistic regression did not converge cleanly (%s): %v", result.Status, err)
	}
	m.weights = append([]float64(nil), result.X[:c]...)
	m.intercept = result.X[c]
	logrus.Debugf("logistic regression: status=%s loss=%.6f iterations=%d", result.Status, result.F, result.Stats.MajorIterations)
	return nil
}

// PredictProba implements ProbabilisticClassifier.
func (m *LogisticRegression) PredictProba(x *mat.Dense) ([]float64, error) {
	if m.weights == nil {
		return nil, ErrNotFitted
	}
	if err := checkWidth(x, len(m.weights)); err != nil {
		return nil, err
	}
	r, _ := x.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = sigmoid(floats.Dot(m.weights, x.RawRowView(i)) + m.intercept)
	}
	return out, nil
}

// Predict implements Classifier.
func (m *LogisticRegression) Predict(x *mat.Dense) ([]int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return threshold(proba), nil
}

// Coefficients returns copies of the fitted weights and intercept.
func (m *LogisticRegression) Coefficients() ([]float64, float64) {
	return append([]float64(nil), m.weights...), m.intercept
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// logOnePlusExp computes log(1+exp(t)) without overflow.
func logOnePlusExp(t float64) float64 {
	if t > 0 {
		return t + math.Log1p(math.Exp(-t))
	}
	return math.Log1p(math.Exp(t))
}
