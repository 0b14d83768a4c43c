package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cachelab/cachelab/analysis/model"
)

// Result holds one classifier's scores on the test partition.
type Result struct {
	Model     string     `yaml:"model"`
	Accuracy  float64    `yaml:"accuracy"`
	AUC       float64    `yaml:"auc"`
	F1        float64    `yaml:"f1"`
	Precision float64    `yaml:"precision"`
	Recall    float64    `yaml:"recall"`
	ROC       []ROCPoint `yaml:"-"`
	// ScoresFromLabels is true when the model had no probability output
	// and its hard predictions were used as ROC scores.
	ScoresFromLabels bool `yaml:"scores_from_labels,omitempty"`
}

// Evaluate fits clf on train, predicts test and scores the predictions.
// A test partition holding a single class yields NaN AUC and no ROC curve.
func Evaluate(clf model.Classifier, train, test Partition) (*Result, error) {
	if err := clf.Fit(train.X, train.Y); err != nil {
		return nil, fmt.Errorf("fitting %s: %w", clf.Name(), err)
	}
	pred, err := clf.Predict(test.X)
	if err != nil {
		return nil, fmt.Errorf("predicting with %s: %w", clf.Name(), err)
	}

	res := &Result{Model: clf.Name()}
	var scores []float64
	if pc, ok := clf.(model.ProbabilisticClassifier); ok {
		scores, err = pc.PredictProba(test.X)
		if err != nil {
			return nil, fmt.Errorf("scoring with %s: %w", clf.Name(), err)
		}
	} else {
		res.ScoresFromLabels = true
		scores = make([]float64, len(pred))
		for i, p := range pred {
			scores[i] = float64(p)
		}
	}

	conf, err := NewConfusion(test.Y, pred)
	if err != nil {
		return nil, err
	}
	res.Accuracy = conf.Accuracy()
	res.Precision = conf.Precision()
	res.Recall = conf.Recall()
	res.F1 = conf.F1()

	curve, err := ROCCurve(test.Y, scores)
	switch {
	case errors.Is(err, ErrSingleClass):
		logrus.Warnf("%s: AUC undefined, test partition holds a single class", clf.Name())
		res.AUC = math.NaN()
	case err != nil:
		return nil, err
	default:
		res.ROC = curve
		res.AUC = AUC(curve)
	}
	return res, nil
}
