package analysis

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cachelab/cachelab/analysis/model"
)

// Renderer draws the pipeline's figures. Each method returns the path it wrote.
type Renderer interface {
	Correlation(corr *CorrelationMatrix) (string, error)
	ClassBalance(counts []ClassCount) (string, error)
	ROC(res *Result) (string, error)
	Radar(profile *ClassProfile) (string, error)
}

// Stages exposes the intermediate partitions of a run for inspection.
type Stages struct {
	Dataset  *Dataset
	Split    Split
	Train    Partition
	Balanced Partition
	Test     Partition
	Scaler   *StandardScaler
	// TrainScaled and TestScaled share the scaler fitted on Balanced.
	TrainScaled Partition
	TestScaled  Partition
}

// PrepareDataset runs split, balance and scale on a loaded dataset.
// The test partition is never seen by SMOTE or by Scaler.Fit.
func PrepareDataset(ds *Dataset, cfg Config, rngs *PartitionedRNG) (*Stages, error) {
	split, err := TrainTestSplit(ds.Rows(), cfg.TestFraction, rngs.ForSubsystem(SubsystemSplit))
	if err != nil {
		return nil, err
	}
	train := ds.Subset(split.Train)
	test := ds.Subset(split.Test)

	balanced, err := SMOTE{K: cfg.SMOTENeighbors}.Resample(train, rngs.ForSubsystem(SubsystemSMOTE))
	if err != nil {
		return nil, fmt.Errorf("balancing training partition: %w", err)
	}

	scaler := NewStandardScaler()
	trainX, err := scaler.FitTransform(balanced.X)
	if err != nil {
		return nil, fmt.Errorf("scaling training partition: %w", err)
	}
	testX, err := scaler.Transform(test.X)
	if err != nil {
		return nil, fmt.Errorf("scaling test partition: %w", err)
	}

	logrus.Infof("split %d rows: train=%d balanced=%d test=%d", ds.Rows(), train.Rows(), balanced.Rows(), test.Rows())
	return &Stages{
		Dataset:     ds,
		Split:       split,
		Train:       train,
		Balanced:    balanced,
		Test:        test,
		Scaler:      scaler,
		TrainScaled: Partition{X: trainX, Y: balanced.Y},
		TestScaled:  Partition{X: testX, Y: test.Y},
	}, nil
}

// Run executes the full analysis: exploration, preparation, the model bank
// and the radar profile. r may be nil to skip figures.
func Run(cfg Config, r Renderer) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rngs := NewPartitionedRNG(NewRunKey(cfg.Seed))

	ds, err := LoadDataset(cfg.Dataset, cfg.loadOptions())
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       uuid.NewString(),
		Dataset:     cfg.Dataset,
		Seed:        cfg.Seed,
		Rows:        ds.Rows(),
		Features:    ds.Features,
		ClassCounts: ClassCounts(ds.Y),
	}

	if r != nil {
		corr, err := Correlation(ds)
		if err != nil {
			return nil, err
		}
		renderTo(report, "correlation", func() (string, error) { return r.Correlation(corr) })
		renderTo(report, "class balance", func() (string, error) { return r.ClassBalance(report.ClassCounts) })
	}

	stages, err := PrepareDataset(ds, cfg, rngs)
	if err != nil {
		return nil, err
	}
	report.TrainRows = stages.Train.Rows()
	report.BalancedTrainRows = stages.Balanced.Rows()
	report.TestRows = stages.Test.Rows()

	opts := model.DefaultOptions()
	opts.Neighbors = cfg.KNNNeighbors
	opts.MaxDepth = cfg.TreeMaxDepth
	opts.MinSamplesSplit = cfg.TreeMinSplit
	opts.Rand = rngs.ForSubsystem(SubsystemModel)
	for _, key := range cfg.Models {
		clf, err := model.New(key, opts)
		if err != nil {
			return nil, err
		}
		logrus.Infof("evaluating %s", clf.Name())
		res, err := Evaluate(clf, stages.TrainScaled, stages.TestScaled)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, res)
		if r != nil && res.ROC != nil {
			renderTo(report, res.Model+" ROC", func() (string, error) { return r.ROC(res) })
		}
	}

	profile := ClassMeans(ds)
	report.Profile = profile
	if r != nil {
		if profile.Complete() {
			renderTo(report, "radar", func() (string, error) { return r.Radar(profile) })
		} else {
			logrus.Warnf("radar chart skipped: dataset lacks hits or misses")
		}
	}
	return report, nil
}

// renderTo draws one figure. Rendering failures are logged, not fatal:
// the metrics are the run's primary output.
func renderTo(report *Report, what string, draw func() (string, error)) {
	path, err := draw()
	if err != nil {
		logrus.Errorf("rendering %s: %v", what, err)
		return
	}
	logrus.Infof("wrote %s figure to %s", what, path)
	report.Figures = append(report.Figures, path)
}
