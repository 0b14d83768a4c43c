package analysis

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/cachelab/cachelab/internal/testutil"
)

type recordingRenderer struct {
	calls []string
}

func (r *recordingRenderer) Correlation(_ *CorrelationMatrix) (string, error) {
	r.calls = append(r.calls, "correlation")
	return "correlation.png", nil
}

func (r *recordingRenderer) ClassBalance(_ []ClassCount) (string, error) {
	r.calls = append(r.calls, "class_balance")
	return "class_balance.png", nil
}

func (r *recordingRenderer) ROC(res *Result) (string, error) {
	r.calls = append(r.calls, "roc:"+res.Model)
	return "roc.png", nil
}

func (r *recordingRenderer) Radar(_ *ClassProfile) (string, error) {
	r.calls = append(r.calls, "radar")
	return "radar.png", nil
}

func syntheticConfig(t *testing.T, rows int) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Dataset = testutil.WriteFile(t, "access.csv", testutil.CacheAccessCSV(rows, 11))
	return cfg
}

func countLabels(y []int) map[int]int {
	out := map[int]int{}
	for _, l := range y {
		out[l]++
	}
	return out
}

func TestPrepareDataset_BalancesTrainOnlyAndScalesWithTrainStats(t *testing.T) {
	// GIVEN an imbalanced synthetic dataset
	cfg := syntheticConfig(t, 300)
	ds, err := LoadDataset(cfg.Dataset, cfg.loadOptions())
	require.NoError(t, err)

	// WHEN prepared
	st, err := PrepareDataset(ds, cfg, NewPartitionedRNG(NewRunKey(cfg.Seed)))
	require.NoError(t, err)

	// THEN the 60/40 split covers the dataset
	assert.Equal(t, 120, st.Test.Rows())
	assert.Equal(t, 180, st.Train.Rows())

	// THEN the balanced training set has equal classes
	bal := countLabels(st.Balanced.Y)
	assert.Equal(t, bal[0], bal[1])
	assert.Greater(t, st.Balanced.Rows(), st.Train.Rows())

	// THEN the test partition is exactly the test rows of the dataset
	want := ds.Subset(st.Split.Test)
	assert.Equal(t, want.Y, st.Test.Y)
	assert.Equal(t, countLabels(want.Y), countLabels(st.TestScaled.Y))
	assert.True(t, mat.Equal(want.X, st.Test.X))

	// THEN scaled training columns have mean 0 and std 1
	r, c := st.TrainScaled.X.Dims()
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, st.TrainScaled.X)
		m, v := stat.PopMeanVariance(col, nil)
		testutil.AssertNear(t, ds.Features[j]+" mean", 0, m, 1e-9)
		if v > 0 {
			testutil.AssertNear(t, ds.Features[j]+" var", 1, v, 1e-9)
		}
	}

	// THEN the scaler parameters are the balanced training statistics
	for j := 0; j < c; j++ {
		mat.Col(col, j, st.Balanced.X)
		testutil.AssertNear(t, "fitted mean", stat.Mean(col, nil), st.Scaler.Mean()[j], 1e-9)
	}
	assert.ErrorIs(t, st.Scaler.Fit(st.Test.X), ErrAlreadyFitted)
}

func TestPrepareDataset_SameSeed_IdenticalStages(t *testing.T) {
	cfg := syntheticConfig(t, 120)
	ds, err := LoadDataset(cfg.Dataset, cfg.loadOptions())
	require.NoError(t, err)

	a, err := PrepareDataset(ds, cfg, NewPartitionedRNG(NewRunKey(5)))
	require.NoError(t, err)
	b, err := PrepareDataset(ds, cfg, NewPartitionedRNG(NewRunKey(5)))
	require.NoError(t, err)

	assert.Equal(t, a.Split, b.Split)
	assert.True(t, mat.Equal(a.TrainScaled.X, b.TrainScaled.X))
}

func TestRun_EvaluatesEveryModelAndRendersFigures(t *testing.T) {
	// GIVEN the default configuration over a synthetic dataset
	cfg := syntheticConfig(t, 250)
	r := &recordingRenderer{}

	// WHEN run
	report, err := Run(cfg, r)
	require.NoError(t, err)

	// THEN each model is scored and every figure drawn once
	require.Len(t, report.Results, 3)
	assert.Equal(t, "Logistic Regression", report.Results[0].Model)
	assert.Equal(t, "Decision Tree", report.Results[1].Model)
	assert.Equal(t, "K-Nearest Neighbors", report.Results[2].Model)
	assert.Equal(t, []string{
		"correlation", "class_balance",
		"roc:Logistic Regression", "roc:Decision Tree", "roc:K-Nearest Neighbors",
		"radar",
	}, r.calls)
	assert.Len(t, report.Figures, 6)
	assert.Equal(t, 250, report.Rows)
	assert.Equal(t, 100, report.TestRows)
	assert.NotEmpty(t, report.RunID)

	// THEN the reuse-distance signal is learnable by the linear and tree models
	assert.Greater(t, report.Results[0].Accuracy, 0.8)
	assert.Greater(t, report.Results[1].Accuracy, 0.8)
}

func TestRun_NilRenderer_SkipsFigures(t *testing.T) {
	cfg := syntheticConfig(t, 100)
	cfg.Models = []string{"knn"}

	report, err := Run(cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Figures)
	assert.Len(t, report.Results, 1)
}

func TestRun_SemicolonDelimitedDataset(t *testing.T) {
	// GIVEN the synthetic dataset written with ';' separators
	cfg := DefaultConfig()
	cfg.Delimiter = ";"
	cfg.Models = []string{"tree"}
	cfg.TreeMaxDepth = 3
	cfg.TreeMinSplit = 10
	csv := strings.ReplaceAll(testutil.CacheAccessCSV(150, 3), ",", ";")
	cfg.Dataset = testutil.WriteFile(t, "access.csv", csv)

	// WHEN run
	report, err := Run(cfg, nil)

	// THEN every row is parsed and the tree is scored
	require.NoError(t, err)
	assert.Equal(t, 150, report.Rows)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "Decision Tree", report.Results[0].Model)
}

func TestRun_InvalidConfig_ReturnsError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Models = []string{"svm"}
	_, err := Run(cfg, nil)
	assert.ErrorContains(t, err, "unknown model")
}

func TestRun_MissingDataset_ReturnsError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dataset = filepath.Join(t.TempDir(), "absent.csv")
	_, err := Run(cfg, nil)
	assert.Error(t, err)
}

func TestReport_PrintAndSaveYAML(t *testing.T) {
	// GIVEN a finished run
	cfg := syntheticConfig(t, 100)
	cfg.Models = []string{"tree"}
	report, err := Run(cfg, nil)
	require.NoError(t, err)

	// WHEN printed
	var buf bytes.Buffer
	report.Print(&buf)

	// THEN every metric line appears
	out := buf.String()
	for _, s := range []string{"Evaluating Decision Tree", "Accuracy:", "AUC Score:", "F1 Score:", "Precision:", "Recall:"} {
		assert.Contains(t, out, s)
	}

	// WHEN saved as YAML
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, report.SaveYAML(path))

	// THEN it decodes back with the same results
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, report.RunID, decoded["run_id"])
	assert.Len(t, decoded["results"], 1)
}
