package promfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cachelab/cachelab/analysis"
	"github.com/cachelab/cachelab/logsummary"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteAnalysis_ExportsScoresAndRows(t *testing.T) {
	report := &analysis.Report{
		Rows:              10,
		TrainRows:         6,
		BalancedTrainRows: 8,
		TestRows:          4,
		Results: []*analysis.Result{
			{Model: "Decision Tree", Accuracy: 0.75, AUC: 0.5, F1: 0.8, Precision: 1, Recall: 0.25},
		},
	}
	path := filepath.Join(t.TempDir(), "analysis.prom")
	require.NoError(t, WriteAnalysis(path, report))

	out := readFile(t, path)
	assert.Contains(t, out, `cachelab_model_score{metric="accuracy",model="Decision Tree"} 0.75`)
	assert.Contains(t, out, `cachelab_model_score{metric="recall",model="Decision Tree"} 0.25`)
	assert.Contains(t, out, `cachelab_dataset_rows{partition="train_balanced"} 8`)
}

func TestWriteSummary_SkipsAbsentCounters(t *testing.T) {
	// GIVEN one complete record and one without LLC counters
	records := []logsummary.Record{
		{Trace: "gcc", Policy: "lru", Hits: logsummary.Some("80"), Misses: logsummary.Some("20"),
			TotalAccesses: logsummary.Some("100"), Instructions: logsummary.Some("500"), Cycles: logsummary.Some("333")},
		{Trace: "mcf", Policy: "ship", Instructions: logsummary.Some("42"), Cycles: logsummary.Some("47")},
	}
	path := filepath.Join(t.TempDir(), "summary.prom")
	require.NoError(t, WriteSummary(path, records))

	out := readFile(t, path)
	assert.Contains(t, out, `cachelab_log_llc_hits{policy="lru",trace="gcc"} 80`)
	assert.Contains(t, out, `cachelab_log_instructions{policy="ship",trace="mcf"} 42`)
	assert.NotContains(t, out, `cachelab_log_llc_hits{policy="ship",trace="mcf"}`)
	assert.Contains(t, out, "cachelab_log_incomplete_files 1")
}

func TestWriteAnalysis_UnwritablePath_ReturnsError(t *testing.T) {
	err := WriteAnalysis(filepath.Join(t.TempDir(), "missing", "a.prom"), &analysis.Report{})
	assert.Error(t, err)
}
