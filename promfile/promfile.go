// Package promfile exports run results in the Prometheus text exposition
// format, for a node_exporter textfile collector or any scraper that reads
// files.
package promfile

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cachelab/cachelab/analysis"
	"github.com/cachelab/cachelab/logsummary"
)

const namespace = "cachelab"

// WriteAnalysis writes one gauge per model and score, plus partition sizes.
func WriteAnalysis(path string, report *analysis.Report) error {
	reg := prometheus.NewRegistry()
	scores := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "model",
		Name:      "score",
		Help:      "Held-out classification score of a hit/miss model.",
	}, []string{"model", "metric"})
	rows := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "rows",
		Help:      "Rows in each stage of the analysis.",
	}, []string{"partition"})
	reg.MustRegister(scores, rows)

	for _, res := range report.Results {
		scores.WithLabelValues(res.Model, "accuracy").Set(res.Accuracy)
		scores.WithLabelValues(res.Model, "auc").Set(res.AUC)
		scores.WithLabelValues(res.Model, "f1").Set(res.F1)
		scores.WithLabelValues(res.Model, "precision").Set(res.Precision)
		scores.WithLabelValues(res.Model, "recall").Set(res.Recall)
	}
	rows.WithLabelValues("all").Set(float64(report.Rows))
	rows.WithLabelValues("train").Set(float64(report.TrainRows))
	rows.WithLabelValues("train_balanced").Set(float64(report.BalancedTrainRows))
	rows.WithLabelValues("test").Set(float64(report.TestRows))

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}

// WriteSummary writes the counters of every log. Absent counters are
// omitted rather than exported as zero.
func WriteSummary(path string, records []logsummary.Record) error {
	reg := prometheus.NewRegistry()
	labels := []string{"trace", "policy"}
	gauge := func(name, help string) *prometheus.GaugeVec {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "log",
			Name:      name,
			Help:      help,
		}, labels)
		reg.MustRegister(g)
		return g
	}
	hits := gauge("llc_hits", "LLC hits reported by a simulator log.")
	misses := gauge("llc_misses", "LLC misses reported by a simulator log.")
	accesses := gauge("llc_accesses", "LLC accesses reported by a simulator log.")
	instructions := gauge("instructions", "Instructions retired by CPU 0.")
	cycles := gauge("cycles", "Cycles elapsed on CPU 0.")
	incomplete := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "log",
		Name:      "incomplete_files",
		Help:      "Logs missing at least one counter.",
	})
	reg.MustRegister(incomplete)

	set := func(g *prometheus.GaugeVec, r logsummary.Record, o logsummary.Optional) {
		if v, ok := o.Float64(); ok {
			g.WithLabelValues(r.Trace, r.Policy).Set(v)
		}
	}
	for _, r := range records {
		set(hits, r, r.Hits)
		set(misses, r, r.Misses)
		set(accesses, r, r.TotalAccesses)
		set(instructions, r, r.Instructions)
		set(cycles, r, r.Cycles)
		if !r.Complete() {
			incomplete.Inc()
		}
	}

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}
