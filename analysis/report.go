package analysis

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Report summarizes one analysis run.
type Report struct {
	RunID             string        `yaml:"run_id"`
	Dataset           string        `yaml:"dataset"`
	Seed              int64         `yaml:"seed"`
	Rows              int           `yaml:"rows"`
	Features          []string      `yaml:"features"`
	ClassCounts       []ClassCount  `yaml:"class_counts"`
	TrainRows         int           `yaml:"train_rows"`
	BalancedTrainRows int           `yaml:"balanced_train_rows"`
	TestRows          int           `yaml:"test_rows"`
	Results           []*Result     `yaml:"results"`
	Profile           *ClassProfile `yaml:"profile,omitempty"`
	Figures           []string      `yaml:"figures,omitempty"`
}

// Print writes per-model metrics in a human-readable block.
func (r *Report) Print(w io.Writer) {
	for _, res := range r.Results {
		fmt.Fprintf(w, "Evaluating %s\n", res.Model)
		fmt.Fprintf(w, "  Accuracy: %.4f\n", res.Accuracy)
		fmt.Fprintf(w, "  AUC Score: %.4f\n", res.AUC)
		fmt.Fprintf(w, "  F1 Score: %.4f\n", res.F1)
		fmt.Fprintf(w, "  Precision: %.4f\n", res.Precision)
		fmt.Fprintf(w, "  Recall: %.4f\n", res.Recall)
	}
}

// SaveYAML writes the report to path, replacing any existing file.
func (r *Report) SaveYAML(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
