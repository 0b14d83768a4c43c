package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cachelab/cachelab/analysis"
	"github.com/cachelab/cachelab/logsummary"
)

// EnvPrefix prefixes environment overrides, e.g. CACHELAB_ANALYZE_SEED.
const EnvPrefix = "CACHELAB"

// SummarizeConfig parameterizes the log summary.
type SummarizeConfig struct {
	Dir         string `mapstructure:"dir" yaml:"dir" validate:"required"`
	Suffix      string `mapstructure:"suffix" yaml:"suffix"`
	Output      string `mapstructure:"output" yaml:"output" validate:"required"`
	XLSX        string `mapstructure:"xlsx" yaml:"xlsx,omitempty"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
}

// Validate checks that all fields are usable.
func (c *SummarizeConfig) Validate() error {
	return analysis.ValidateStruct(c)
}

// Settings is the full layered configuration.
type Settings struct {
	Analyze   analysis.Config `mapstructure:"analyze" yaml:"analyze"`
	Summarize SummarizeConfig `mapstructure:"summarize" yaml:"summarize"`
}

// analyzeFlagKeys maps config keys to the analyze flag that overrides them.
var analyzeFlagKeys = map[string]string{
	"analyze.dataset":                "dataset",
	"analyze.delimiter":              "delimiter",
	"analyze.label_column":           "label-column",
	"analyze.categorical_columns":    "categorical",
	"analyze.test_fraction":          "test-fraction",
	"analyze.seed":                   "seed",
	"analyze.smote_neighbors":        "smote-neighbors",
	"analyze.knn_neighbors":          "knn-neighbors",
	"analyze.tree_max_depth":         "tree-max-depth",
	"analyze.tree_min_samples_split": "tree-min-samples-split",
	"analyze.models":                 "models",
	"analyze.plot_dir":               "plot-dir",
	"analyze.plot_format":            "plot-format",
	"analyze.report":                 "report",
	"analyze.metrics_file":           "metrics-file",
}

// summarizeFlagKeys maps config keys to the summarize flag that overrides them.
var summarizeFlagKeys = map[string]string{
	"summarize.dir":          "dir",
	"summarize.suffix":       "suffix",
	"summarize.output":       "output",
	"summarize.xlsx":         "xlsx",
	"summarize.metrics_file": "metrics-file",
}

func addAnalyzeFlags(fs *pflag.FlagSet) {
	d := analysis.DefaultConfig()
	fs.String("dataset", d.Dataset, "Cache access CSV")
	fs.String("delimiter", d.Delimiter, "Field delimiter of the dataset")
	fs.String("label-column", d.LabelColumn, "Binary hit/miss column")
	fs.StringSlice("categorical", d.CategoricalColumns, "Columns to label-encode")
	fs.Float64("test-fraction", d.TestFraction, "Share of rows held out for testing")
	fs.Int64("seed", d.Seed, "Seed for the split, SMOTE and tree feature order")
	fs.Int("smote-neighbors", d.SMOTENeighbors, "Neighbours used by SMOTE interpolation")
	fs.Int("knn-neighbors", d.KNNNeighbors, "k for the K-Nearest Neighbors classifier")
	fs.Int("tree-max-depth", d.TreeMaxDepth, "Decision tree depth limit; 0 is unlimited")
	fs.Int("tree-min-samples-split", d.TreeMinSplit, "Smallest node the decision tree splits")
	fs.StringSlice("models", d.Models, "Models to evaluate (logistic, tree, knn)")
	fs.String("plot-dir", d.PlotDir, "Directory for figures; empty disables plotting")
	fs.String("plot-format", d.PlotFormat, "Figure format (png, svg)")
	fs.String("report", d.Report, "Optional YAML report path")
	fs.String("metrics-file", "", "Optional Prometheus textfile for model scores")
}

func addSummarizeFlags(fs *pflag.FlagSet) {
	fs.String("dir", ".", "Directory of simulator logs")
	fs.String("suffix", logsummary.DefaultSuffix, "Log file suffix")
	fs.String("output", "summary.csv", "Summary CSV path")
	fs.String("xlsx", "", "Optional summary XLSX path")
	fs.String("metrics-file", "", "Optional Prometheus textfile for per-log counters")
}

func setDefaults(v *viper.Viper) {
	d := analysis.DefaultConfig()
	v.SetDefault("analyze.dataset", d.Dataset)
	v.SetDefault("analyze.delimiter", d.Delimiter)
	v.SetDefault("analyze.label_column", d.LabelColumn)
	v.SetDefault("analyze.categorical_columns", d.CategoricalColumns)
	v.SetDefault("analyze.test_fraction", d.TestFraction)
	v.SetDefault("analyze.seed", d.Seed)
	v.SetDefault("analyze.smote_neighbors", d.SMOTENeighbors)
	v.SetDefault("analyze.knn_neighbors", d.KNNNeighbors)
	v.SetDefault("analyze.tree_max_depth", d.TreeMaxDepth)
	v.SetDefault("analyze.tree_min_samples_split", d.TreeMinSplit)
	v.SetDefault("analyze.models", d.Models)
	v.SetDefault("analyze.plot_dir", d.PlotDir)
	v.SetDefault("analyze.plot_format", d.PlotFormat)
	v.SetDefault("analyze.report", d.Report)
	v.SetDefault("analyze.metrics_file", "")
	v.SetDefault("summarize.dir", ".")
	v.SetDefault("summarize.suffix", logsummary.DefaultSuffix)
	v.SetDefault("summarize.output", "summary.csv")
	v.SetDefault("summarize.xlsx", "")
	v.SetDefault("summarize.metrics_file", "")
}

// LoadSettings layers defaults, the config file, CACHELAB_* environment
// variables and changed flags (highest). flagKeys maps config keys to flag
// names in fs. An explicit config file must exist;
// ./cachelab.yaml is read only if present. Unknown keys in a config file are
// rejected so typos surface as errors.
func LoadSettings(configFile string, fs *pflag.FlagSet, flagKeys map[string]string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("cachelab")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if fs != nil {
		for key, name := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	var s Settings
	if err := v.UnmarshalExact(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &s, nil
}
