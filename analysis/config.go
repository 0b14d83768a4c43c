package analysis

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cachelab/cachelab/analysis/model"
)

// Config parameterizes one analysis run.
type Config struct {
	Dataset            string   `mapstructure:"dataset" yaml:"dataset" validate:"required"`
	Delimiter          string   `mapstructure:"delimiter" yaml:"delimiter" validate:"len=1"`
	LabelColumn        string   `mapstructure:"label_column" yaml:"label_column" validate:"required"`
	CategoricalColumns []string `mapstructure:"categorical_columns" yaml:"categorical_columns"`
	TestFraction       float64  `mapstructure:"test_fraction" yaml:"test_fraction" validate:"gt=0,lt=1"`
	Seed               int64    `mapstructure:"seed" yaml:"seed"`
	SMOTENeighbors     int      `mapstructure:"smote_neighbors" yaml:"smote_neighbors" validate:"min=1"`
	KNNNeighbors       int      `mapstructure:"knn_neighbors" yaml:"knn_neighbors" validate:"min=1"`
	TreeMaxDepth       int      `mapstructure:"tree_max_depth" yaml:"tree_max_depth" validate:"min=0"`
	TreeMinSplit       int      `mapstructure:"tree_min_samples_split" yaml:"tree_min_samples_split" validate:"min=2"`
	Models             []string `mapstructure:"models" yaml:"models" validate:"min=1"`
	PlotDir            string   `mapstructure:"plot_dir" yaml:"plot_dir"`
	PlotFormat         string   `mapstructure:"plot_format" yaml:"plot_format"`
	Report             string   `mapstructure:"report" yaml:"report,omitempty"`
	MetricsFile        string   `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
}

// DefaultConfig returns the settings of the reference analysis.
func DefaultConfig() Config {
	return Config{
		Dataset:            "cache_access_data.csv",
		Delimiter:          ",",
		LabelColumn:        DefaultLabelColumn,
		CategoricalColumns: []string{DefaultAccessTypeColumn},
		TestFraction:       0.4,
		Seed:               42,
		SMOTENeighbors:     DefaultSMOTENeighbors,
		KNNNeighbors:       5,
		TreeMinSplit:       2,
		Models:             []string{model.LogisticKey, model.TreeKey, model.KNNKey},
		PlotDir:            "plots",
		PlotFormat:         "png",
	}
}

var validPlotFormats = map[string]bool{"png": true, "svg": true}

var structValidator = newStructValidator()

// newStructValidator reports fields by their config key rather than Go name.
func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct checks the `validate` tags of a config struct and reports
// the first violation by config key.
func ValidateStruct(s interface{}) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Errorf("invalid %s %v: must satisfy %s=%s", fe.Field(), fe.Value(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("%s %s", fe.Field(), fe.Tag())
	}
	return err
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return err
	}
	for _, m := range c.Models {
		if !model.IsValid(m) {
			return fmt.Errorf("unknown model %q; valid: %v", m, model.Names())
		}
	}
	if c.PlotDir != "" && !validPlotFormats[c.PlotFormat] {
		return fmt.Errorf("unknown plot_format %q; valid: png, svg", c.PlotFormat)
	}
	return nil
}

func (c *Config) loadOptions() LoadOptions {
	opts := LoadOptions{LabelColumn: c.LabelColumn, CategoricalColumns: c.CategoricalColumns}
	if r := []rune(c.Delimiter); len(r) == 1 {
		opts.Comma = r[0]
	}
	return opts
}
