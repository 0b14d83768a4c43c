package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachelab/cachelab/analysis"
	"github.com/cachelab/cachelab/promfile"
	"github.com/cachelab/cachelab/render"
)

// analyzeCmd runs the cache-access classification study
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Explore a cache access dataset and evaluate hit/miss classifiers",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := LoadSettings(cfgFile, cmd.Flags(), analyzeFlagKeys)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		if err := runAnalyze(settings.Analyze, os.Stdout); err != nil {
			logrus.Fatalf("Analysis failed: %v", err)
		}
		logrus.Info("Analysis complete.")
	},
}

func runAnalyze(cfg analysis.Config, out io.Writer) error {
	var renderer analysis.Renderer
	if cfg.PlotDir != "" {
		fr, err := render.NewFileRenderer(cfg.PlotDir, cfg.PlotFormat)
		if err != nil {
			return err
		}
		renderer = fr
	}

	report, err := analysis.Run(cfg, renderer)
	if err != nil {
		return err
	}
	report.Print(out)

	if cfg.Report != "" {
		if err := report.SaveYAML(cfg.Report); err != nil {
			return err
		}
		fmt.Fprintf(out, "Report written: %s\n", cfg.Report)
	}
	if cfg.MetricsFile != "" {
		if err := promfile.WriteAnalysis(cfg.MetricsFile, report); err != nil {
			return err
		}
	}
	return nil
}
