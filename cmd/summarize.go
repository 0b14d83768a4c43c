package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachelab/cachelab/logsummary"
	"github.com/cachelab/cachelab/promfile"
)

// summarizeCmd collects simulator logs into a summary table
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize LLC and IPC counters from simulator logs into a CSV",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := LoadSettings(cfgFile, cmd.Flags(), summarizeFlagKeys)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		if err := runSummarize(settings.Summarize, os.Stdout); err != nil {
			logrus.Fatalf("Summary failed: %v", err)
		}
	},
}

func runSummarize(cfg SummarizeConfig, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	records, err := logsummary.Summarize(cfg.Dir, cfg.Suffix)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logrus.Warnf("no %s files in %s; writing header only", cfg.Suffix, cfg.Dir)
	}
	incomplete := 0
	for _, r := range records {
		if !r.Complete() {
			incomplete++
		}
	}
	if incomplete > 0 {
		logrus.Warnf("%d of %d logs are missing counters", incomplete, len(records))
	}

	if err := logsummary.WriteCSV(cfg.Output, records); err != nil {
		return err
	}
	fmt.Fprintf(out, "Summary CSV generated: %s\n", cfg.Output)

	if cfg.XLSX != "" {
		if err := logsummary.WriteXLSX(cfg.XLSX, records); err != nil {
			return err
		}
		fmt.Fprintf(out, "Summary XLSX generated: %s\n", cfg.XLSX)
	}
	if cfg.MetricsFile != "" {
		if err := promfile.WriteSummary(cfg.MetricsFile, records); err != nil {
			return err
		}
	}
	return nil
}
