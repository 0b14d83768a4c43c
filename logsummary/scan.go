package logsummary

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Scan lists regular files in dir whose name ends in suffix, sorted by name.
func Scan(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing log directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	logrus.Debugf("found %d %s files in %s", len(paths), suffix, dir)
	return paths, nil
}

// Summarize scans dir and extracts one record per matching file, in Scan
// order. Files are read concurrently; any unreadable file fails the call.
// Missing-pattern warnings are logged once all files are read, in Scan order.
func Summarize(dir, suffix string) ([]Record, error) {
	paths, err := Scan(dir, suffix)
	if err != nil {
		return nil, err
	}
	records := make([]Record, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			rec, err := readRecord(p, suffix)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, rec := range records {
		warnMissing(rec)
	}
	return records, nil
}
