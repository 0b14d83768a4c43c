package logsummary

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// TraceMarker separates the trace name from the policy in log file names:
	// <trace>.champsimtrace.<policy>.log
	TraceMarker = ".champsimtrace"
	// DefaultSuffix is the extension of simulator logs.
	DefaultSuffix = ".log"
)

var (
	llcTotalLine = regexp.MustCompile(`LLC TOTAL\s+ACCESS:\s+(\d+)\s+HIT:\s+(\d+)\s+MISS:\s+(\d+)`)
	cpuIPCLine   = regexp.MustCompile(`CPU 0 cumulative IPC: .* instructions: (\d+) cycles: (\d+)`)
)

// ParseFilename splits a log file name into trace and policy. The trace is
// the text before the first TraceMarker, or the whole name when the marker is
// absent; the policy is the text after the last "<TraceMarker>." (or the
// whole name) with every occurrence of suffix removed.
func ParseFilename(name, suffix string) (trace, policy string) {
	base := filepath.Base(name)
	trace = base
	if i := strings.Index(base, TraceMarker); i >= 0 {
		trace = base[:i]
	}
	policy = base
	if i := strings.LastIndex(base, TraceMarker+"."); i >= 0 {
		policy = base[i+len(TraceMarker)+1:]
	}
	policy = strings.ReplaceAll(policy, suffix, "")
	return trace, policy
}

// Extract builds a Record from a file name and the log text and warns about
// each pattern that did not match.
func Extract(name, content, suffix string) Record {
	rec := parse(name, content, suffix)
	warnMissing(rec)
	return rec
}

// parse applies the patterns without logging. Only the first match of each
// pattern is used, and matched digits are kept verbatim.
func parse(name, content, suffix string) Record {
	rec := Record{File: name}
	rec.Trace, rec.Policy = ParseFilename(name, suffix)

	if m := llcTotalLine.FindStringSubmatch(content); m != nil {
		rec.TotalAccesses = Some(m[1])
		rec.Hits = Some(m[2])
		rec.Misses = Some(m[3])
	}
	if m := cpuIPCLine.FindStringSubmatch(content); m != nil {
		rec.Instructions = Some(m[1])
		rec.Cycles = Some(m[2])
	}
	return rec
}

func warnMissing(rec Record) {
	if !rec.TotalAccesses.Valid {
		logrus.Warnf("%s: no LLC TOTAL line; hits, misses and total_accesses left blank", rec.File)
	}
	if !rec.Instructions.Valid {
		logrus.Warnf("%s: no CPU 0 cumulative IPC line; instructions and cycles left blank", rec.File)
	}
}

// ExtractFile reads one log and extracts its record.
func ExtractFile(path, suffix string) (Record, error) {
	rec, err := readRecord(path, suffix)
	if err != nil {
		return Record{}, err
	}
	warnMissing(rec)
	return rec, nil
}

func readRecord(path, suffix string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading log: %w", err)
	}
	return parse(filepath.Base(path), string(data), suffix), nil
}
