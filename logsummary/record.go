// Package logsummary scrapes per-run simulator logs into a fixed-column summary table.
//
// Each log file yields one Record. Counters that a log does not report are
// absent rather than zero: a field whose pattern did not match is an invalid
// Optional and is written as an empty cell. Failing to read a file is an error.
package logsummary

import "strconv"

// Columns is the fixed header of the summary table.
var Columns = []string{
	"trace_name", "replacement_policy", "hits",
	"misses", "total_accesses", "empty_column",
	"instructions", "cycles",
}

// Optional is a counter that may be absent from a log. Text holds the
// matched digits exactly as written, leading zeros included.
type Optional struct {
	Text  string
	Valid bool
}

// Some returns a present counter.
func Some(digits string) Optional {
	return Optional{Text: digits, Valid: true}
}

// String renders the counter, or "" when absent.
func (o Optional) String() string {
	if !o.Valid {
		return ""
	}
	return o.Text
}

// Uint64 parses the counter. ok is false when absent or beyond uint64.
func (o Optional) Uint64() (v uint64, ok bool) {
	if !o.Valid {
		return 0, false
	}
	v, err := strconv.ParseUint(o.Text, 10, 64)
	return v, err == nil
}

// Float64 parses the counter; values beyond uint64 lose precision but keep
// their magnitude.
func (o Optional) Float64() (v float64, ok bool) {
	if !o.Valid {
		return 0, false
	}
	v, err := strconv.ParseFloat(o.Text, 64)
	return v, err == nil
}

// Record is the summary of one simulator log.
type Record struct {
	File          string
	Trace         string
	Policy        string
	Hits          Optional
	Misses        Optional
	TotalAccesses Optional
	Instructions  Optional
	Cycles        Optional
}

// Row renders the record in Columns order. empty_column is always blank.
func (r Record) Row() []string {
	return []string{
		r.Trace,
		r.Policy,
		r.Hits.String(),
		r.Misses.String(),
		r.TotalAccesses.String(),
		"",
		r.Instructions.String(),
		r.Cycles.String(),
	}
}

// Complete reports whether every counter was found.
func (r Record) Complete() bool {
	return r.Hits.Valid && r.Misses.Valid && r.TotalAccesses.Valid &&
		r.Instructions.Valid && r.Cycles.Valid
}
