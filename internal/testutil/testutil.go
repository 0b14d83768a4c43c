// Package testutil provides shared test infrastructure for cachelab
// packages: float assertions and a deterministic synthetic cache-access table.
package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CacheAccessHeader is the column layout written by the simulator's
// access-logging replacement hook.
var CacheAccessHeader = []string{
	"PC", "Memory Address", "Cache Set", "Access Type", "Hit/Miss", "Cycle Count",
	"Time Since Last Access", "Valid Status", "Dirty Status", "Cache Occupancy", "Last Eviction Cycle",
}

// CacheAccessCSV returns n synthetic access rows as CSV text. Accesses with a
// short reuse distance are hits, so roughly 70% of rows are hits and the
// label is learnable from "Time Since Last Access".
func CacheAccessCSV(n int, seed int64) string {
	rng := rand.New(rand.NewSource(seed))
	var b strings.Builder
	b.WriteString(strings.Join(CacheAccessHeader, ","))
	b.WriteByte('\n')
	cycle := 1000
	for i := 0; i < n; i++ {
		cycle += 1 + rng.Intn(40)
		since := rng.Intn(2000)
		hit := 0
		if since < 1400 {
			hit = 1
		}
		access := "READ"
		dirty := 0
		if rng.Intn(4) == 0 {
			access = "WRITE"
			dirty = 1
		}
		fmt.Fprintf(&b, "%d,%d,%d,%s,%d,%d,%d,%d,%d,%d,%d\n",
			4194304+rng.Intn(4096)*4,
			rng.Int63n(1<<32),
			rng.Intn(2048),
			access,
			hit,
			cycle,
			since,
			1,
			dirty,
			8+rng.Intn(9),
			rng.Intn(cycle),
		)
	}
	return b.String()
}

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertNear compares two float64 values with absolute tolerance.
func AssertNear(t *testing.T, name string, want, got, absTol float64) {
	t.Helper()
	if math.Abs(want-got) > absTol {
		t.Errorf("%s: got %v, want %v (tol %v)", name, got, want, absTol)
	}
}
