package treestat

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Mode selects what a walk accumulates.
type Mode int

const (
	// ModeCount accumulates the number of matching files.
	ModeCount Mode = iota
	// ModeSize accumulates the byte size of matching files.
	ModeSize
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeCount:
		return "count"
	case ModeSize:
		return "size"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Options configures a tree walk and CLI behavior.
type Options struct {
	// Path is the directory to walk. Empty means the current directory.
	Path string
	// Extensions are name suffixes to include (empty = all), tested in order.
	Extensions []string
	// Recursive descends into subdirectories.
	Recursive bool
	// Symlinks treats symbolic links as transparent to their targets.
	Symlinks bool
	// Depth is the maximum traversal depth when recursive (0=unlimited).
	Depth int
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Diagnostics receives one line per skipped path, if set.
	Diagnostics io.Writer
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents output format (table or json).
	Output string
}

// Result holds the outcome of a single walk.
type Result struct {
	// Mode is what Total accumulates.
	Mode Mode `json:"mode"`
	// Total is the file count or byte sum, depending on Mode.
	Total int64 `json:"total"`
	// Files is the number of matching files.
	Files int64 `json:"files"`
	// Bytes is the cumulative size of matching files (size mode only).
	Bytes int64 `json:"bytes"`
	// Skipped lists the paths that could not be read.
	Skipped []Skipped `json:"skipped"`
	// Elapsed is the total time taken for the walk.
	Elapsed time.Duration `json:"elapsed"`
}

// Complete reports whether no path was skipped, i.e. Total is exact rather
// than a lower bound.
func (r *Result) Complete() bool {
	return len(r.Skipped) == 0
}

// collector aggregates walk results using a mutex, so the progress reporter
// can read running totals while the walk is in flight.
type collector struct {
	mu      sync.Mutex
	mode    Mode
	files   int64
	bytes   int64
	skipped []Skipped
}

func newCollector(mode Mode) *collector {
	return &collector{
		mode:    mode,
		skipped: make([]Skipped, 0),
	}
}

// add records one matching file of the given size.
func (c *collector) add(size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files++
	c.bytes += size
}

// skip records a path whose contribution is treated as zero.
func (c *collector) skip(s Skipped) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.skipped = append(c.skipped, s)
}

// snapshot returns the running file count and byte sum.
func (c *collector) snapshot() (int64, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.files, c.bytes
}

// finalize produces the Result from the collected data.
func (c *collector) finalize() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	skipped := make([]Skipped, len(c.skipped))
	copy(skipped, c.skipped)

	sort.SliceStable(skipped, func(i, j int) bool {
		return skipped[i].Path < skipped[j].Path
	})

	total := c.files
	if c.mode == ModeSize {
		total = c.bytes
	}

	return &Result{
		Mode:    c.mode,
		Total:   total,
		Files:   c.files,
		Bytes:   c.bytes,
		Skipped: skipped,
	}
}

// skipOrFail records a permission or not-found failure, writes its diagnostic
// line to diagnostics if set, and returns nil so the walk continues. Any other
// failure is returned as a *walkError.
func (c *collector) skipOrFail(path string, err error, diagnostics io.Writer) error {
	kind := Classify(err)
	if kind == KindUnclassified {
		return &walkError{path: path, err: err}
	}

	skipped := Skipped{Path: path, Kind: kind, Err: err}
	c.skip(skipped)

	if diagnostics != nil {
		fmt.Fprintln(diagnostics, skipped.String())
	}

	return nil
}
