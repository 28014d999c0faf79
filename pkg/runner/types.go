// Package runner drives extraction across a project: file discovery, a
// bounded worker pool, result aggregation, optional output writing, and watch
// mode. The extraction core stays per-file and stateless; everything
// project-shaped lives here.
package runner

import (
	"github.com/cascadiacollections/fluentstatic/pkg/styles"
)

// Config controls a project run.
type Config struct {
	// Include patterns select source files, doublestar syntax, relative to
	// the run root.
	Include []string
	// Exclude patterns filter files and whole directories.
	Exclude []string
	// Concurrency bounds the worker pool. Zero means DefaultConcurrency.
	Concurrency int
	// Write rewrites transformed sources in place.
	Write bool
	// CSSOutPath, when set, receives the concatenated stylesheet.
	CSSOutPath string
	// Extraction configures the core (heuristics, theme).
	Extraction styles.Options
}

// DefaultConcurrency bounds parallel file processing. File extraction is
// embarrassingly parallel, but a small fixed pool keeps memory flat on large
// projects.
const DefaultConcurrency = 10

// DefaultConfig returns the standard run configuration.
func DefaultConfig() Config {
	return Config{
		Include: []string{
			"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx",
		},
		Exclude: []string{
			"**/node_modules/**",
			"**/dist/**",
			"**/build/**",
			"**/*.d.ts",
			"**/*.test.*",
			"**/*.spec.*",
		},
		Concurrency: DefaultConcurrency,
		Extraction:  styles.DefaultOptions(),
	}
}

// FileError pairs a failed file with its error.
type FileError struct {
	FilePath string
	Err      error
}

// RunResult aggregates one project run.
type RunResult struct {
	// Files holds per-file outcomes in sorted path order.
	Files []*styles.FileResult
	// CSS is the concatenated stylesheet, per-file sections in sorted path
	// order so output is deterministic regardless of worker scheduling.
	CSS string

	FilesDiscovered  int
	FilesProcessed   int
	FilesChanged     int
	FilesFailed      int
	ClassesGenerated int
	CacheHits        int
	DurationMs       int64
}
