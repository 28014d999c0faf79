package runner

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cascadiacollections/fluentstatic/pkg/parser"
	"github.com/cascadiacollections/fluentstatic/pkg/styles"
	"github.com/cascadiacollections/fluentstatic/pkg/stylesheet"
	"github.com/cascadiacollections/fluentstatic/pkg/util"
)

// resultCacheSize bounds the content-addressed result cache. Sized for watch
// mode on a mid-sized component library.
const resultCacheSize = 1024

// Runner executes extraction over a project tree.
type Runner struct {
	cfg       Config
	parser    *parser.Manager
	extractor *styles.Extractor
	files     *util.FileCache
	cache     *lru.Cache[string, *styles.FileResult]
	logger    *slog.Logger
	cacheHits atomic.Int64
}

// New creates a runner. A nil logger falls back to slog.Default().
func New(cfg Config, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.Include) == 0 {
		cfg.Include = DefaultConfig().Include
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	cache, err := lru.New[string, *styles.FileResult](resultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	pm := parser.NewManager(logger)
	return &Runner{
		cfg:       cfg,
		parser:    pm,
		extractor: styles.NewExtractor(pm, cfg.Extraction, logger),
		files:     util.NewFileCache(logger),
		cache:     cache,
		logger:    logger,
	}, nil
}

// Run discovers files under rootDir, extracts them in parallel, and
// aggregates the outcome. Per-file failures are reported in the result and
// never abort sibling files.
func (r *Runner) Run(rootDir string) (*RunResult, error) {
	start := time.Now()

	files, err := DiscoverFiles(rootDir, r.cfg)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	r.logger.Info("discovery complete", "files", len(files))

	result := &RunResult{FilesDiscovered: len(files)}
	if len(files) == 0 {
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	pool := newWorkerPool(r.cfg.Concurrency, r.processFile, r.logger)
	pool.start()
	go func() {
		for _, f := range files {
			pool.submit(f)
		}
		pool.finish()
	}()

	var failures []FileError
	resultsOpen, errorsOpen := true, true
	for resultsOpen || errorsOpen {
		select {
		case res, ok := <-pool.results:
			if !ok {
				resultsOpen = false
				continue
			}
			result.Files = append(result.Files, res)
		case fe, ok := <-pool.errors:
			if !ok {
				errorsOpen = false
				continue
			}
			failures = append(failures, fe)
			r.logger.Warn("file failed", "file", fe.FilePath, "error", fe.Err)
		}
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].FilePath < result.Files[j].FilePath
	})

	var css strings.Builder
	for _, fr := range result.Files {
		result.FilesProcessed++
		if !fr.Success {
			result.FilesFailed++
			continue
		}
		if fr.Changed {
			result.FilesChanged++
		}
		result.ClassesGenerated += len(fr.Classes)
		if fr.CSS != "" {
			if css.Len() > 0 {
				css.WriteString("\n")
			}
			css.WriteString(fr.CSS)
		}
	}
	result.FilesFailed += len(failures)
	result.CSS = css.String()
	result.CacheHits = int(r.cacheHits.Load())
	result.DurationMs = time.Since(start).Milliseconds()

	if err := r.writeOutputs(result); err != nil {
		return result, err
	}

	r.logger.Info("extraction complete",
		"processed", result.FilesProcessed,
		"changed", result.FilesChanged,
		"failed", result.FilesFailed,
		"classes", result.ClassesGenerated,
		"ms", result.DurationMs)

	return result, nil
}

// processFile extracts one file, serving repeated content from the
// content-addressed cache (watch mode re-runs hit this constantly).
func (r *Runner) processFile(filePath string, reg *stylesheet.Registry) (*styles.FileResult, error) {
	source, err := r.files.Read(filePath)
	if err != nil {
		return nil, err
	}

	key := cacheKey(filePath, source)
	if cached, ok := r.cache.Get(key); ok {
		r.cacheHits.Add(1)
		return cached, nil
	}

	res := r.extractor.ExtractFile(filePath, source, reg)
	r.cache.Add(key, res)
	return res, nil
}

// writeOutputs applies --write and --out-css side effects.
func (r *Runner) writeOutputs(result *RunResult) error {
	if r.cfg.Write {
		if err := r.WriteChanged(result.Files); err != nil {
			return err
		}
	}
	if r.cfg.CSSOutPath != "" && result.CSS != "" {
		if err := os.WriteFile(r.cfg.CSSOutPath, []byte(result.CSS+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write stylesheet: %w", err)
		}
	}
	return nil
}

// WriteChanged writes every changed file result back in place. All in-place
// writes must go through here: it drops the file cache's mapping for each
// rewritten file, so later reads in the same process see the new content
// instead of the stale mapping.
func (r *Runner) WriteChanged(files []*styles.FileResult) error {
	for _, fr := range files {
		if !fr.Changed {
			continue
		}
		if err := os.WriteFile(fr.FilePath, []byte(fr.Code), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", fr.FilePath, err)
		}
		r.files.Forget(fr.FilePath)
	}
	return nil
}

// ExtractOne runs the core on a single in-memory source, for the MCP surface
// and tests.
func (r *Runner) ExtractOne(filePath string, source []byte) *styles.FileResult {
	reg := stylesheet.New(stylesheet.DefaultOptions())
	return r.extractor.ExtractFile(filePath, source, reg)
}

// Close releases parser and file-cache resources.
func (r *Runner) Close() {
	r.parser.Close()
	r.files.Close()
}

func cacheKey(filePath string, source []byte) string {
	h := fnv.New64a()
	h.Write(source)
	return fmt.Sprintf("%s:%x", filePath, h.Sum64())
}
