package runner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/cascadiacollections/fluentstatic/pkg/styles"
	"github.com/cascadiacollections/fluentstatic/pkg/stylesheet"
)

// WatchOptions configures watch mode.
type WatchOptions struct {
	// DebounceMs groups rapid saves of the same file into one extraction.
	// Zero means 200.
	DebounceMs int
}

// DefaultWatchOptions returns the standard debounce window.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{DebounceMs: 200}
}

// Watcher re-extracts files as they change on disk. Each changed file is
// processed through the runner's cache-aware path and the outcome handed to
// the OnResult callback.
type Watcher struct {
	runner  *Runner
	watcher *fsnotify.Watcher
	options WatchOptions
	logger  *slog.Logger

	// OnResult receives each re-extraction outcome. Called from the watcher
	// goroutine; nil is allowed.
	OnResult func(*styles.FileResult)

	rootDir string
	reg     *stylesheet.Registry

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher on top of a runner.
func NewWatcher(r *Runner, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = DefaultWatchOptions().DebounceMs
	}

	return &Watcher{
		runner:  r,
		watcher: fw,
		options: options,
		logger:  logger,
		// Watch-mode extraction is serial, so one registry serves every
		// re-extraction.
		reg:            stylesheet.New(stylesheet.DefaultOptions()),
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching rootDir and its subdirectories.
func (w *Watcher) Start(rootDir string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	w.rootDir = absRoot

	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	w.logger.Info("watching for changes", "root", absRoot)
	go w.eventLoop()
	return nil
}

// Stop shuts the watcher down. Idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	filePath := event.Name

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		// New directories need a watch of their own; fsnotify is not
		// recursive.
		if info, err := os.Stat(filePath); err == nil && info.IsDir() {
			if !w.excluded(filePath) {
				if err := w.watcher.Add(filePath); err != nil {
					w.logger.Warn("failed to watch directory", "path", filePath, "error", err)
				}
			}
			return
		}
		if w.matches(filePath) {
			w.debounceExtract(filePath)
		}

	case event.Op&fsnotify.Write == fsnotify.Write:
		if w.matches(filePath) {
			w.debounceExtract(filePath)
		}

	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		w.runner.files.Forget(filePath)
	}
}

// debounceExtract schedules extraction after the debounce window, replacing
// any pending timer for the same file.
func (w *Watcher) debounceExtract(filePath string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[filePath]; exists {
		timer.Stop()
	}

	w.debounceTimers[filePath] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.extractFile(filePath)

			w.debounceMu.Lock()
			delete(w.debounceTimers, filePath)
			w.debounceMu.Unlock()
		},
	)
}

func (w *Watcher) extractFile(filePath string) {
	// The mmap mapping predates this change; refresh before re-reading.
	w.runner.files.Forget(filePath)

	res, err := w.runner.processFile(filePath, w.reg)
	if err != nil {
		w.logger.Warn("re-extraction failed", "file", filePath, "error", err)
		return
	}

	w.logger.Info("re-extracted",
		"file", filePath,
		"changed", res.Changed,
		"classes", len(res.Classes))

	if w.runner.cfg.Write && res.Changed {
		if err := os.WriteFile(filePath, []byte(res.Code), 0o644); err != nil {
			w.logger.Warn("failed to write file", "file", filePath, "error", err)
		}
		w.runner.files.Forget(filePath)
	}

	if w.OnResult != nil {
		w.OnResult(res)
	}
}

// matches reports whether filePath is in scope for the run configuration.
func (w *Watcher) matches(filePath string) bool {
	rel := w.relPath(filePath)
	if w.excluded(filePath) {
		return false
	}
	for _, pattern := range w.runner.cfg.Include {
		if matched, _ := doublestar.PathMatch(pattern, rel); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) excluded(path string) bool {
	rel := w.relPath(path)
	for _, pattern := range w.runner.cfg.Exclude {
		if matched, _ := doublestar.PathMatch(pattern, rel); matched {
			return true
		}
	}
	// Dot directories never hold project sources.
	base := filepath.Base(path)
	if len(base) > 1 && base[0] == '.' {
		return true
	}
	return false
}

func (w *Watcher) relPath(path string) string {
	if w.rootDir == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
