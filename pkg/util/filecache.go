package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// FileCache provides read access to source files via memory mapping, with a
// graceful fallback to os.ReadFile when mmap fails (pipes, special files,
// zero-length files on some platforms).
//
// Mapped files stay open until Close(). Thread-safe: parallel reads use the
// read lock, loads take the write lock. Slices returned by Read alias the
// mapping, so Forget and Close must not run while a caller still holds a
// slice for that file; callers finish processing a file before invalidating
// it.
type FileCache struct {
	mutex  sync.RWMutex
	files  map[string]*mappedFile
	logger *slog.Logger

	hits      int
	misses    int
	fallbacks int
}

type mappedFile struct {
	data mmap.MMap
	file *os.File
	// copied holds the fallback contents when mmap was not possible.
	copied []byte
}

func (mf *mappedFile) bytes() []byte {
	if mf.copied != nil {
		return mf.copied
	}
	return mf.data
}

// NewFileCache creates an empty cache. A nil logger falls back to slog.Default().
func NewFileCache(logger *slog.Logger) *FileCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileCache{
		files:  make(map[string]*mappedFile),
		logger: logger,
	}
}

// Read returns the contents of filePath, mapping it on first access.
//
// The returned slice aliases the mapping and must not be modified, or
// retained past a Forget or Close for the same file. Callers that rewrite
// sources should copy before mutating.
func (fc *FileCache) Read(filePath string) ([]byte, error) {
	fc.mutex.RLock()
	mf, ok := fc.files[filePath]
	if ok {
		fc.mutex.RUnlock()
		fc.mutex.Lock()
		fc.hits++
		fc.mutex.Unlock()
		return mf.bytes(), nil
	}
	fc.mutex.RUnlock()

	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	if mf, ok = fc.files[filePath]; ok {
		fc.hits++
		return mf.bytes(), nil
	}
	fc.misses++

	mf, err := fc.load(filePath)
	if err != nil {
		return nil, err
	}
	fc.files[filePath] = mf
	return mf.bytes(), nil
}

func (fc *FileCache) load(filePath string) (*mappedFile, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}
	if info.Size() == 0 {
		f.Close()
		return &mappedFile{copied: []byte{}}, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		fc.fallbacks++
		fc.logger.Debug("mmap failed, falling back to ReadFile", "file", filePath, "error", err)
		copied, rerr := os.ReadFile(filePath)
		if rerr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, rerr)
		}
		return &mappedFile{copied: copied}, nil
	}

	return &mappedFile{data: data, file: f}, nil
}

// Forget drops a cached file, unmapping it if mapped. Used after in-place
// rewrites and by watch mode when a file changes on disk. The mapping is
// released immediately: callers must not hold a slice from a prior Read of
// this file across the call.
func (fc *FileCache) Forget(filePath string) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	mf, ok := fc.files[filePath]
	if !ok {
		return
	}
	delete(fc.files, filePath)
	fc.release(mf, filePath)
}

// Size returns the number of cached files.
func (fc *FileCache) Size() int {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	return len(fc.files)
}

// Stats returns cache counters for logging.
func (fc *FileCache) Stats() FileCacheStats {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	return FileCacheStats{Hits: fc.hits, Misses: fc.misses, Fallbacks: fc.fallbacks, Files: len(fc.files)}
}

// FileCacheStats contains cache counters.
type FileCacheStats struct {
	Hits      int
	Misses    int
	Fallbacks int
	Files     int
}

// Close unmaps every cached file. The cache is reusable afterwards (empty).
func (fc *FileCache) Close() error {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	for path, mf := range fc.files {
		fc.release(mf, path)
	}
	fc.files = make(map[string]*mappedFile)
	return nil
}

func (fc *FileCache) release(mf *mappedFile, path string) {
	if mf.data != nil {
		if err := mf.data.Unmap(); err != nil {
			fc.logger.Warn("failed to unmap file", "file", path, "error", err)
		}
	}
	if mf.file != nil {
		mf.file.Close()
	}
}
