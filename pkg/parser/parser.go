// Package parser wraps tree-sitter parsing of TypeScript/TSX/JavaScript
// sources behind pooled, concurrency-safe parser management.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/cascadiacollections/fluentstatic/pkg/util"
)

// poolKey uniquely identifies a parser pool (language + TSX variant).
type poolKey struct {
	lang  Language
	isTSX bool
}

// Manager owns per-grammar parser pools with lazy initialization.
//
// Trees returned by Parse/ParseFile are owned by the caller and must be
// closed via tree.Close(). The Manager itself must be closed via Close().
// All methods are safe for concurrent use.
type Manager struct {
	pools  map[poolKey]*parserPool
	mutex  sync.RWMutex
	logger *slog.Logger

	parsesCalled int
}

// NewManager creates a parser manager. A nil logger falls back to slog.Default().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:  make(map[poolKey]*parserPool),
		logger: logger,
	}
}

// Parse parses source with the given grammar. isTSX selects the TSX grammar
// variant and is only meaningful for TypeScript.
//
// Partial trees (with error nodes) are still returned: extraction is
// best-effort and a broken region of a file must not block the rest.
func (m *Manager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	m.mutex.Lock()
	m.parsesCalled++
	m.mutex.Unlock()

	pool, err := m.getOrCreatePool(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}

	if tree.RootNode().HasError() {
		m.logger.Debug("parse tree contains errors", "language", lang.String())
	}

	return tree, nil
}

// ParseFile parses source after detecting the dialect from filePath.
func (m *Manager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return m.Parse(source, lang, IsTSXFile(filePath))
}

// Close frees all pooled parsers. The Manager cannot be used afterwards.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.logger.Debug("closing parser manager", "parses_called", m.parsesCalled)
	for _, pool := range m.pools {
		if pool != nil {
			pool.close()
		}
	}
	m.pools = make(map[poolKey]*parserPool)
	return nil
}

// Stats reports parser usage counters.
func (m *Manager) Stats() Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	created := 0
	for _, pool := range m.pools {
		created += pool.createdCount()
	}
	return Stats{ParsersCreated: created, ParsesCalled: m.parsesCalled}
}

// Stats contains parser usage counters.
type Stats struct {
	ParsersCreated int
	ParsesCalled   int
}

// getOrCreatePool returns the pool for (lang, isTSX), creating it on first use.
// Double-checked locking: the fast path takes only the read lock.
func (m *Manager) getOrCreatePool(lang Language, isTSX bool) (*parserPool, error) {
	key := poolKey{lang: lang, isTSX: isTSX}

	m.mutex.RLock()
	pool, exists := m.pools[key]
	m.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if pool, exists = m.pools[key]; exists {
		return pool, nil
	}

	langPtr, err := languagePointer(lang, isTSX)
	if err != nil {
		return nil, err
	}

	pool = newParserPool(lang, langPtr, isTSX, util.OptimalPoolSize(), m.logger)
	m.pools[key] = pool

	m.logger.Debug("created parser pool",
		"language", lang.String(),
		"isTSX", isTSX,
		"maxSize", util.OptimalPoolSize())

	return pool, nil
}

// languagePointer returns the tree-sitter grammar pointer for a dialect.
func languagePointer(lang Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTypeScript:
		if isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}
