package runner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadiacollections/fluentstatic/pkg/styles"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	r := newTestRunner(t, DefaultConfig())
	w, err := NewWatcher(r, DefaultWatchOptions(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })
	return w
}

func TestWatcher_Matches(t *testing.T) {
	w := newTestWatcher(t)
	w.rootDir = "/project"

	assert.True(t, w.matches("/project/src/button.tsx"))
	assert.True(t, w.matches("/project/app.js"))
	assert.False(t, w.matches("/project/README.md"))
	assert.False(t, w.matches("/project/node_modules/x/index.ts"))
	assert.False(t, w.matches("/project/src/button.test.tsx"))
	assert.False(t, w.matches("/project/.git/config"))
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w := newTestWatcher(t)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcher_ReExtractsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "button.tsx")
	require.NoError(t, os.WriteFile(path, []byte(plainSrc), 0o644))

	r := newTestRunner(t, DefaultConfig())
	opts := DefaultWatchOptions()
	opts.DebounceMs = 10
	w, err := NewWatcher(r, opts, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	results := make(chan string, 4)
	w.OnResult = func(res *styles.FileResult) {
		results <- res.CSS
	}

	require.NoError(t, w.Start(dir))
	require.NoError(t, os.WriteFile(path, []byte(buttonSrc), 0o644))

	select {
	case css := <-results:
		assert.Contains(t, css, "color:red")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for re-extraction")
	}
}
