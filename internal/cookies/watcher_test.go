package cookies_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RaihanSardarUI/Twitter/internal/cookies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watcherTestTimeout = 10 * time.Second

// startWatcher runs the given watcher until the test completes, failing the
// test if Run reports an error.
func startWatcher(t *testing.T, watcher *cookies.Watcher) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(watcherTestTimeout):
			t.Error("watcher did not stop after context cancellation")
		}
	})

	// Give the underlying filesystem watch a moment to establish before
	// the test starts dropping files.
	time.Sleep(250 * time.Millisecond)
}

func newWatchedStore(t *testing.T) (*cookies.Store, cookies.Config) {
	config := cookies.Config{
		FilePath: filepath.Join(t.TempDir(), "cookies.txt"),
		WatchDir: t.TempDir(),
	}

	return cookies.NewStore(config), config
}

func writeDropFile(t *testing.T, watchDir string, content string) string {
	path := filepath.Join(watchDir, "raw_cookies.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fileGone(path string) func() bool {
	return func() bool {
		_, err := os.Stat(path)
		return os.IsNotExist(err)
	}
}

func Test_Watcher_ConvertsDroppedExportAndRemovesSource(t *testing.T) {
	store, config := newWatchedStore(t)
	startWatcher(t, cookies.NewWatcher(config, store))

	dropPath := writeDropFile(t, config.WatchDir, browserExportArray)

	require.Eventually(t, store.Present, watcherTestTimeout, 50*time.Millisecond,
		"dropped export was never converted into the cookie file")
	assert.Eventually(t, fileGone(dropPath), watcherTestTimeout, 50*time.Millisecond,
		"source file must be removed after conversion")

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func Test_Watcher_IngestsPreExistingDropFileOnStartup(t *testing.T) {
	store, config := newWatchedStore(t)

	// The export is already sitting in the directory before the watcher
	// starts; no filesystem event will ever fire for it.
	dropPath := writeDropFile(t, config.WatchDir, browserExportArray)
	startWatcher(t, cookies.NewWatcher(config, store))

	require.Eventually(t, store.Present, watcherTestTimeout, 50*time.Millisecond)
	assert.Eventually(t, fileGone(dropPath), watcherTestTimeout, 50*time.Millisecond)
}

func Test_Watcher_LeavesInvalidDropFileContentsUnstored(t *testing.T) {
	store, config := newWatchedStore(t)

	writeDropFile(t, config.WatchDir, `{not json`)
	startWatcher(t, cookies.NewWatcher(config, store))

	// The startup ingest runs before the event loop; once the watcher is
	// up, a malformed export must not have produced a cookie file.
	assert.False(t, store.Present())

	count, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func Test_Watcher_IgnoresUnrelatedFiles(t *testing.T) {
	store, config := newWatchedStore(t)
	startWatcher(t, cookies.NewWatcher(config, store))

	other := filepath.Join(config.WatchDir, "notes.json")
	require.NoError(t, os.WriteFile(other, []byte(browserExportArray), 0644))

	time.Sleep(time.Second)
	assert.False(t, store.Present())
	assert.FileExists(t, other)
}
