package cookies

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RaihanSardarUI/Twitter/pkg/logger"
	"github.com/rjeczalik/notify"
)

const (
	dropFileName = "raw_cookies.json"

	// Repeated notify events for the same write are collapsed within this
	// window.
	debounceWindow = 2 * time.Second

	// Give the writing process a moment to finish before the file is read.
	settleDelay = 500 * time.Millisecond
)

// Watcher observes a directory for dropped browser cookie exports and
// pushes them into the credential store, removing the source file once
// converted. This keeps all file-system awareness out of the store itself;
// the store only ever sees an update call.
type Watcher struct {
	store         *Store
	watchDir      string
	lastProcessed time.Time
}

func NewWatcher(config Config, store *Store) *Watcher {
	return &Watcher{store: store, watchDir: config.WatchDir}
}

// Run watches the configured directory until the provided context is
// cancelled. A pre-existing drop file is ingested immediately on startup.
func (watcher *Watcher) Run(ctx context.Context) error {
	events := make(chan notify.EventInfo, 8)
	if err := notify.Watch(watcher.watchDir, events, notify.Create, notify.Write); err != nil {
		return err
	}
	defer notify.Stop(events)

	log.Emit(logger.NEW, "Watching %s for %s\n", watcher.watchDir, dropFileName)

	if existing := filepath.Join(watcher.watchDir, dropFileName); fileHasContent(existing) {
		watcher.ingestDropFile(existing)
	}

	for {
		select {
		case event := <-events:
			if !strings.EqualFold(filepath.Base(event.Path()), dropFileName) {
				continue
			}
			if time.Since(watcher.lastProcessed) < debounceWindow {
				continue
			}
			watcher.lastProcessed = time.Now()

			select {
			case <-time.After(settleDelay):
			case <-ctx.Done():
				return nil
			}

			if fileHasContent(event.Path()) {
				watcher.ingestDropFile(event.Path())
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (watcher *Watcher) ingestDropFile(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Emit(logger.ERROR, "Failed to read dropped cookie file %s: %s\n", path, err.Error())
		return
	}

	count, err := watcher.store.SaveFromBrowserJSON(raw)
	if err != nil {
		log.Emit(logger.ERROR, "Dropped cookie file %s could not be converted: %s\n", path, err.Error())
		return
	}

	log.Emit(logger.SUCCESS, "Converted %d cookies from dropped file %s\n", count, path)
	if err := os.Remove(path); err != nil {
		log.Emit(logger.WARNING, "Failed to clean up %s after conversion: %s\n", path, err.Error())
	}
}

func fileHasContent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}
