package cookies

import (
	"fmt"
	"os"
	"sync"

	"github.com/RaihanSardarUI/Twitter/pkg/logger"
	"github.com/mengzhuo/cookiestxt"
)

var log = logger.Get("Cookies")

type (
	Config struct {
		FilePath string `yaml:"cookie_file" env:"COOKIE_FILE" env-default:"cookies.txt"`
		WatchDir string `yaml:"watch_dir" env:"COOKIE_WATCH_DIR" env-default:"."`
	}

	// Store owns the Netscape-format cookie file handed to the extraction
	// backend. All mutation goes through this type so that interested
	// parties (the result cache, via InvalidateAll) can be notified of
	// every credential change.
	Store struct {
		mutex     sync.Mutex
		path      string
		listeners []func()
	}
)

func NewStore(config Config) *Store {
	return &Store{path: config.FilePath}
}

// OnChange registers a listener invoked after every successful credential
// mutation (upload or clear). Listeners must not block.
func (store *Store) OnChange(listener func()) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	store.listeners = append(store.listeners, listener)
}

// FilePath returns the path of the cookie file and whether it currently
// exists on disk.
func (store *Store) FilePath() (string, bool) {
	if _, err := os.Stat(store.path); err != nil {
		return store.path, false
	}

	return store.path, true
}

func (store *Store) Present() bool {
	_, ok := store.FilePath()
	return ok
}

// Count parses the cookie file and reports how many cookie entries it
// holds. A missing file counts as zero without error.
func (store *Store) Count() (int, error) {
	handle, err := os.Open(store.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to open cookie file: %w", err)
	}
	defer handle.Close()

	parsed, err := cookiestxt.Parse(handle)
	if err != nil {
		return 0, fmt.Errorf("cookie file is malformed: %w", err)
	}

	return len(parsed), nil
}

// SaveFromBrowserJSON converts a browser cookie export (either a bare JSON
// array, or an object with a 'cookies' property) to Netscape format and
// replaces the cookie file with it. Returns the number of source cookies
// converted. Registered listeners fire on success.
func (store *Store) SaveFromBrowserJSON(raw []byte) (int, error) {
	exported, err := decodeBrowserExport(raw)
	if err != nil {
		return 0, err
	}
	if len(exported) == 0 {
		return 0, fmt.Errorf("no cookies provided")
	}

	content, entries := renderNetscape(exported)
	if entries == 0 {
		return 0, fmt.Errorf("no valid cookies in provided export")
	}

	if err := os.WriteFile(store.path, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write cookie file: %w", err)
	}

	log.Emit(logger.SUCCESS, "Saved %d cookies (%d entries) to %s\n", len(exported), entries, store.path)
	store.notifyChanged()

	return len(exported), nil
}

// Clear removes the cookie file. Clearing an already-absent file is not an
// error, but listeners fire either way since callers signalled an
// authentication-state change.
func (store *Store) Clear() error {
	if err := os.Remove(store.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cookie file: %w", err)
	}

	log.Emit(logger.REMOVE, "Cleared stored cookies at %s\n", store.path)
	store.notifyChanged()

	return nil
}

func (store *Store) notifyChanged() {
	store.mutex.Lock()
	listeners := make([]func(), len(store.listeners))
	copy(listeners, store.listeners)
	store.mutex.Unlock()

	for _, listener := range listeners {
		listener()
	}
}
