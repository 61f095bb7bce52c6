package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// TTL is the fixed lifetime of a cache entry. Expiry is enforced lazily on
// read; there is no background eviction.
const TTL = time.Hour

type (
	entry[T any] struct {
		payload   T
		createdAt time.Time
	}

	// Store is a mutex-guarded in-memory mapping from request key to a
	// cached result record. Entries older than TTL are treated as absent.
	// A Store must be constructed via New (or NewWithClock) and handed to
	// request handlers explicitly rather than kept as package state.
	Store[T any] struct {
		mutex   sync.Mutex
		entries map[string]entry[T]
		now     func() time.Time
	}
)

func New[T any]() *Store[T] {
	return NewWithClock[T](time.Now)
}

// NewWithClock constructs a Store reading the current time from the
// provided function. Exists so expiry behaviour can be tested against a
// simulated clock.
func NewWithClock[T any](now func() time.Time) *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry[T]),
		now:     now,
	}
}

// Get returns the payload stored at the given key. The boolean is false if
// the key has never been seen or the entry's age has reached the TTL.
func (store *Store[T]) Get(key string) (T, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	e, ok := store.entries[key]
	if !ok {
		return *new(T), false
	}

	if store.now().Sub(e.createdAt) >= TTL {
		delete(store.entries, key)
		return *new(T), false
	}

	return e.payload, true
}

// Set inserts or overwrites the payload at the given key, stamping the
// current time as its creation instant.
func (store *Store[T]) Set(key string, payload T) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	store.entries[key] = entry[T]{payload: payload, createdAt: store.now()}
}

// InvalidateAll drops every entry. Must be called whenever the
// authentication cookie state changes, as cached results may encode
// access-level dependent content which cannot be allowed to leak across
// credential changes.
func (store *Store[T]) InvalidateAll() {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	store.entries = make(map[string]entry[T])
}

// Len reports the number of entries currently held, including any that
// have expired but not yet been dropped by a read.
func (store *Store[T]) Len() int {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	return len(store.entries)
}

// Key derives the deterministic cache key for a normalized URL fetched
// under the given content-sensitivity declaration. The flag participates
// in the key so the same URL requested with and without elevated access is
// cached separately.
func Key(url string, sensitiveContent bool) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s|sensitive=%t", url, sensitiveContent)))
	return hex.EncodeToString(sum[:])
}
