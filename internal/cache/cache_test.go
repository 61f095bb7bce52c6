package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/RaihanSardarUI/Twitter/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simulatedClock lets tests advance time manually.
type simulatedClock struct {
	mutex sync.Mutex
	now   time.Time
}

func newSimulatedClock() *simulatedClock {
	return &simulatedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (clock *simulatedClock) Now() time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()

	return clock.now
}

func (clock *simulatedClock) Advance(d time.Duration) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()

	clock.now = clock.now.Add(d)
}

func Test_GetAfterSet_ReturnsPayloadWithinTTL(t *testing.T) {
	clock := newSimulatedClock()
	store := cache.NewWithClock[string](clock.Now)

	store.Set("k", "payload")

	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "payload", got)

	clock.Advance(cache.TTL - time.Second)
	got, ok = store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "payload", got)
}

func Test_Get_UnseenKeyIsAbsent(t *testing.T) {
	store := cache.New[string]()

	_, ok := store.Get("never-set")
	assert.False(t, ok)
}

func Test_Get_EntryAbsentOnceAgeReachesTTL(t *testing.T) {
	clock := newSimulatedClock()
	store := cache.NewWithClock[string](clock.Now)

	store.Set("k", "payload")

	clock.Advance(cache.TTL)
	_, ok := store.Get("k")
	assert.False(t, ok)
}

func Test_Set_OverwriteRestampsCreationTime(t *testing.T) {
	clock := newSimulatedClock()
	store := cache.NewWithClock[string](clock.Now)

	store.Set("k", "old")
	clock.Advance(cache.TTL / 2)
	store.Set("k", "new")
	clock.Advance(cache.TTL / 2)

	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func Test_InvalidateAll_DropsEveryKey(t *testing.T) {
	store := cache.New[int]()
	store.Set("a", 1)
	store.Set("b", 2)
	store.Set("c", 3)
	require.Equal(t, 3, store.Len())

	store.InvalidateAll()

	assert.Equal(t, 0, store.Len())
	for _, key := range []string{"a", "b", "c"} {
		_, ok := store.Get(key)
		assert.False(t, ok, "key %s should be absent after InvalidateAll", key)
	}
}

func Test_Key_SensitivityFlagSeparatesEntries(t *testing.T) {
	url := "https://x.com/user/status/123"

	assert.NotEqual(t, cache.Key(url, false), cache.Key(url, true))
	assert.Equal(t, cache.Key(url, true), cache.Key(url, true))
	assert.NotEqual(t, cache.Key(url, false), cache.Key("https://x.com/user/status/124", false))
}

func Test_ConcurrentReadersAndWriters(t *testing.T) {
	store := cache.New[int]()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := cache.Key("https://x.com/user/status/1", n%2 == 0)
			for j := 0; j < 250; j++ {
				store.Set(key, n)
				if got, ok := store.Get(key); ok {
					// No partially visible entries; any observed value
					// must be one a writer actually stored.
					assert.GreaterOrEqual(t, got, 0)
					assert.Less(t, got, 16)
				}
			}
		}(i)
	}
	wg.Wait()
}
