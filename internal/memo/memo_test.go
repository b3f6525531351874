package memo

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func counter(calls *int) func() (int, error) {
	return func() (int, error) {
		*calls++
		return *calls, nil
	}
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
	_, err = New(-1)
	assert.Error(t, err)
}

func TestDoCachesByKey(t *testing.T) {
	cache, err := New(8)
	require.NoError(t, err)

	calls := 0
	key := Key{Fn: "summary", Version: 1}

	v, err := Do(cache, key, counter(&calls))
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = Do(cache, key, counter(&calls))
	require.NoError(t, err)
	assert.Equal(t, 1, v, "identical key is served from the cache")
	assert.Equal(t, 1, calls)

	v, err = Do(cache, Key{Fn: "summary", Version: 2}, counter(&calls))
	require.NoError(t, err)
	assert.Equal(t, 2, v, "a new dataset version recomputes")

	v, err = Do(cache, Key{Fn: "summary", Version: 1, Args: "EURO"}, counter(&calls))
	require.NoError(t, err)
	assert.Equal(t, 3, v, "different arguments recompute")

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(3), stats.Misses)
	assert.Equal(t, 3, stats.Size)
}

func TestPurge(t *testing.T) {
	cache, err := New(8)
	require.NoError(t, err)

	calls := 0
	key := Key{Fn: "regions", Version: 1}
	_, _ = Do(cache, key, counter(&calls))
	require.Equal(t, 1, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())

	v, err := Do(cache, key, counter(&calls))
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestErrorsAreNotCached(t *testing.T) {
	cache, err := New(8)
	require.NoError(t, err)

	boom := errors.New("boom")
	key := Key{Fn: "summary", Version: 1}

	_, err = Do(cache, key, func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cache.Len())

	v, err := Do(cache, key, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestEviction(t *testing.T) {
	cache, err := New(2)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := Do(cache, Key{Fn: "f", Args: string(rune('a' + i))}, func() (int, error) { return i, nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cache.Len())
}

func TestConcurrentMissesComputeOnce(t *testing.T) {
	cache, err := New(8)
	require.NoError(t, err)

	var calls atomic.Int32
	release := make(chan struct{})
	key := Key{Fn: "choropleth", Version: 1, Args: "new-cases"}

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Do(cache, key, func() (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}
