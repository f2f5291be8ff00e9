package cache_test

import (
	"errors"
	"testing"
	"time"

	"project-tracker/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rc := cache.NewRedisCache(cache.RedisConfig{
		Addr:        mr.Addr(),
		DialTimeout: time.Second,
	})
	t.Cleanup(func() { rc.Close() })

	return cache.New(rc), mr
}

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)

	require.NoError(t, c.Set("report:abc", entry{Name: "monday", Count: 3}, time.Minute))

	var got entry
	require.NoError(t, c.Get("report:abc", &got))
	assert.Equal(t, "monday", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestCache_MissIsNotAFailure(t *testing.T) {
	c, _ := newTestCache(t)

	var got entry
	for i := 0; i < 10; i++ {
		err := c.Get("absent", &got)
		require.ErrorIs(t, err, cache.ErrCacheMiss)
	}
}

func TestCache_DeletePattern(t *testing.T) {
	c, _ := newTestCache(t)

	require.NoError(t, c.Set("report:a", entry{}, time.Minute))
	require.NoError(t, c.Set("report:b", entry{}, time.Minute))
	require.NoError(t, c.Set("projects:a", entry{}, time.Minute))

	require.NoError(t, c.DeletePattern("report:*"))

	var got entry
	assert.ErrorIs(t, c.Get("report:a", &got), cache.ErrCacheMiss)
	assert.ErrorIs(t, c.Get("report:b", &got), cache.ErrCacheMiss)
	assert.NoError(t, c.Get("projects:a", &got))
}

func TestCache_BreakerOpensWhenRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	var got entry
	var sawDown bool
	for i := 0; i < 10; i++ {
		err := c.Get("key", &got)
		require.Error(t, err)
		if errors.Is(err, cache.ErrCacheDown) {
			sawDown = true
		}
	}
	assert.True(t, sawDown, "breaker should open after repeated failures")
}
