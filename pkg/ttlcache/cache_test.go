package ttlcache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/floorida/backend/pkg/ttlcache"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestGetOrFetch_CachesWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)}
	cache := ttlcache.New[string](clock.Now)
	ctx := context.Background()

	fetches := 0
	fetch := func(context.Context) (string, error) {
		fetches++
		return "profile", nil
	}

	v, err := cache.GetOrFetch(ctx, "user-1", 5*time.Minute, fetch)
	require.NoError(t, err)
	require.Equal(t, "profile", v)

	clock.advance(4 * time.Minute)
	_, err = cache.GetOrFetch(ctx, "user-1", 5*time.Minute, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, fetches)

	clock.advance(2 * time.Minute)
	_, err = cache.GetOrFetch(ctx, "user-1", 5*time.Minute, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, fetches)
}

func TestGetOrFetch_KeysAreIndependent(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	cache := ttlcache.New[int](clock.Now)
	ctx := context.Background()

	a, err := cache.GetOrFetch(ctx, "a", time.Minute, func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	b, err := cache.GetOrFetch(ctx, "b", time.Minute, func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	require.Equal(t, 1, a)
	require.Equal(t, 2, b)
}

func TestGetOrFetch_ErrorIsNotCached(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	cache := ttlcache.New[string](clock.Now)
	ctx := context.Background()

	boom := errors.New("fetch failed")
	_, err := cache.GetOrFetch(ctx, "k", time.Minute, func(context.Context) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)

	v, err := cache.GetOrFetch(ctx, "k", time.Minute, func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	require.Equal(t, "ok", v)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	cache := ttlcache.New[int](clock.Now)
	ctx := context.Background()

	fetches := 0
	fetch := func(context.Context) (int, error) { fetches++; return fetches, nil }

	_, _ = cache.GetOrFetch(ctx, "k", time.Hour, fetch)
	cache.Invalidate("k")
	v, err := cache.GetOrFetch(ctx, "k", time.Hour, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}
