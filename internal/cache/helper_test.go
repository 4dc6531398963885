package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.Name = "gem"
			dest.Count = 3
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "gem", first.Name)

	// Second call should come from the cache without fetching.
	var second cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	boom := errors.New("db down")
	var dest cachedThing
	err := Aside(ctx, "thing:2", &dest, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	found, err := GetJSON(ctx, "thing:2", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_NilClientDegradesToFetch(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	var dest cachedThing
	for range 2 {
		require.NoError(t, Aside(ctx, "thing:3", &dest, time.Minute, func() error {
			fetches++
			return nil
		}))
	}
	assert.Equal(t, 2, fetches)
}

func TestInvalidateGem(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, GemKey(7), cachedThing{Name: "x"}, time.Minute))
	require.True(t, mr.Exists("gem:7"))

	InvalidateGem(ctx, 7)
	assert.False(t, mr.Exists("gem:7"))
}

func TestGeocodeKey_Normalizes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, GeocodeKey("New York"), GeocodeKey("  new york "))
}
