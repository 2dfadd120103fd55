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

type cachedPost struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = Client.Close()
		Client = nil
	})
	return mr
}

func TestGetJSON_MissAndHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var out cachedPost
	found, err := GetJSON(ctx, PostKey(1), &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, PostKey(1), cachedPost{ID: 1, Title: "Hello"}, PostTTL))

	found, err = GetJSON(ctx, PostKey(1), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Hello", out.Title)
}

func TestCacheAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			calls++
			*dest = cachedPost{ID: 2, Title: "From DB"}
			return nil
		}
	}

	var first cachedPost
	require.NoError(t, CacheAside(ctx, PostKey(2), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "From DB", first.Title)

	// Second read is served from the cache.
	var second cachedPost
	require.NoError(t, CacheAside(ctx, PostKey(2), &second, PostTTL, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "From DB", second.Title)
}

func TestCacheAside_FetchError(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	wantErr := errors.New("db down")
	var out cachedPost
	err := CacheAside(ctx, PostKey(3), &out, PostTTL, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// Nothing was cached.
	found, err := GetJSON(ctx, PostKey(3), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheAside_FallsThroughWhenRedisDown(t *testing.T) {
	mr := setupMiniredis(t)
	mr.Close()
	ctx := context.Background()

	var out cachedPost
	err := CacheAside(ctx, PostKey(4), &out, PostTTL, func() error {
		out = cachedPost{ID: 4, Title: "Still Works"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Still Works", out.Title)
}

func TestInvalidatePost(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(5), cachedPost{ID: 5}, PostTTL))
	require.NoError(t, SetJSON(ctx, PostListKey(10, 0), []cachedPost{{ID: 5}}, PostListTTL))
	require.NoError(t, SetJSON(ctx, PostListKey(10, 10), []cachedPost{}, PostListTTL))

	InvalidatePost(ctx, 5)

	var out cachedPost
	found, err := GetJSON(ctx, PostKey(5), &out)
	require.NoError(t, err)
	assert.False(t, found)

	var list []cachedPost
	for _, key := range []string{PostListKey(10, 0), PostListKey(10, 10)} {
		found, err = GetJSON(ctx, key, &list)
		require.NoError(t, err)
		assert.False(t, found, "list page %s should be invalidated", key)
	}
}

func TestNilClientIsNoop(t *testing.T) {
	Client = nil
	ctx := context.Background()

	var out cachedPost
	found, err := GetJSON(ctx, PostKey(9), &out)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, PostKey(9), cachedPost{}, time.Minute))
	InvalidatePost(ctx, 9)
}
