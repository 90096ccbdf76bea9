package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "scan:abc", []byte("ingredients"), time.Minute))

	got, err := c.Get(ctx, "scan:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("ingredients"), got)

	exists, err := c.Exists(ctx, "scan:abc")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	_, err := c.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), -time.Second))

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)

	exists, err := c.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheGetOrSet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	calls := 0
	fn := func() ([]byte, error) {
		calls++
		return []byte("computed"), nil
	}

	got, err := c.GetOrSet(ctx, "recipes:hash", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, []byte("computed"), got)

	got, err = c.GetOrSet(ctx, "recipes:hash", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, []byte("computed"), got)
	assert.Equal(t, 1, calls, "second lookup must hit the cache")
}

func TestMemoryCacheGetOrSetError(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	boom := errors.New("upstream failed")
	_, err := c.GetOrSet(context.Background(), "bad", time.Minute, func() ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Clear(ctx))
	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
