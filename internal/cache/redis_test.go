package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/seorender/internal/cache"
)

func newRedisStore(t *testing.T, opts ...cache.RedisOption) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := cache.NewRedisFromClient(client, opts...)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedis_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set(ctx, "page", "<html></html>"))

	got, found, err := store.Get(ctx, "page")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "<html></html>", got)

	require.NoError(t, store.Delete(ctx, "page"))
	_, found, err = store.Get(ctx, "page")
	require.NoError(t, err)
	require.False(t, found)
}

func TestRedis_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, cache.WithTTL(time.Minute))

	require.NoError(t, store.Set(ctx, "page", "x"))

	mr.FastForward(2 * time.Minute)

	_, found, err := store.Get(ctx, "page")
	require.NoError(t, err)
	require.False(t, found, "entry must expire after TTL")
}

func TestRedis_FlushOnlyOwnPrefix(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, cache.WithPrefix("test:page:"))

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, store.Flush(ctx))

	_, found, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, found)

	val, err := mr.Get("unrelated")
	require.NoError(t, err)
	require.Equal(t, "keep", val, "flush must not touch foreign keys")
}
