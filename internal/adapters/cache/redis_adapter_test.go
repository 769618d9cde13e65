package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylontrails/travelmatch/internal/domain/providers"
)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisAdapter(client), mr
}

func TestRedisAdapter_SetGetExpire(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "candidates:guides:x", []byte(`[]`), 60))
	assert.True(t, mr.Exists("travelmatch:candidates:guides:x"))

	got, err := adapter.Get(ctx, "candidates:guides:x")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	mr.FastForward(61 * time.Second)
	_, err = adapter.Get(ctx, "candidates:guides:x")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestRedisAdapter_DeleteAndDeletePattern(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "candidates:guides:a", []byte("1"), 60))
	require.NoError(t, adapter.Set(ctx, "candidates:guides:b", []byte("2"), 60))
	require.NoError(t, adapter.Set(ctx, "candidates:accommodations:a", []byte("3"), 60))

	require.NoError(t, adapter.Delete(ctx, "candidates:guides:a"))
	assert.False(t, mr.Exists("travelmatch:candidates:guides:a"))

	require.NoError(t, adapter.DeletePattern(ctx, "candidates:guides:*"))
	assert.False(t, mr.Exists("travelmatch:candidates:guides:b"))
	assert.True(t, mr.Exists("travelmatch:candidates:accommodations:a"))
}

func TestRedisAdapter_GetMissing(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	_, err := adapter.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}
