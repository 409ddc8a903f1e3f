package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLocker_ExclusiveAndReleased(t *testing.T) {
	mr, client := newRedis(t)
	l := NewRedisLocker(client, 5*time.Second)
	ctx := context.Background()
	key := StylistKey(1, 7)

	err := l.WithLock(ctx, key, func(ctx context.Context) error {
		assert.True(t, mr.Exists(key))

		inner := l.WithLock(ctx, key, func(context.Context) error { return nil })
		assert.True(t, httperr.IsBusiness(inner, "stylist_busy"))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))
}

func TestRedisLocker_DoesNotDeleteForeignToken(t *testing.T) {
	mr, client := newRedis(t)
	l := NewRedisLocker(client, 5*time.Second)
	key := StylistKey(1, 8)

	err := l.WithLock(context.Background(), key, func(context.Context) error {
		require.NoError(t, mr.Set(key, "someone-else"))
		return nil
	})
	require.NoError(t, err)

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLocker_PropagatesError(t *testing.T) {
	_, client := newRedis(t)
	l := NewRedisLocker(client, time.Second)

	err := l.WithLock(context.Background(), "k", func(context.Context) error {
		return httperr.ErrBusiness("break_conflict")
	})
	assert.True(t, httperr.IsBusiness(err, "break_conflict"))
}

func TestLocalLocker(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	err := l.WithLock(ctx, "a", func(ctx context.Context) error {
		assert.ErrorIs(t, l.WithLock(ctx, "a", func(context.Context) error { return nil }), ErrNotAcquired)
		return l.WithLock(ctx, "b", func(context.Context) error { return nil })
	})
	require.NoError(t, err)
	assert.NoError(t, l.WithLock(ctx, "a", func(context.Context) error { return nil }))
}
