package queue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestLockIsExclusive(t *testing.T) {
	_, rdb := setupTestRedis(t)
	ctx := context.Background()

	lock, err := Acquire(ctx, rdb, "lock:a", time.Minute)
	require.NoError(t, err)

	_, err = Acquire(ctx, rdb, "lock:a", time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)

	held, err := Held(ctx, rdb, "lock:a")
	require.NoError(t, err)
	assert.True(t, held)

	released, err := lock.Release(ctx)
	require.NoError(t, err)
	assert.True(t, released)

	held, err = Held(ctx, rdb, "lock:a")
	require.NoError(t, err)
	assert.False(t, held)
}

func TestReleaseLeavesTakenOverLockAlone(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	ctx := context.Background()

	stale, err := Acquire(ctx, rdb, "lock:b", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	_, err = Acquire(ctx, rdb, "lock:b", time.Minute)
	require.NoError(t, err)

	released, err := stale.Release(ctx)
	require.NoError(t, err)
	assert.False(t, released)
	assert.True(t, mr.Exists("lock:b"))
}

func TestConnect(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	addr := mr.Addr()
	rdb, err := Connect(context.Background(), RedisOptions{Addr: addr})
	require.NoError(t, err)
	rdb.Close()

	mr.Close()
	_, err = Connect(context.Background(), RedisOptions{Addr: addr})
	assert.Error(t, err)
}
