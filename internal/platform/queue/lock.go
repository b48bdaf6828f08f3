package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned by Acquire when another holder owns the key.
var ErrLockHeld = errors.New("lock is held by another owner")

// releaseScript deletes the key only while it still carries our value, so an
// expired lock that was taken over is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end
`)

// Lock is a single-owner Redis lock with a TTL.
type Lock struct {
	rdb   *redis.Client
	key   string
	value string
}

// Acquire takes key for at most ttl.
func Acquire(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration) (*Lock, error) {
	value := uuid.NewString()
	ok, err := rdb.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to attempt lock acquisition for %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return &Lock{rdb: rdb, key: key, value: value}, nil
}

// Release reports whether the lock was still ours when released.
func (l *Lock) Release(ctx context.Context) (bool, error) {
	deleted, err := releaseScript.Run(ctx, l.rdb, []string{l.key}, l.value).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	return deleted == 1, nil
}

// Held reports whether any owner currently holds key.
func Held(ctx context.Context, rdb *redis.Client, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
