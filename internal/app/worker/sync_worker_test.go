package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"cm_sheet/internal/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSyncer struct {
	mu    sync.Mutex
	seen  []string
	errOf map[string]error
}

func (r *recordingSyncer) Sync(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, userID)
	return r.errOf[userID]
}

func (r *recordingSyncer) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func TestSyncWorkerProcessesQueueInOrder(t *testing.T) {
	rdb := setupTestRedis(t)
	syncer := &recordingSyncer{errOf: map[string]error{"u2": common.ErrSyncInProgress}}
	w := NewSyncWorker(rdb, syncer, "test:sync:queue", zap.NewNop())
	w.popTimeout = 100 * time.Millisecond

	ctx := context.Background()
	for _, id := range []string{"u1", "u2", "u3"} {
		require.NoError(t, rdb.LPush(ctx, "test:sync:queue", id).Err())
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		w.Start(runCtx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(syncer.calls()) == 3 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
	assert.Equal(t, []string{"u1", "u2", "u3"}, syncer.calls())

	n, err := rdb.LLen(ctx, "test:sync:queue").Result()
	require.NoError(t, err)
	assert.Zero(t, n, "busy users are not requeued")
}
