package worker

import (
	"context"
	"errors"
	"time"

	"cm_sheet/internal/common"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Syncer interface {
	Sync(ctx context.Context, userID string) error
}

// SyncWorker pops user ids off the sync queue and refreshes their judge
// progress one at a time.
type SyncWorker struct {
	rdb       *redis.Client
	syncer    Syncer
	queueName string
	logger    *zap.Logger

	// popTimeout bounds each BRPOP so cancellation is noticed promptly.
	popTimeout time.Duration
	retryDelay time.Duration
}

func NewSyncWorker(rdb *redis.Client, syncer Syncer, queueName string, logger *zap.Logger) *SyncWorker {
	return &SyncWorker{
		rdb:        rdb,
		syncer:     syncer,
		queueName:  queueName,
		logger:     logger,
		popTimeout: 5 * time.Second,
		retryDelay: 5 * time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (w *SyncWorker) Start(ctx context.Context) {
	w.logger.Info("Sync worker started", zap.String("queue", w.queueName))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Sync worker stopping")
			return
		default:
		}

		result, err := w.rdb.BRPop(ctx, w.popTimeout, w.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // timed out with an empty queue
			}
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error("Failed to BRPop from sync queue", zap.String("queue", w.queueName), zap.Error(err))
			w.sleep(ctx, w.retryDelay)
			continue
		}

		// result is [queueName, value]
		if len(result) < 2 || result[1] == "" {
			w.logger.Warn("BRPop returned empty user id")
			continue
		}
		w.process(ctx, result[1])
	}
}

func (w *SyncWorker) process(ctx context.Context, userID string) {
	err := w.syncer.Sync(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrSyncInProgress):
		// the running sync produces the same result
		w.logger.Debug("Sync already running, dropping queued request", zap.String("user_id", userID))
	default:
		w.logger.Warn("Queued sync failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (w *SyncWorker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
