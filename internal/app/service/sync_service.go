package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cm_sheet/internal/app/progress"
	"cm_sheet/internal/common"
	"cm_sheet/internal/domain/model"
	"cm_sheet/internal/domain/repository"
	"cm_sheet/internal/platform/metrics"
	"cm_sheet/internal/platform/queue"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SubmissionSource lists the judge keys a handle has accepted submissions for.
type SubmissionSource interface {
	AcceptedProblemKeys(ctx context.Context, handle string) ([]string, error)
}

type SyncOptions struct {
	QueueName string
	LockTTL   time.Duration
}

// SyncService refreshes the judge-solved set of a user from Codeforces.
// A per-user Redis lock keeps two syncs of the same user from overlapping.
type SyncService struct {
	userRepo  repository.UserRepository
	judgeRepo repository.JudgeProgressRepository
	source    SubmissionSource
	rdb       *redis.Client
	opts      SyncOptions
	logger    *zap.Logger
	now       func() time.Time
}

func NewSyncService(
	userRepo repository.UserRepository,
	judgeRepo repository.JudgeProgressRepository,
	source SubmissionSource,
	rdb *redis.Client,
	opts SyncOptions,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		userRepo:  userRepo,
		judgeRepo: judgeRepo,
		source:    source,
		rdb:       rdb,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Sync fetches the user's submissions and replaces the cached solved set.
// A failed fetch records the error and keeps the previous set.
func (s *SyncService) Sync(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.CFHandle == "" {
		metrics.SyncRuns.WithLabelValues("skipped").Inc()
		return nil
	}

	lock, err := queue.Acquire(ctx, s.rdb, repository.SyncLockKey(userID), s.opts.LockTTL)
	if err != nil {
		if errors.Is(err, queue.ErrLockHeld) {
			metrics.SyncRuns.WithLabelValues("busy").Inc()
			return common.ErrSyncInProgress
		}
		return err
	}
	defer func() {
		// release even when the request context is already gone
		released, err := lock.Release(context.Background())
		if err != nil {
			s.logger.Error("Failed to release sync lock", zap.String("user_id", userID), zap.Error(err))
		} else if !released {
			s.logger.Warn("Sync lock expired before release", zap.String("user_id", userID))
		}
	}()

	keys, err := s.source.AcceptedProblemKeys(ctx, user.CFHandle)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		if recErr := s.judgeRepo.RecordFailure(ctx, userID, err.Error()); recErr != nil {
			s.logger.Error("Failed to record sync failure", zap.String("user_id", userID), zap.Error(recErr))
		}
		return fmt.Errorf("failed to fetch submissions of %s: %w", user.CFHandle, err)
	}

	if err := s.judgeRepo.ReplaceSolved(ctx, userID, keys, s.now()); err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		err = fmt.Errorf("failed to store judge progress: %w", err)
		if recErr := s.judgeRepo.RecordFailure(ctx, userID, err.Error()); recErr != nil {
			s.logger.Error("Failed to record sync failure", zap.String("user_id", userID), zap.Error(recErr))
		}
		return err
	}
	metrics.SyncRuns.WithLabelValues("ok").Inc()
	s.logger.Info("Judge progress synced",
		zap.String("user_id", userID),
		zap.String("cf_handle", user.CFHandle),
		zap.Int("solved", len(keys)),
	)
	return nil
}

// Enqueue schedules a sync for the worker.
func (s *SyncService) Enqueue(ctx context.Context, userID string) error {
	if err := s.rdb.LPush(ctx, s.opts.QueueName, userID).Err(); err != nil {
		return fmt.Errorf("failed to push user %s to sync queue: %w", userID, err)
	}
	return nil
}

func (s *SyncService) Status(ctx context.Context, userID string) (model.SyncStatus, error) {
	status, err := s.judgeRepo.Status(ctx, userID)
	if err != nil {
		return model.SyncStatus{}, err
	}
	busy, err := queue.Held(ctx, s.rdb, repository.SyncLockKey(userID))
	if err != nil {
		return model.SyncStatus{}, fmt.Errorf("failed to read sync lock: %w", err)
	}
	status.Busy = busy
	return status, nil
}

func (s *SyncService) JudgeSolved(ctx context.Context, userID string) (progress.SolvedSet, error) {
	keys, err := s.judgeRepo.Solved(ctx, userID)
	if err != nil {
		return nil, err
	}
	return progress.NewSolvedSet(keys...), nil
}
