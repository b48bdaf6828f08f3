package repository

import (
	"context"
	"fmt"
	"time"

	"cm_sheet/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cmsheet:"

func solvedKey(userID string) string     { return keyPrefix + "solved:" + userID }
func syncStatusKey(userID string) string { return keyPrefix + "sync:status:" + userID }

// SyncLockKey is the per-user busy flag of the judge sync.
func SyncLockKey(userID string) string { return keyPrefix + "sync:lock:" + userID }

// JudgeProgressRepository caches the judge-solved key set of each user together
// with the outcome of the last sync.
type JudgeProgressRepository interface {
	ReplaceSolved(ctx context.Context, userID string, keys []string, syncedAt time.Time) error
	RecordFailure(ctx context.Context, userID, message string) error
	Solved(ctx context.Context, userID string) ([]string, error)
	Status(ctx context.Context, userID string) (model.SyncStatus, error)
}

type redisJudgeProgressRepository struct {
	rdb *redis.Client
}

func NewRedisJudgeProgressRepository(rdb *redis.Client) JudgeProgressRepository {
	return &redisJudgeProgressRepository{rdb: rdb}
}

// ReplaceSolved swaps in the new set and marks the sync successful in one
// MULTI/EXEC, so readers never see a partially written set.
func (r *redisJudgeProgressRepository) ReplaceSolved(ctx context.Context, userID string, keys []string, syncedAt time.Time) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, solvedKey(userID))
		if len(keys) > 0 {
			members := make([]interface{}, len(keys))
			for i, k := range keys {
				members[i] = k
			}
			pipe.SAdd(ctx, solvedKey(userID), members...)
		}
		pipe.HSet(ctx, syncStatusKey(userID), "last_synced_at", syncedAt.UTC().Format(time.RFC3339))
		pipe.HDel(ctx, syncStatusKey(userID), "last_error")
		return nil
	})
	if err != nil {
		return fmt.Errorf("redisJudgeProgressRepository.ReplaceSolved: %w", err)
	}
	return nil
}

// RecordFailure keeps only the latest error; the solved set is not touched.
func (r *redisJudgeProgressRepository) RecordFailure(ctx context.Context, userID, message string) error {
	if err := r.rdb.HSet(ctx, syncStatusKey(userID), "last_error", message).Err(); err != nil {
		return fmt.Errorf("redisJudgeProgressRepository.RecordFailure: %w", err)
	}
	return nil
}

func (r *redisJudgeProgressRepository) Solved(ctx context.Context, userID string) ([]string, error) {
	keys, err := r.rdb.SMembers(ctx, solvedKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redisJudgeProgressRepository.Solved: %w", err)
	}
	return keys, nil
}

// Status fills everything but Busy, which belongs to the lock holder.
func (r *redisJudgeProgressRepository) Status(ctx context.Context, userID string) (model.SyncStatus, error) {
	var (
		fields *redis.MapStringStringCmd
		count  *redis.IntCmd
	)
	_, err := r.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		fields = pipe.HGetAll(ctx, syncStatusKey(userID))
		count = pipe.SCard(ctx, solvedKey(userID))
		return nil
	})
	if err != nil {
		return model.SyncStatus{}, fmt.Errorf("redisJudgeProgressRepository.Status: %w", err)
	}

	status := model.SyncStatus{
		LastError:   fields.Val()["last_error"],
		SolvedCount: int(count.Val()),
	}
	if raw, ok := fields.Val()["last_synced_at"]; ok {
		if at, err := time.Parse(time.RFC3339, raw); err == nil {
			status.LastSyncedAt = &at
		}
	}
	return status, nil
}
