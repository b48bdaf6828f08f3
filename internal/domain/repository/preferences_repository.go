package repository

import (
	"context"
	"fmt"
	"strconv"

	"cm_sheet/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

func preferencesKey(userID string) string { return keyPrefix + "prefs:" + userID }

type PreferencesRepository interface {
	// Get reports found=false when the user never saved preferences.
	Get(ctx context.Context, userID string) (prefs model.Preferences, found bool, err error)
	Save(ctx context.Context, userID string, prefs model.Preferences) error
}

type redisPreferencesRepository struct {
	rdb *redis.Client
}

func NewRedisPreferencesRepository(rdb *redis.Client) PreferencesRepository {
	return &redisPreferencesRepository{rdb: rdb}
}

func (r *redisPreferencesRepository) Get(ctx context.Context, userID string) (model.Preferences, bool, error) {
	fields, err := r.rdb.HGetAll(ctx, preferencesKey(userID)).Result()
	if err != nil {
		return model.Preferences{}, false, fmt.Errorf("redisPreferencesRepository.Get: %w", err)
	}
	if len(fields) == 0 {
		return model.Preferences{}, false, nil
	}

	prefs := model.DefaultPreferences()
	if theme, ok := fields["theme"]; ok {
		prefs.Theme = theme
	}
	if raw, ok := fields["show_tags"]; ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			prefs.ShowTags = v
		}
	}
	return prefs, true, nil
}

func (r *redisPreferencesRepository) Save(ctx context.Context, userID string, prefs model.Preferences) error {
	err := r.rdb.HSet(ctx, preferencesKey(userID),
		"theme", prefs.Theme,
		"show_tags", strconv.FormatBool(prefs.ShowTags),
	).Err()
	if err != nil {
		return fmt.Errorf("redisPreferencesRepository.Save: %w", err)
	}
	return nil
}
