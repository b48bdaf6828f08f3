package service

import (
	"context"
	"fmt"

	"cm_sheet/internal/common"
	"cm_sheet/internal/domain/model"
	"cm_sheet/internal/domain/repository"
)

type PreferencesService struct {
	repo repository.PreferencesRepository
}

func NewPreferencesService(repo repository.PreferencesRepository) *PreferencesService {
	return &PreferencesService{repo: repo}
}

// Get falls back to the defaults for users who never saved preferences.
func (s *PreferencesService) Get(ctx context.Context, userID string) (model.Preferences, error) {
	prefs, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		return model.Preferences{}, err
	}
	if !found {
		return model.DefaultPreferences(), nil
	}
	return prefs, nil
}

// UpdatePreferencesRequest uses pointers so a client can change one field.
type UpdatePreferencesRequest struct {
	Theme    *string `json:"theme"`
	ShowTags *bool   `json:"show_tags"`
}

func (s *PreferencesService) Update(ctx context.Context, userID string, req UpdatePreferencesRequest) (model.Preferences, error) {
	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return model.Preferences{}, err
	}
	if req.Theme != nil {
		if *req.Theme != model.ThemeDark && *req.Theme != model.ThemeLight {
			return model.Preferences{}, fmt.Errorf("theme must be %q or %q: %w", model.ThemeDark, model.ThemeLight, common.ErrValidation)
		}
		prefs.Theme = *req.Theme
	}
	if req.ShowTags != nil {
		prefs.ShowTags = *req.ShowTags
	}
	if err := s.repo.Save(ctx, userID, prefs); err != nil {
		return model.Preferences{}, err
	}
	return prefs, nil
}
