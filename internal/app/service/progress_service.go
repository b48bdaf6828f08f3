package service

import (
	"context"
	"fmt"

	"cm_sheet/internal/app/progress"
	"cm_sheet/internal/common"
	"cm_sheet/internal/domain/model"
	"cm_sheet/internal/domain/repository"
	"cm_sheet/internal/platform/metrics"

	"go.uber.org/zap"
)

type ProgressService struct {
	catalog      *ProblemCatalog
	progressRepo repository.ProgressRepository
	logger       *zap.Logger
}

func NewProgressService(catalog *ProblemCatalog, progressRepo repository.ProgressRepository, logger *zap.Logger) *ProgressService {
	return &ProgressService{catalog: catalog, progressRepo: progressRepo, logger: logger}
}

type ToggleRequest struct {
	Title string `json:"title"`
}

type ToggleResponse struct {
	Title  string `json:"title"`
	Solved bool   `json:"solved"`
}

// ToggleManual flips the manual solved mark of one problem. The stored state
// decides the direction: a present row is deleted, an absent row inserted.
// On a store error nothing is assumed about the new state.
func (s *ProgressService) ToggleManual(ctx context.Context, userID, title string) (*ToggleResponse, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", common.ErrBadRequest)
	}
	entries := s.catalog.ByTitle(title)
	if len(entries) == 0 {
		return nil, fmt.Errorf("problem %q: %w", title, common.ErrNotFound)
	}
	if !manuallyTrackable(entries) {
		return nil, fmt.Errorf("problem %q is tracked through Codeforces submissions: %w", title, common.ErrBadRequest)
	}

	solved, err := s.progressRepo.Exists(ctx, userID, title)
	if err != nil {
		return nil, fmt.Errorf("failed to read manual progress: %w", err)
	}
	if solved {
		err = s.progressRepo.Delete(ctx, userID, title)
	} else {
		err = s.progressRepo.Insert(ctx, userID, title)
	}
	if err != nil {
		s.logger.Error("Manual toggle failed", zap.String("user_id", userID), zap.String("title", title), zap.Error(err))
		return nil, fmt.Errorf("failed to update manual progress: %w", err)
	}

	resp := &ToggleResponse{Title: title, Solved: !solved}
	metrics.ManualToggles.WithLabelValues(stateLabel(resp.Solved)).Inc()
	return resp, nil
}

// ManualSolved returns the set of titles the user ticked by hand.
func (s *ProgressService) ManualSolved(ctx context.Context, userID string) (progress.SolvedSet, error) {
	rows, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load manual progress: %w", err)
	}
	set := progress.NewSolvedSet()
	for _, r := range rows {
		set.Add(r.ProblemTitle)
	}
	return set, nil
}

// manuallyTrackable reports whether any entry with the title shows a manual
// checkbox on the board.
func manuallyTrackable(entries []model.Problem) bool {
	for _, p := range entries {
		if !progress.IsJudgeTracked(p) {
			return true
		}
	}
	return false
}

func stateLabel(solved bool) string {
	if solved {
		return "solved"
	}
	return "unsolved"
}
