package service

import (
	"context"
	"fmt"

	"cm_sheet/internal/app/progress"
	"cm_sheet/internal/common"
	"cm_sheet/internal/domain/model"
)

// BoardService groups the problem list with a user's live solved state.
// Groups are rebuilt on every call.
type BoardService struct {
	catalog  *ProblemCatalog
	progress *ProgressService
	sync     *SyncService
}

func NewBoardService(catalog *ProblemCatalog, progress *ProgressService, sync *SyncService) *BoardService {
	return &BoardService{catalog: catalog, progress: progress, sync: sync}
}

func (s *BoardService) Problems() []model.Problem {
	return s.catalog.All()
}

// Board returns every non-empty group without its problem list.
func (s *BoardService) Board(ctx context.Context, userID string) ([]model.Group, error) {
	groups, err := s.groups(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		groups[i].Problems = nil
	}
	return groups, nil
}

func (s *BoardService) Group(ctx context.Context, userID, slug string) (*model.Group, error) {
	groups, err := s.groups(ctx, userID)
	if err != nil {
		return nil, err
	}
	g, ok := progress.FindGroup(groups, slug)
	if !ok {
		return nil, fmt.Errorf("group %q: %w", slug, common.ErrNotFound)
	}
	return &g, nil
}

func (s *BoardService) groups(ctx context.Context, userID string) ([]model.Group, error) {
	manual, err := s.progress.ManualSolved(ctx, userID)
	if err != nil {
		return nil, err
	}
	judgeSolved, err := s.sync.JudgeSolved(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load judge progress: %w", err)
	}
	return progress.BuildGroups(s.catalog.All(), judgeSolved, manual), nil
}
