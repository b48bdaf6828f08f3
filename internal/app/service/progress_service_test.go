package service

import (
	"context"
	"errors"
	"testing"

	"cm_sheet/internal/app/progress"
	"cm_sheet/internal/common"
	"cm_sheet/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProgressService(repo *memoryProgressRepo) *ProgressService {
	return NewProgressService(NewProblemCatalog(sampleProblems()), repo, zap.NewNop())
}

func TestToggleManualInsertsThenDeletes(t *testing.T) {
	repo := newMemoryProgressRepo()
	svc := newProgressService(repo)
	ctx := context.Background()

	resp, err := svc.ToggleManual(ctx, "u1", "Two Sum")
	require.NoError(t, err)
	assert.True(t, resp.Solved)

	resp, err = svc.ToggleManual(ctx, "u1", "Two Sum")
	require.NoError(t, err)
	assert.False(t, resp.Solved)

	assert.Equal(t, []string{"insert:u1:Two Sum", "delete:u1:Two Sum"}, repo.calls)
}

func TestToggleManualRejectsJudgeTrackedProblem(t *testing.T) {
	repo := newMemoryProgressRepo()
	svc := newProgressService(repo)

	_, err := svc.ToggleManual(context.Background(), "u1", "Going Home")

	assert.ErrorIs(t, err, common.ErrBadRequest)
	assert.Empty(t, repo.calls)
}

func TestToggleManualSharedTitleFollowsBoard(t *testing.T) {
	problems := []model.Problem{
		{Title: "Two Sum", Link: "https://codeforces.com/contest/1500/problem/A", Platform: model.PlatformCodeforces, ContestID: intPtr(1500), Index: strPtr("A")},
		{Title: "Two Sum", Link: "https://leetcode.com/problems/two-sum/", Platform: model.PlatformLeetCode},
	}
	repo := newMemoryProgressRepo()
	svc := NewProgressService(NewProblemCatalog(problems), repo, zap.NewNop())

	groups := progress.BuildGroups(problems, progress.NewSolvedSet(), progress.NewSolvedSet())
	leetcode, ok := progress.FindGroup(groups, "leetcode")
	require.True(t, ok)
	require.Len(t, leetcode.Problems, 1)
	require.True(t, leetcode.Problems[0].Toggleable)

	resp, err := svc.ToggleManual(context.Background(), "u1", "Two Sum")
	require.NoError(t, err)
	assert.True(t, resp.Solved)
	assert.Equal(t, []string{"insert:u1:Two Sum"}, repo.calls)
}

func TestToggleManualUnknownTitle(t *testing.T) {
	svc := newProgressService(newMemoryProgressRepo())

	_, err := svc.ToggleManual(context.Background(), "u1", "No Such Problem")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.ToggleManual(context.Background(), "u1", "")
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestToggleManualOtherPlatformIsAllowed(t *testing.T) {
	svc := newProgressService(newMemoryProgressRepo())

	resp, err := svc.ToggleManual(context.Background(), "u1", "Mystery")
	require.NoError(t, err)
	assert.True(t, resp.Solved)
}

func TestToggleManualStoreFailureKeepsState(t *testing.T) {
	repo := newMemoryProgressRepo()
	svc := newProgressService(repo)
	ctx := context.Background()
	repo.failOps["insert"] = errors.New("connection reset")

	_, err := svc.ToggleManual(ctx, "u1", "Two Sum")
	require.Error(t, err)

	set, err := svc.ManualSolved(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, set.Has("Two Sum"))
}

func TestManualSolvedIsPerUser(t *testing.T) {
	repo := newMemoryProgressRepo()
	svc := newProgressService(repo)
	ctx := context.Background()

	_, err := svc.ToggleManual(ctx, "u1", "Two Sum")
	require.NoError(t, err)
	_, err = svc.ToggleManual(ctx, "u2", "Weird Algorithm")
	require.NoError(t, err)

	set, err := svc.ManualSolved(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Two Sum"}, set.Keys())
}
