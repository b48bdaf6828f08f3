package service

import (
	"context"
	"sync"
	"testing"

	"cm_sheet/internal/common"
	"cm_sheet/internal/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	createFn         func(*model.User) error
	findByUsernameFn func(string) (*model.User, error)
	findByIDFn       func(string) (*model.User, error)
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(user)
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if m.findByUsernameFn == nil {
		panic("unexpected call to FindByUsername")
	}
	return m.findByUsernameFn(username)
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	if m.findByIDFn == nil {
		panic("unexpected call to FindByID")
	}
	return m.findByIDFn(id)
}

// memoryProgressRepo records every write so tests can assert the exact
// sequence of store calls.
type memoryProgressRepo struct {
	mu      sync.Mutex
	rows    map[string]map[string]bool
	calls   []string
	failOps map[string]error
}

func newMemoryProgressRepo() *memoryProgressRepo {
	return &memoryProgressRepo{rows: map[string]map[string]bool{}, failOps: map[string]error{}}
}

func (m *memoryProgressRepo) ListByUser(_ context.Context, userID string) ([]model.ManualProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOps["list"]; err != nil {
		return nil, err
	}
	var out []model.ManualProgress
	for title := range m.rows[userID] {
		out = append(out, model.ManualProgress{UserID: userID, ProblemTitle: title})
	}
	return out, nil
}

func (m *memoryProgressRepo) Exists(_ context.Context, userID, title string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOps["exists"]; err != nil {
		return false, err
	}
	return m.rows[userID][title], nil
}

func (m *memoryProgressRepo) Insert(_ context.Context, userID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "insert:"+userID+":"+title)
	if err := m.failOps["insert"]; err != nil {
		return err
	}
	if m.rows[userID] == nil {
		m.rows[userID] = map[string]bool{}
	}
	m.rows[userID][title] = true
	return nil
}

func (m *memoryProgressRepo) Delete(_ context.Context, userID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "delete:"+userID+":"+title)
	if err := m.failOps["delete"]; err != nil {
		return err
	}
	delete(m.rows[userID], title)
	return nil
}

type fakeSubmissionSource struct {
	keys    []string
	err     error
	handles []string
	block   chan struct{}
}

func (f *fakeSubmissionSource) AcceptedProblemKeys(_ context.Context, handle string) ([]string, error) {
	f.handles = append(f.handles, handle)
	if f.block != nil {
		<-f.block
	}
	return f.keys, f.err
}

type recordingEnqueuer struct {
	userIDs []string
	err     error
}

func (r *recordingEnqueuer) Enqueue(_ context.Context, userID string) error {
	r.userIDs = append(r.userIDs, userID)
	return r.err
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func usersByID(users ...*model.User) *mockUserRepo {
	return &mockUserRepo{findByIDFn: func(id string) (*model.User, error) {
		for _, u := range users {
			if u.ID == id {
				copied := *u
				return &copied, nil
			}
		}
		return nil, common.ErrNotFound
	}}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func sampleProblems() []model.Problem {
	return []model.Problem{
		{Title: "Going Home", Link: "https://codeforces.com/contest/1500/problem/A", Platform: model.PlatformCodeforces, Rating: intPtr(1600), ContestID: intPtr(1500), Index: strPtr("A")},
		{Title: "Watermelon", Link: "https://codeforces.com/problemset/problem/4/A", Platform: model.PlatformCodeforces, Rating: intPtr(800), ContestID: intPtr(4), Index: strPtr("A")},
		{Title: "Two Sum", Link: "https://leetcode.com/problems/two-sum/", Platform: model.PlatformLeetCode},
		{Title: "Weird Algorithm", Link: "https://cses.fi/problemset/task/1068", Platform: model.PlatformCSES},
		{Title: "Mystery", Link: "https://example.com/mystery", Platform: model.PlatformOther},
	}
}
