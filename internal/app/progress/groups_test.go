package progress

import (
	"testing"

	"cm_sheet/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func cfProblem(title string, contestID int, index string, rating *int) model.Problem {
	return model.Problem{
		Title:     title,
		Link:      "https://codeforces.com/contest/x/problem/y",
		Platform:  model.PlatformCodeforces,
		Rating:    rating,
		ContestID: ptr(contestID),
		Index:     ptr(index),
	}
}

func groupNames(groups []model.Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

func TestBuildGroupsRatingBuckets(t *testing.T) {
	problems := []model.Problem{
		cfProblem("A", 1, "A", ptr(1200)),
		cfProblem("B", 2, "A", ptr(1400)),
		cfProblem("C", 3, "A", ptr(1200)),
	}

	groups := BuildGroups(problems, NewSolvedSet(), NewSolvedSet())

	require.Len(t, groups, 2)
	assert.Equal(t, "CF 1200", groups[0].Name)
	assert.Equal(t, "cf-1200", groups[0].Slug)
	assert.Equal(t, 1200, *groups[0].Rating)
	assert.Equal(t, 2, groups[0].TotalCount)
	assert.Equal(t, "A", groups[0].Problems[0].Title)
	assert.Equal(t, "C", groups[0].Problems[1].Title)
	assert.Equal(t, "CF 1400", groups[1].Name)
	assert.Equal(t, 1, groups[1].TotalCount)
}

func TestBuildGroupsOrder(t *testing.T) {
	problems := []model.Problem{
		{Title: "Other", Link: "https://example.com/p", Platform: model.PlatformOther},
		{Title: "Chef", Link: "https://www.codechef.com/problems/X", Platform: model.PlatformCodeChef},
		{Title: "LC", Link: "https://leetcode.com/problems/two-sum/", Platform: model.PlatformLeetCode},
		{Title: "CSES", Link: "https://cses.fi/problemset/task/1068", Platform: model.PlatformCSES},
		{Title: "AC", Link: "https://atcoder.jp/contests/abc300/tasks/abc300_a", Platform: model.PlatformAtCoder},
		cfProblem("Unrated", 5, "A", nil),
		cfProblem("ZeroRated", 6, "A", ptr(0)),
		cfProblem("Hard", 7, "A", ptr(2000)),
		cfProblem("Easy", 8, "A", ptr(800)),
	}

	groups := BuildGroups(problems, NewSolvedSet(), NewSolvedSet())

	assert.Equal(t, []string{"CF 800", "CF 2000", "CF Unrated", "AtCoder", "CSES", "LeetCode", "Other Platforms"}, groupNames(groups))
	assert.Equal(t, 2, groups[2].TotalCount)
	assert.Nil(t, groups[2].Rating)
	assert.Equal(t, 2, groups[6].TotalCount)
	assert.Equal(t, model.PlatformOther, groups[6].Platform)
	assert.Equal(t, "other-platforms", groups[6].Slug)
}

func TestBuildGroupsSkipsEmptyBuckets(t *testing.T) {
	groups := BuildGroups([]model.Problem{{Title: "LC", Platform: model.PlatformLeetCode}}, NewSolvedSet(), NewSolvedSet())

	assert.Equal(t, []string{"LeetCode"}, groupNames(groups))
	assert.Empty(t, BuildGroups(nil, NewSolvedSet(), NewSolvedSet()))
}

func TestBuildGroupsClassifiesUnenrichedProblems(t *testing.T) {
	problems := []model.Problem{
		{Title: "Two Sum", Link: "https://leetcode.com/problems/two-sum/"},
		{Title: "Watermelon", Link: "https://codeforces.com/problemset/problem/4/A"},
	}

	groups := BuildGroups(problems, NewSolvedSet(), NewSolvedSet())

	assert.Equal(t, []string{"CF Unrated", "LeetCode"}, groupNames(groups))
	assert.Equal(t, model.PlatformLeetCode, groups[1].Problems[0].Platform)
	// no contest id was derived, so the checkbox stays available
	assert.True(t, groups[0].Problems[0].Toggleable)
}

func TestBuildGroupsProgress(t *testing.T) {
	problems := []model.Problem{
		cfProblem("A", 1500, "A", ptr(1600)),
		cfProblem("B", 1500, "B", ptr(1600)),
		cfProblem("C", 1501, "C", ptr(1700)),
		{Title: "Two Sum", Platform: model.PlatformLeetCode},
		{Title: "Valid Parentheses", Platform: model.PlatformLeetCode},
		{Title: "Merge Intervals", Platform: model.PlatformLeetCode},
	}
	judgeSolved := NewSolvedSet("1500A")
	manualSolved := NewSolvedSet("Two Sum", "A")

	groups := BuildGroups(problems, judgeSolved, manualSolved)

	require.Len(t, groups, 3)
	assert.Equal(t, 1, groups[0].SolvedCount)
	assert.Equal(t, 50, groups[0].ProgressPercent)
	assert.True(t, groups[0].Problems[0].Solved)
	assert.False(t, groups[0].Problems[0].Toggleable)

	assert.Equal(t, 0, groups[1].SolvedCount)
	assert.Equal(t, 0, groups[1].ProgressPercent)

	assert.Equal(t, 1, groups[2].SolvedCount)
	assert.Equal(t, 33, groups[2].ProgressPercent)
	assert.True(t, groups[2].Problems[0].Toggleable)
}

func TestIsSolvedDispatch(t *testing.T) {
	cf := cfProblem("Going Home", 1500, "A", ptr(1600))
	lc := model.Problem{Title: "Two Sum", Platform: model.PlatformLeetCode}
	cfNoID := model.Problem{Title: "Gym", Link: "https://codeforces.com/gym/1/problem/A", Platform: model.PlatformCodeforces}

	// a manual tick never marks a judge-tracked problem
	assert.False(t, IsSolved(cf, NewSolvedSet(), NewSolvedSet("Going Home")))
	assert.True(t, IsSolved(cf, NewSolvedSet("1500A"), NewSolvedSet()))

	// the judge set never marks other platforms
	assert.False(t, IsSolved(lc, NewSolvedSet("Two Sum"), NewSolvedSet()))
	assert.True(t, IsSolved(lc, NewSolvedSet(), NewSolvedSet("Two Sum")))

	assert.True(t, IsSolved(cfNoID, NewSolvedSet(), NewSolvedSet("Gym")))
	assert.False(t, IsJudgeTracked(cfNoID))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 100, Percent(7, 7))
	assert.Equal(t, 1, Percent(1, 200))
}

func TestFindGroup(t *testing.T) {
	groups := BuildGroups([]model.Problem{
		cfProblem("A", 1, "A", ptr(1200)),
		{Title: "LC", Platform: model.PlatformLeetCode},
	}, NewSolvedSet(), NewSolvedSet())

	g, ok := FindGroup(groups, "leetcode")
	require.True(t, ok)
	assert.Equal(t, "LeetCode", g.Name)

	g, ok = FindGroup(groups, "cf-1200")
	require.True(t, ok)
	assert.Equal(t, 1, g.TotalCount)

	_, ok = FindGroup(groups, "cf-9999")
	assert.False(t, ok)
}

func TestSolvedSet(t *testing.T) {
	s := NewSolvedSet("b", "a")
	s.Add("c")
	s.Remove("b")

	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("b"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "c"}, s.Keys())
}
