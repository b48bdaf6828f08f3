// Package progress computes per-problem solved state and the grouped board.
package progress

import (
	"fmt"
	"math"
	"sort"

	"cm_sheet/internal/domain/judge"
	"cm_sheet/internal/domain/model"

	"github.com/gosimple/slug"
)

const (
	groupCFUnrated = "CF Unrated"
	groupAtCoder   = "AtCoder"
	groupCSES      = "CSES"
	groupLeetCode  = "LeetCode"
	groupOther     = "Other Platforms"
)

// PlatformOf returns the stored platform, or the one detected from the link
// for lists that were never enriched.
func PlatformOf(p model.Problem) model.Platform {
	if p.Platform != "" {
		return p.Platform
	}
	return judge.DetectPlatform(p.Link)
}

// IsJudgeTracked reports whether the solved state of p comes from the judge.
// Such problems cannot be toggled manually.
func IsJudgeTracked(p model.Problem) bool {
	return PlatformOf(p).JudgeTrackable() && p.HasJudgeID()
}

// IsSolved is the single place deciding which set answers for a problem.
func IsSolved(p model.Problem, judgeSolved, manualSolved SolvedSet) bool {
	if IsJudgeTracked(p) {
		key, _ := judge.ProblemKey(p)
		return judgeSolved.Has(key)
	}
	return manualSolved.Has(p.Title)
}

// BuildGroups partitions problems into board groups: Codeforces ratings
// ascending, then CF Unrated, AtCoder, CSES, LeetCode and Other Platforms.
// Empty groups are left out. Problems keep their list order inside a group.
func BuildGroups(problems []model.Problem, judgeSolved, manualSolved SolvedSet) []model.Group {
	byRating := make(map[int][]model.Problem)
	named := make(map[string][]model.Problem)

	for _, p := range problems {
		platform := PlatformOf(p)
		p.Platform = platform
		switch platform {
		case model.PlatformCodeforces:
			if p.Rating != nil && *p.Rating > 0 {
				byRating[*p.Rating] = append(byRating[*p.Rating], p)
			} else {
				named[groupCFUnrated] = append(named[groupCFUnrated], p)
			}
		case model.PlatformAtCoder:
			named[groupAtCoder] = append(named[groupAtCoder], p)
		case model.PlatformCSES:
			named[groupCSES] = append(named[groupCSES], p)
		case model.PlatformLeetCode:
			named[groupLeetCode] = append(named[groupLeetCode], p)
		default:
			named[groupOther] = append(named[groupOther], p)
		}
	}

	ratings := make([]int, 0, len(byRating))
	for r := range byRating {
		ratings = append(ratings, r)
	}
	sort.Ints(ratings)

	groups := make([]model.Group, 0, len(ratings)+5)
	for _, r := range ratings {
		rating := r
		g := newGroup(fmt.Sprintf("CF %d", r), model.PlatformCodeforces, byRating[r], judgeSolved, manualSolved)
		g.Rating = &rating
		groups = append(groups, g)
	}

	for _, bucket := range []struct {
		name     string
		platform model.Platform
	}{
		{groupCFUnrated, model.PlatformCodeforces},
		{groupAtCoder, model.PlatformAtCoder},
		{groupCSES, model.PlatformCSES},
		{groupLeetCode, model.PlatformLeetCode},
		{groupOther, model.PlatformOther},
	} {
		members := named[bucket.name]
		if len(members) == 0 {
			continue
		}
		groups = append(groups, newGroup(bucket.name, bucket.platform, members, judgeSolved, manualSolved))
	}
	return groups
}

func newGroup(name string, platform model.Platform, members []model.Problem, judgeSolved, manualSolved SolvedSet) model.Group {
	g := model.Group{
		Name:       name,
		Slug:       slug.Make(name),
		Platform:   platform,
		TotalCount: len(members),
		Problems:   make([]model.ProblemStatus, len(members)),
	}
	for i, p := range members {
		solved := IsSolved(p, judgeSolved, manualSolved)
		if solved {
			g.SolvedCount++
		}
		g.Problems[i] = model.ProblemStatus{
			Problem:    p,
			Solved:     solved,
			Toggleable: !IsJudgeTracked(p),
		}
	}
	g.ProgressPercent = Percent(g.SolvedCount, g.TotalCount)
	return g
}

// Percent rounds solved/total to a whole percentage, half away from zero.
func Percent(solved, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(solved) / float64(total) * 100))
}

// FindGroup returns the group with the given slug.
func FindGroup(groups []model.Group, groupSlug string) (model.Group, bool) {
	for _, g := range groups {
		if g.Slug == groupSlug {
			return g, true
		}
	}
	return model.Group{}, false
}
