package judge

import (
	"testing"

	"cm_sheet/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		link string
		want model.Platform
	}{
		{"https://codeforces.com/contest/1500/problem/A", model.PlatformCodeforces},
		{"https://atcoder.jp/contests/abc300/tasks/abc300_a", model.PlatformAtCoder},
		{"https://cses.fi/problemset/task/1068", model.PlatformCSES},
		{"https://leetcode.com/problems/two-sum/", model.PlatformLeetCode},
		{"https://www.codechef.com/problems/FLOW001", model.PlatformCodeChef},
		{"https://www.codingninjas.com/studio/problems/x", model.PlatformCodingNinjas},
		{"https://www.hackerrank.com/challenges/solve-me-first", model.PlatformHackerRank},
		{"https://spoj.com/problems/TEST", model.PlatformOther},
		{"", model.PlatformOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectPlatform(tt.link), tt.link)
	}
}

func TestExtractCodeforcesID(t *testing.T) {
	tests := []struct {
		name   string
		link   string
		want   ProblemID
		wantOK bool
	}{
		{"contest url", "https://codeforces.com/contest/1500/problem/A", ProblemID{"1500", "A"}, true},
		{"problemset url", "https://codeforces.com/problemset/problem/4/A", ProblemID{"4", "A"}, true},
		{"sub index", "https://codeforces.com/contest/1779/problem/B1", ProblemID{"1779", "B1"}, true},
		{"lowercase index kept", "https://codeforces.com/contest/12/problem/c", ProblemID{"12", "c"}, true},
		{"group contest", "https://codeforces.com/group/MWSDmqGsZm/contest/219158/problem/A", ProblemID{"219158", "A"}, true},
		{"gym", "https://codeforces.com/gym/102951/problem/A", ProblemID{}, false},
		{"contest page", "https://codeforces.com/contest/1500", ProblemID{}, false},
		{"not codeforces", "https://leetcode.com/problems/two-sum/", ProblemID{}, false},
		{"malformed", "::::", ProblemID{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCodeforcesID(tt.link)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProblemKey(t *testing.T) {
	contest, index := 1500, "A"
	key, ok := ProblemKey(model.Problem{ContestID: &contest, Index: &index})
	assert.True(t, ok)
	assert.Equal(t, "1500A", key)
	assert.Equal(t, key, ProblemID{ContestID: "1500", Index: "A"}.Key())

	_, ok = ProblemKey(model.Problem{ContestID: &contest})
	assert.False(t, ok)
}
