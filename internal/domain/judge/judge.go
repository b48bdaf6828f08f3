// Package judge classifies problem links by the online judge hosting them and
// extracts Codeforces problem identifiers.
package judge

import (
	"regexp"
	"strconv"
	"strings"

	"cm_sheet/internal/domain/model"
)

var platformDomains = []struct {
	domain   string
	platform model.Platform
}{
	{"codeforces.com", model.PlatformCodeforces},
	{"atcoder.jp", model.PlatformAtCoder},
	{"cses.fi", model.PlatformCSES},
	{"leetcode.com", model.PlatformLeetCode},
	{"codechef.com", model.PlatformCodeChef},
	{"codingninjas.com", model.PlatformCodingNinjas},
	{"hackerrank.com", model.PlatformHackerRank},
}

// DetectPlatform returns the platform whose domain appears in link, or
// model.PlatformOther.
func DetectPlatform(link string) model.Platform {
	for _, d := range platformDomains {
		if strings.Contains(link, d.domain) {
			return d.platform
		}
	}
	return model.PlatformOther
}

var (
	contestProblemRe    = regexp.MustCompile(`contest/(\d+)/problem/(\w+)`)
	problemsetProblemRe = regexp.MustCompile(`problemset/problem/(\d+)/(\w+)`)
)

// ProblemID identifies a Codeforces problem as captured from a URL.
type ProblemID struct {
	ContestID string
	Index     string
}

// Key is the composite catalog key, contest id and index concatenated.
func (id ProblemID) Key() string {
	return id.ContestID + id.Index
}

// ExtractCodeforcesID recognises contest and problemset problem URLs.
// ok is false when link has neither shape.
func ExtractCodeforcesID(link string) (id ProblemID, ok bool) {
	for _, re := range []*regexp.Regexp{contestProblemRe, problemsetProblemRe} {
		if m := re.FindStringSubmatch(link); m != nil {
			return ProblemID{ContestID: m[1], Index: m[2]}, true
		}
	}
	return ProblemID{}, false
}

// Key builds the composite key used by both the catalog and submission history.
func Key(contestID int, index string) string {
	return strconv.Itoa(contestID) + index
}

// ProblemKey returns the judge key of an enriched problem.
func ProblemKey(p model.Problem) (string, bool) {
	if !p.HasJudgeID() {
		return "", false
	}
	return Key(*p.ContestID, *p.Index), true
}
