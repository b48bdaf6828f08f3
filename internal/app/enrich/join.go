// Package enrich joins the local problem list with the Codeforces catalog.
package enrich

import (
	"strconv"

	"cm_sheet/internal/domain/judge"
	"cm_sheet/internal/domain/model"
)

// Stats summarises one join.
type Stats struct {
	Total     int
	Rated     int
	Platforms []model.Platform // first-seen order
}

// Join returns a copy of problems with platform, rating, contestId and index
// derived from each link and the catalog. Derived fields already present on
// the input are ignored, so joining its own output again yields the same list.
func Join(catalog []model.CatalogEntry, problems []model.Problem) ([]model.Problem, Stats) {
	ratings := make(map[string]*int, len(catalog))
	for _, e := range catalog {
		ratings[judge.Key(e.ContestID, e.Index)] = e.Rating
	}

	stats := Stats{Total: len(problems)}
	seen := make(map[model.Platform]bool)
	out := make([]model.Problem, len(problems))
	for i, p := range problems {
		p.Platform = judge.DetectPlatform(p.Link)
		p.Rating, p.ContestID, p.Index = nil, nil, nil

		if p.Platform == model.PlatformCodeforces {
			if id, ok := judge.ExtractCodeforcesID(p.Link); ok {
				contestID, err := strconv.Atoi(id.ContestID)
				if err == nil {
					index := id.Index
					p.ContestID = &contestID
					p.Index = &index
					p.Rating = lookupRating(ratings, id.Key())
				}
			}
		}
		if p.Rating != nil {
			stats.Rated++
		}
		if !seen[p.Platform] {
			seen[p.Platform] = true
			stats.Platforms = append(stats.Platforms, p.Platform)
		}
		out[i] = p
	}
	return out, stats
}

// lookupRating returns a fresh pointer so output records never share state
// with the catalog. Zero ratings count as unknown.
func lookupRating(ratings map[string]*int, key string) *int {
	r, ok := ratings[key]
	if !ok || r == nil || *r == 0 {
		return nil
	}
	v := *r
	return &v
}
