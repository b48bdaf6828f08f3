package service

import "cm_sheet/internal/domain/model"

// ProblemCatalog is the problem list loaded once at start. It is read-only
// after construction and safe for concurrent use.
type ProblemCatalog struct {
	problems []model.Problem
	byTitle  map[string][]int
}

func NewProblemCatalog(problems []model.Problem) *ProblemCatalog {
	c := &ProblemCatalog{
		problems: problems,
		byTitle:  make(map[string][]int, len(problems)),
	}
	for i, p := range problems {
		c.byTitle[p.Title] = append(c.byTitle[p.Title], i)
	}
	return c
}

func (c *ProblemCatalog) All() []model.Problem {
	return c.problems
}

// ByTitle returns every entry with the title, in list order. Entries sharing a
// title share one manual solved mark.
func (c *ProblemCatalog) ByTitle(title string) []model.Problem {
	idx := c.byTitle[title]
	if len(idx) == 0 {
		return nil
	}
	out := make([]model.Problem, len(idx))
	for i, j := range idx {
		out[i] = c.problems[j]
	}
	return out
}
