package model

// ProblemStatus is a problem annotated with the requesting user's solved state.
type ProblemStatus struct {
	Problem
	Solved     bool `json:"solved"`
	Toggleable bool `json:"toggleable"` // manual checkbox is allowed
}

func (ps ProblemStatus) MarshalJSON() ([]byte, error) {
	type status struct {
		Solved     bool `json:"solved"`
		Toggleable bool `json:"toggleable"`
	}
	return mergeJSON(ps.Problem, status{Solved: ps.Solved, Toggleable: ps.Toggleable})
}

// Group is a derived bucket of problems shown as one card on the board.
type Group struct {
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Platform        Platform        `json:"platform"`
	Rating          *int            `json:"rating,omitempty"`
	TotalCount      int             `json:"total_count"`
	SolvedCount     int             `json:"solved_count"`
	ProgressPercent int             `json:"progress_percent"`
	Problems        []ProblemStatus `json:"problems,omitempty"`
}
