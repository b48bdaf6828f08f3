package model

// CatalogEntry is one problem of the Codeforces problemset catalog.
type CatalogEntry struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name,omitempty"`
	Rating    *int     `json:"rating,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// JudgeSubmission is one entry of a user's Codeforces submission history.
type JudgeSubmission struct {
	ID        int64  `json:"id"`
	ContestID int    `json:"contestId"`
	Verdict   string `json:"verdict"`
	Problem   struct {
		ContestID int    `json:"contestId"`
		Index     string `json:"index"`
	} `json:"problem"`
}

const VerdictAccepted = "OK"
