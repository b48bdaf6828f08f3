package model

import "time"

// ManualProgress is one manually ticked problem of a user.
type ManualProgress struct {
	UserID       string    `json:"user_id"`
	ProblemTitle string    `json:"problem_title"`
	CreatedAt    time.Time `json:"created_at"`
}

type SyncStatus struct {
	Busy         bool       `json:"busy"`
	LastError    string     `json:"last_error,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	SolvedCount  int        `json:"solved_count"`
}

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Preferences struct {
	Theme    string `json:"theme"`
	ShowTags bool   `json:"show_tags"`
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeDark, ShowTags: true}
}
