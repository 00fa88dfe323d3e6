package model

// ScoreEntry is one scored line on a user's profile.
type ScoreEntry struct {
	Rank  int     `json:"rank"`
	Level string  `json:"level"`
	Path  string  `json:"path"`
	Score float64 `json:"score"`
	Link  string  `json:"link"`
}

// ProgressEntry is a non-100% record. Score may be zero when the percent is
// below the level's qualifying threshold.
type ProgressEntry struct {
	ScoreEntry
	Percent int `json:"percent"`
}

// PackEntry marks a fully completed pack.
type PackEntry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// UserAggregate is one leaderboard row.
type UserAggregate struct {
	User       string          `json:"user"`
	Total      float64         `json:"total"`
	Verified   []ScoreEntry    `json:"verified"`
	Completed  []ScoreEntry    `json:"completed"`
	Progressed []ProgressEntry `json:"progressed"`
	Packs      []PackEntry     `json:"packs"`
}
