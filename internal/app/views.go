package service

import "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/model"

// PackRef names a pack a level belongs to.
type PackRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListEntry is one rank position of the list. Level is nil and Error set
// when the slot failed to load.
type ListEntry struct {
	Rank   int          `json:"rank"`
	Path   string       `json:"path"`
	Level  *model.Level `json:"level,omitempty"`
	Error  string       `json:"error,omitempty"`
	Points float64      `json:"points"`
	Packs  []PackRef    `json:"packs"`
}

// ListView is the whole ranked list.
type ListView struct {
	Levels         []ListEntry `json:"levels"`
	Errors         []string    `json:"errors"`
	PacksAvailable bool        `json:"packsAvailable"`
}

// LevelView is a single list entry with media links resolved.
type LevelView struct {
	ListEntry
	// QualifyPoints is what a run at exactly percentToQualify earns.
	QualifyPoints float64 `json:"qualifyPoints"`
	Embed         string  `json:"embed"`
	Thumbnail     string  `json:"thumbnail"`
	// ShowcaseEmbed is set when the level has a showcase video.
	ShowcaseEmbed string `json:"showcaseEmbed,omitempty"`
}

// BoardEntry is a leaderboard row with its 1-based position on the full
// board.
type BoardEntry struct {
	Position int `json:"position"`
	model.UserAggregate
}

// BoardView is the leaderboard, possibly filtered.
type BoardView struct {
	Users          []BoardEntry `json:"users"`
	Total          int          `json:"total"`
	Errors         []string     `json:"errors"`
	PackPolicy     string       `json:"packPolicy"`
	PacksAvailable bool         `json:"packsAvailable"`
}

// PackLevel is a pack member resolved against the list. Rank is zero when
// the level is not on the list or failed to load.
type PackLevel struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// PackView is a pack with its members resolved.
type PackView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Author      string      `json:"author"`
	Description string      `json:"description"`
	Levels      []PackLevel `json:"levels"`
	Points      float64     `json:"points"`
}

// PacksView lists the packs. Available is false when _packs.json could not
// be loaded.
type PacksView struct {
	Packs     []PackView `json:"packs"`
	Available bool       `json:"available"`
}

// EditorsView lists the staff. Available is false when _editors.json could
// not be loaded.
type EditorsView struct {
	Editors   []model.Editor `json:"editors"`
	Available bool           `json:"available"`
}
