// Package model contains domain models passed between layers.
package model

// Level is one entry of the ranked list. Its rank is implicit from its
// position in the manifest.
type Level struct {
	// Path is the manifest identifier the level document was loaded from.
	Path string `json:"path"`

	Name             string   `json:"name"`
	Author           string   `json:"author"`
	Creators         []string `json:"creators"`
	Verifier         string   `json:"verifier"`
	Verification     string   `json:"verification"`
	Showcase         string   `json:"showcase,omitempty"`
	PercentToQualify int      `json:"percentToQualify"`
	ID               int      `json:"id"`
	Password         string   `json:"password,omitempty"`
	Enjoyment        *float64 `json:"enjoyment,omitempty"`
	Description      string   `json:"description,omitempty"`
	Records          []Record `json:"records"`
}

// Record is a single completion or progress entry on a level.
type Record struct {
	User    string `json:"user"`
	Percent int    `json:"percent"`
	Link    string `json:"link"`
	Mobile  bool   `json:"mobile"`
	Hz      int    `json:"hz"`
}

// Completion reports whether the record is a full (100%) run.
func (r Record) Completion() bool { return r.Percent == 100 }

// Slot is one rank position of a loaded list. Exactly one of Level and Err
// is set; a failed slot still consumes its rank.
type Slot struct {
	Path  string
	Level *Level
	Err   error
}

// Failed reports whether the slot holds an error marker.
func (s Slot) Failed() bool { return s.Level == nil }

// Editor is a list staff member from _editors.json.
type Editor struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Link string `json:"link,omitempty"`
}

// Editor roles.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleHelper = "helper"
	RoleDev    = "dev"
	RoleTrial  = "trial"
)

// Pack is a named bundle of level paths.
type Pack struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Levels      []string `json:"levels"`
}

// Contains reports whether path is a member of the pack.
func (p Pack) Contains(path string) bool {
	for _, l := range p.Levels {
		if l == path {
			return true
		}
	}
	return false
}
