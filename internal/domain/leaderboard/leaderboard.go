// Package leaderboard turns a ranked list and its records into per-user
// point totals.
package leaderboard

import (
	"slices"
	"strings"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/model"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/scoring"
)

// Aggregator builds leaderboards. It holds no state between passes and is
// safe for concurrent use.
type Aggregator struct {
	packPolicy scoring.PackPolicy
}

// New creates an Aggregator. Packs award no points unless WithPackPolicy
// says otherwise.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{packPolicy: scoring.PackPolicyNone}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PackPolicy returns the configured pack scoring policy.
func (a *Aggregator) PackPolicy() scoring.PackPolicy { return a.packPolicy }

// accumulator collects one user's entries during a pass.
type accumulator struct {
	row     model.UserAggregate
	cleared map[string]struct{} // level paths completed or verified
}

func (acc *accumulator) clear(path string) {
	acc.cleared[path] = struct{}{}
}

// users maps a lowercased name to its accumulator and remembers discovery
// order. The first spelling seen becomes the display name.
type users struct {
	byKey map[string]int
	order []*accumulator
}

func newUsers() *users {
	return &users{byKey: make(map[string]int)}
}

func (u *users) resolve(name string) *accumulator {
	key := strings.ToLower(name)
	if i, ok := u.byKey[key]; ok {
		return u.order[i]
	}
	acc := &accumulator{
		row: model.UserAggregate{
			User:       name,
			Verified:   []model.ScoreEntry{},
			Completed:  []model.ScoreEntry{},
			Progressed: []model.ProgressEntry{},
			Packs:      []model.PackEntry{},
		},
		cleared: make(map[string]struct{}),
	}
	u.byKey[key] = len(u.order)
	u.order = append(u.order, acc)
	return acc
}

// Aggregate scores every loaded slot and returns the users ordered by total,
// highest first, together with the paths of the failed slots. Users with
// equal totals keep the order in which they were first seen. A nil packs
// slice means packs are unavailable and no pack entries are produced.
func (a *Aggregator) Aggregate(list []model.Slot, packs []model.Pack) ([]model.UserAggregate, []string) {
	idx := newUsers()
	failed := []string{}

	for i, slot := range list {
		if slot.Failed() {
			failed = append(failed, slot.Path)
			continue
		}
		rank := i + 1
		level := slot.Level
		full := scoring.Score(rank, 100, level.PercentToQualify)

		verifier := idx.resolve(level.Verifier)
		verifier.row.Verified = append(verifier.row.Verified, model.ScoreEntry{
			Rank:  rank,
			Level: level.Name,
			Path:  slot.Path,
			Score: full,
			Link:  level.Verification,
		})
		verifier.clear(slot.Path)

		for _, record := range level.Records {
			acc := idx.resolve(record.User)
			if record.Completion() {
				acc.row.Completed = append(acc.row.Completed, model.ScoreEntry{
					Rank:  rank,
					Level: level.Name,
					Path:  slot.Path,
					Score: full,
					Link:  record.Link,
				})
				acc.clear(slot.Path)
				continue
			}
			acc.row.Progressed = append(acc.row.Progressed, model.ProgressEntry{
				ScoreEntry: model.ScoreEntry{
					Rank:  rank,
					Level: level.Name,
					Path:  slot.Path,
					Score: scoring.Score(rank, record.Percent, level.PercentToQualify),
					Link:  record.Link,
				},
				Percent: record.Percent,
			})
		}
	}

	if packs != nil {
		values := PackValues(list, packs, a.packPolicy)
		for _, acc := range idx.order {
			for i, pack := range packs {
				if covers(acc.cleared, pack) {
					acc.row.Packs = append(acc.row.Packs, model.PackEntry{Name: pack.Name, Score: values[i]})
				}
			}
		}
	}

	out := make([]model.UserAggregate, len(idx.order))
	for i, acc := range idx.order {
		acc.row.Total = scoring.Round(total(acc.row))
		out[i] = acc.row
	}
	slices.SortStableFunc(out, func(x, y model.UserAggregate) int {
		switch {
		case x.Total > y.Total:
			return -1
		case x.Total < y.Total:
			return 1
		default:
			return 0
		}
	})
	return out, failed
}

// covers reports whether every member of the pack is in cleared. A pack
// with no members is covered by everyone.
func covers(cleared map[string]struct{}, pack model.Pack) bool {
	for _, path := range pack.Levels {
		if _, ok := cleared[path]; !ok {
			return false
		}
	}
	return true
}

// PackValues returns the points each pack awards under policy, in pack
// order. Members that are not loaded contribute nothing.
func PackValues(list []model.Slot, packs []model.Pack, policy scoring.PackPolicy) []float64 {
	values := make([]float64, len(packs))
	multiplier := policy.Multiplier()
	if multiplier == 0 {
		return values
	}
	full := make(map[string]float64, len(list))
	for i, slot := range list {
		if slot.Failed() {
			continue
		}
		full[slot.Path] = scoring.Score(i+1, 100, slot.Level.PercentToQualify)
	}
	for i, pack := range packs {
		var sum float64
		for _, path := range pack.Levels {
			sum += full[path]
		}
		values[i] = sum * multiplier
	}
	return values
}

func total(row model.UserAggregate) float64 {
	var sum float64
	for _, e := range row.Verified {
		sum += e.Score
	}
	for _, e := range row.Completed {
		sum += e.Score
	}
	for _, e := range row.Progressed {
		sum += e.Score
	}
	for _, e := range row.Packs {
		sum += e.Score
	}
	return sum
}

// Find returns the position and row of name in a board, matching
// case-insensitively. The position is -1 when the user is absent.
func Find(board []model.UserAggregate, name string) (int, model.UserAggregate) {
	key := strings.ToLower(name)
	for i, row := range board {
		if strings.ToLower(row.User) == key {
			return i, row
		}
	}
	return -1, model.UserAggregate{}
}
