// Package service provides the core business service behind the HTTP API
// and the CLI. Every call reads fresh documents; nothing is cached between
// calls.
package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/leaderboard"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/media"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/model"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/scoring"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/logger"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/metrics"
)

// Loader reads list documents.
type Loader interface {
	FetchList(ctx context.Context) ([]model.Slot, error)
	FetchEditors(ctx context.Context) ([]model.Editor, error)
	FetchPacks(ctx context.Context) ([]model.Pack, error)
}

// Service implements the API dependencies for the demon list.
type Service struct {
	loader     Loader
	aggregator *leaderboard.Aggregator
	packPolicy scoring.PackPolicy
	logger     logger.Logger

	requests     atomic.Int64
	aggregations atomic.Int64

	mu   sync.RWMutex
	last aggregationStats
}

type aggregationStats struct {
	at     time.Time
	users  int
	levels int
	failed int
}

// snapshot is one consistent read of the data store.
type snapshot struct {
	slots []model.Slot
	packs []model.Pack // nil when unavailable
}

// New constructs a Service over loader.
func New(loader Loader, opts ...Option) *Service {
	s := &Service{
		loader:     loader,
		packPolicy: scoring.PackPolicyNone,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	s.aggregator = leaderboard.New(leaderboard.WithPackPolicy(s.packPolicy))
	return s
}

// load fetches the list and the packs concurrently. Only a list failure is
// returned; unavailable packs leave snapshot.packs nil.
func (s *Service) load(ctx context.Context) (snapshot, error) {
	s.requests.Add(1)

	var (
		snap    snapshot
		listErr error
		wg      conc.WaitGroup
	)
	wg.Go(func() {
		snap.slots, listErr = s.loader.FetchList(ctx)
	})
	wg.Go(func() {
		packs, err := s.loader.FetchPacks(ctx)
		if err == nil {
			snap.packs = packs
		}
	})
	wg.Wait()

	if listErr != nil {
		return snapshot{}, listErr
	}
	return snap, nil
}

// List returns the slots of the list with their points and packs. A
// non-empty query keeps only loaded levels whose name contains it,
// case-insensitively; ranks still refer to the full list.
func (s *Service) List(ctx context.Context, query string) (ListView, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return ListView{}, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	view := ListView{
		Levels:         make([]ListEntry, 0, len(snap.slots)),
		Errors:         []string{},
		PacksAvailable: snap.packs != nil,
	}
	for i, slot := range snap.slots {
		if slot.Failed() {
			view.Errors = append(view.Errors, slot.Path)
		}
		if q != "" && (slot.Failed() || !strings.Contains(strings.ToLower(slot.Level.Name), q)) {
			continue
		}
		view.Levels = append(view.Levels, entry(i+1, slot, snap.packs))
	}
	return view, nil
}

// Level returns the slot at a 1-based rank.
func (s *Service) Level(ctx context.Context, rank int) (LevelView, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return LevelView{}, err
	}
	if rank < 1 || rank > len(snap.slots) {
		return LevelView{}, fmt.Errorf("%w: rank %d", ErrNotFound, rank)
	}

	slot := snap.slots[rank-1]
	if slot.Failed() {
		if slot.Err != nil {
			return LevelView{}, slot.Err
		}
		return LevelView{}, fmt.Errorf("%w: #%d %s", ErrLevelUnavailable, rank, slot.Path)
	}

	view := LevelView{
		ListEntry:     entry(rank, slot, snap.packs),
		QualifyPoints: scoring.Score(rank, slot.Level.PercentToQualify, slot.Level.PercentToQualify),
		Embed:         media.Embed(slot.Level.Verification),
		Thumbnail:     media.Thumbnail(slot.Level.Verification),
	}
	if slot.Level.Showcase != "" {
		view.ShowcaseEmbed = media.Embed(slot.Level.Showcase)
	}
	return view, nil
}

func entry(rank int, slot model.Slot, packs []model.Pack) ListEntry {
	e := ListEntry{Rank: rank, Path: slot.Path, Packs: []PackRef{}}
	if slot.Failed() {
		if slot.Err != nil {
			e.Error = slot.Err.Error()
		}
		return e
	}
	e.Level = slot.Level
	e.Points = scoring.Score(rank, 100, slot.Level.PercentToQualify)
	for _, p := range packs {
		if p.Contains(slot.Path) {
			e.Packs = append(e.Packs, PackRef{ID: p.ID, Name: p.Name})
		}
	}
	return e
}

// board loads and aggregates the full leaderboard.
func (s *Service) board(ctx context.Context) ([]model.UserAggregate, []string, snapshot, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, nil, snapshot{}, err
	}

	start := time.Now()
	users, failed := s.aggregator.Aggregate(snap.slots, snap.packs)
	took := time.Since(start)

	completions := 0
	for _, u := range users {
		completions += len(u.Packs)
	}
	metrics.RecordAggregation(float64(took.Microseconds())/1000, len(users), len(snap.slots), completions)
	s.aggregations.Add(1)

	s.mu.Lock()
	s.last = aggregationStats{at: time.Now(), users: len(users), levels: len(snap.slots), failed: len(failed)}
	s.mu.Unlock()

	if len(failed) > 0 {
		s.logger.Debug(ctx, "leaderboard built with failed levels",
			logger.Int("failed", len(failed)),
			logger.Duration("took", took),
		)
	}
	return users, failed, snap, nil
}

// Leaderboard returns the users ordered by total. A non-empty query keeps
// only users whose name contains it, case-insensitively; positions still
// refer to the full board.
func (s *Service) Leaderboard(ctx context.Context, query string) (BoardView, error) {
	users, failed, snap, err := s.board(ctx)
	if err != nil {
		return BoardView{}, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	view := BoardView{
		Users:          []BoardEntry{},
		Total:          len(users),
		Errors:         failed,
		PackPolicy:     string(s.packPolicy),
		PacksAvailable: snap.packs != nil,
	}
	for i, u := range users {
		if q != "" && !strings.Contains(strings.ToLower(u.User), q) {
			continue
		}
		view.Users = append(view.Users, BoardEntry{Position: i + 1, UserAggregate: u})
	}
	return view, nil
}

// User returns one leaderboard row, matched case-insensitively.
func (s *Service) User(ctx context.Context, name string) (BoardEntry, error) {
	users, _, _, err := s.board(ctx)
	if err != nil {
		return BoardEntry{}, err
	}
	pos, row := leaderboard.Find(users, strings.TrimSpace(name))
	if pos < 0 {
		return BoardEntry{}, fmt.Errorf("%w: user %q", ErrNotFound, name)
	}
	return BoardEntry{Position: pos + 1, UserAggregate: row}, nil
}

// Packs returns the packs in document order with their members resolved
// and sorted by rank. Members that are not on the list sort last. A
// non-empty query matches name or description, case-insensitively.
func (s *Service) Packs(ctx context.Context, query string) (PacksView, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return PacksView{}, err
	}
	if snap.packs == nil {
		return PacksView{Packs: []PackView{}, Available: false}, nil
	}

	type placed struct {
		rank int
		name string
	}
	index := make(map[string]placed, len(snap.slots))
	for i, slot := range snap.slots {
		if !slot.Failed() {
			index[slot.Path] = placed{rank: i + 1, name: slot.Level.Name}
		}
	}

	values := leaderboard.PackValues(snap.slots, snap.packs, s.packPolicy)
	q := strings.ToLower(strings.TrimSpace(query))

	view := PacksView{Packs: []PackView{}, Available: true}
	for i, p := range snap.packs {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}

		levels := make([]PackLevel, len(p.Levels))
		for j, path := range p.Levels {
			pl := PackLevel{Path: path, Name: path}
			if at, ok := index[path]; ok {
				pl.Rank = at.rank
				pl.Name = at.name
			}
			levels[j] = pl
		}
		slices.SortStableFunc(levels, func(a, b PackLevel) int {
			switch {
			case a.Rank == b.Rank:
				return 0
			case a.Rank == 0:
				return 1
			case b.Rank == 0:
				return -1
			default:
				return cmp.Compare(a.Rank, b.Rank)
			}
		})

		view.Packs = append(view.Packs, PackView{
			ID:          p.ID,
			Name:        p.Name,
			Author:      p.Author,
			Description: p.Description,
			Levels:      levels,
			Points:      scoring.Round(values[i]),
		})
	}
	return view, nil
}

// Editors returns the list staff. It never fails; an unavailable document
// yields Available=false.
func (s *Service) Editors(ctx context.Context) EditorsView {
	s.requests.Add(1)
	editors, err := s.loader.FetchEditors(ctx)
	if err != nil {
		return EditorsView{Editors: []model.Editor{}, Available: false}
	}
	return EditorsView{Editors: editors, Available: true}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"requests":     s.requests.Load(),
		"aggregations": s.aggregations.Load(),
		"packPolicy":   string(s.packPolicy),
		"lastUsers":    last.users,
		"lastLevels":   last.levels,
		"lastFailed":   last.failed,
	}
	if !last.at.IsZero() {
		stats["lastAggregatedAt"] = last.at.UTC().Format(time.RFC3339)
	}
	return stats
}
