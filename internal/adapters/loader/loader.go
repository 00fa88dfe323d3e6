// Package loader reads the ranked list and its companion documents from a
// document store.
package loader

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/docstore"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/schema"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/model"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/logger"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/metrics"
)

// Loader fetches, validates and decodes list documents.
type Loader struct {
	store       docstore.Store
	validator   *schema.Validator
	logger      logger.Logger
	concurrency int
}

// New creates a Loader over store.
func New(store docstore.Store, opts ...Option) (*Loader, error) {
	l := &Loader{store: store}
	for _, opt := range opts {
		opt(l)
	}

	if l.validator == nil {
		v, err := schema.New()
		if err != nil {
			return nil, err
		}
		l.validator = v
	}
	if l.logger == nil {
		l.logger = logger.Named("loader")
	}
	return l, nil
}

type levelRef struct {
	rank int
	path string
}

// FetchList loads the manifest and every level it names. Levels are fetched
// concurrently; the result keeps manifest order and a failed level stays in
// place as a slot carrying its error.
func (l *Loader) FetchList(ctx context.Context) ([]model.Slot, error) {
	paths, err := decode[[]string](ctx, l, schema.KindList, docstore.ListDocument)
	if err != nil {
		metrics.RecordListUnavailable()
		metrics.RecordErrorByComponent("loader", "list_unavailable")
		l.logger.Error(ctx, "failed to load list", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrListUnavailable, err)
	}

	refs := make([]levelRef, len(paths))
	for i, p := range paths {
		refs[i] = levelRef{rank: i + 1, path: p}
	}

	mapper := iter.Mapper[levelRef, model.Slot]{MaxGoroutines: l.concurrency}
	slots := mapper.Map(refs, func(ref *levelRef) model.Slot {
		return l.loadLevel(ctx, *ref)
	})

	return slots, nil
}

func (l *Loader) loadLevel(ctx context.Context, ref levelRef) model.Slot {
	level, err := decode[model.Level](ctx, l, schema.KindLevel, ref.path)
	if err != nil {
		metrics.RecordLevelFailure()
		metrics.RecordErrorByComponent("loader", "level_unavailable")
		l.logger.Warn(ctx, "failed to load level",
			logger.Int("rank", ref.rank),
			logger.String("path", ref.path),
			logger.Error(err),
		)
		return model.Slot{
			Path: ref.path,
			Err:  fmt.Errorf("%w: #%d %s: %w", ErrLevelUnavailable, ref.rank, ref.path, err),
		}
	}

	level.Path = ref.path
	if level.Records == nil {
		level.Records = []model.Record{}
	}
	slices.SortStableFunc(level.Records, func(a, b model.Record) int {
		return cmp.Compare(b.Percent, a.Percent)
	})

	return model.Slot{Path: ref.path, Level: &level}
}

// FetchEditors loads the staff list. Failure is not fatal to callers.
func (l *Loader) FetchEditors(ctx context.Context) ([]model.Editor, error) {
	editors, err := decode[[]model.Editor](ctx, l, schema.KindEditors, docstore.EditorsDocument)
	if err != nil {
		l.logger.Warn(ctx, "failed to load editors", logger.Error(err))
		return nil, fmt.Errorf("%w: editors: %w", ErrUnavailable, err)
	}
	return editors, nil
}

// FetchPacks loads the pack definitions. Failure is not fatal to callers.
func (l *Loader) FetchPacks(ctx context.Context) ([]model.Pack, error) {
	packs, err := decode[[]model.Pack](ctx, l, schema.KindPacks, docstore.PacksDocument)
	if err != nil {
		l.logger.Warn(ctx, "failed to load packs", logger.Error(err))
		return nil, fmt.Errorf("%w: packs: %w", ErrUnavailable, err)
	}
	if packs == nil {
		packs = []model.Pack{}
	}
	return packs, nil
}

// decode fetches one document, checks it against its schema and unmarshals
// it. Each call records exactly one fetch outcome.
func decode[T any](ctx context.Context, l *Loader, kind schema.Kind, name string) (T, error) {
	var out T
	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		metrics.RecordDocumentFetch(string(kind), outcome, float64(time.Since(start).Microseconds())/1000)
	}()

	body, err := l.store.Fetch(ctx, name)
	if err != nil {
		outcome = metrics.OutcomeFetchError
		return out, err
	}

	if err := l.validator.Validate(kind, body); err != nil {
		outcome = metrics.OutcomeSchemaError
		if errors.Is(err, schema.ErrMalformed) {
			outcome = metrics.OutcomeDecodeError
		}
		return out, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		outcome = metrics.OutcomeDecodeError
		return out, fmt.Errorf("%w: %s: %v", schema.ErrMalformed, name, err)
	}
	return out, nil
}
