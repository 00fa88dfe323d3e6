// Package audit checks a data directory for documents that would break or
// be ignored by the list.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/docstore"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/schema"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/model"
)

const documentPattern = "**/*.json"

// Issue is one problem found in a document.
type Issue struct {
	Document string      `json:"document"`
	Kind     schema.Kind `json:"kind"`
	Problem  string      `json:"problem"`
}

// Report is the outcome of an audit.
type Report struct {
	Levels     int      `json:"levels"`
	Invalid    []Issue  `json:"invalid"`
	Missing    []string `json:"missing"`
	Duplicates []string `json:"duplicates"`
	Orphans    []string `json:"orphans"`
}

// OK reports whether the list would load without failed slots. Orphans are
// informational.
func (r Report) OK() bool {
	return len(r.Invalid) == 0 && len(r.Missing) == 0 && len(r.Duplicates) == 0
}

// Option applies a configuration option to Run.
type Option func(*auditor)

// WithValidator shares an already compiled schema validator.
func WithValidator(v *schema.Validator) Option {
	return func(a *auditor) {
		if v != nil {
			a.validator = v
		}
	}
}

type auditor struct {
	fsys      fs.FS
	store     *docstore.DirStore
	validator *schema.Validator
	report    Report
}

// Run audits the documents in fsys.
func Run(ctx context.Context, fsys fs.FS, opts ...Option) (Report, error) {
	a := &auditor{
		fsys:  fsys,
		store: docstore.NewFS(fsys),
		report: Report{
			Invalid:    []Issue{},
			Missing:    []string{},
			Duplicates: []string{},
			Orphans:    []string{},
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.validator == nil {
		v, err := schema.New()
		if err != nil {
			return Report{}, err
		}
		a.validator = v
	}

	manifest, err := a.manifest(ctx)
	if err != nil {
		return Report{}, err
	}
	a.report.Levels = len(manifest)

	referenced := make(map[string]bool, len(manifest))
	for _, path := range manifest {
		if referenced[path] {
			a.report.Duplicates = append(a.report.Duplicates, path)
			continue
		}
		referenced[path] = true
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		a.check(ctx, schema.KindLevel, path)
	}

	a.check(ctx, schema.KindEditors, docstore.EditorsDocument)
	a.checkPacks(ctx, referenced)

	if err := a.orphans(referenced); err != nil {
		return Report{}, err
	}
	return a.report, nil
}

func (a *auditor) manifest(ctx context.Context) ([]string, error) {
	body, err := a.store.Fetch(ctx, docstore.ListDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoManifest, err)
	}
	if err := a.validator.Validate(schema.KindList, body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoManifest, err)
	}
	var paths []string
	if err := json.Unmarshal(body, &paths); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoManifest, err)
	}
	return paths, nil
}

// check validates one document. It returns the body when the document is
// present and valid.
func (a *auditor) check(ctx context.Context, kind schema.Kind, name string) []byte {
	body, err := a.store.Fetch(ctx, name)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		if kind == schema.KindLevel {
			a.report.Missing = append(a.report.Missing, name)
		}
		return nil
	case err != nil:
		a.issue(name, kind, err)
		return nil
	}
	if err := a.validator.Validate(kind, body); err != nil {
		a.issue(name, kind, err)
		return nil
	}
	return body
}

func (a *auditor) checkPacks(ctx context.Context, referenced map[string]bool) {
	body := a.check(ctx, schema.KindPacks, docstore.PacksDocument)
	if body == nil {
		return
	}
	var packs []model.Pack
	if err := json.Unmarshal(body, &packs); err != nil {
		a.issue(docstore.PacksDocument, schema.KindPacks, err)
		return
	}
	for _, p := range packs {
		if len(p.Levels) == 0 {
			a.issue(docstore.PacksDocument, schema.KindPacks,
				fmt.Errorf("pack %q has no levels and is awarded to every user", p.ID))
		}
		for _, l := range p.Levels {
			if !referenced[l] {
				a.issue(docstore.PacksDocument, schema.KindPacks,
					fmt.Errorf("pack %q references %q which is not on the list", p.ID, l))
			}
		}
	}
}

func (a *auditor) orphans(referenced map[string]bool) error {
	matches, err := doublestar.Glob(a.fsys, documentPattern)
	if err != nil {
		return fmt.Errorf("glob %s: %w", documentPattern, err)
	}
	for _, m := range matches {
		name := strings.TrimSuffix(m, ".json")
		if strings.HasPrefix(name, "_") || referenced[name] {
			continue
		}
		a.report.Orphans = append(a.report.Orphans, m)
	}
	slices.Sort(a.report.Orphans)
	return nil
}

func (a *auditor) issue(name string, kind schema.Kind, err error) {
	a.report.Invalid = append(a.report.Invalid, Issue{Document: name, Kind: kind, Problem: err.Error()})
}
