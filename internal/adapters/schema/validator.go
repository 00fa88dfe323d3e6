// Package schema checks list documents against embedded CUE definitions.
package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var source []byte

// Kind names a document type.
type Kind string

// Document kinds.
const (
	KindList    Kind = "list"
	KindLevel   Kind = "level"
	KindEditors Kind = "editors"
	KindPacks   Kind = "packs"
)

var definitions = map[Kind]string{
	KindList:    "#List",
	KindLevel:   "#Level",
	KindEditors: "#Editors",
	KindPacks:   "#Packs",
}

// Validator holds the compiled definitions. It is safe for concurrent use.
type Validator struct {
	mu   sync.Mutex
	ctx  *cue.Context
	defs map[Kind]cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()
	root := ctx.CompileBytes(source, cue.Filename("schema.cue"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	v := &Validator{ctx: ctx, defs: make(map[Kind]cue.Value, len(definitions))}
	for kind, def := range definitions {
		val := root.LookupPath(cue.ParsePath(def))
		if !val.Exists() {
			return nil, fmt.Errorf("schema definition %s missing", def)
		}
		v.defs[kind] = val
	}
	return v, nil
}

// Validate checks that data is JSON and matches the definition for kind.
func (v *Validator) Validate(kind Kind, data []byte) error {
	def, ok := v.defs[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	expr, err := cuejson.Extract(string(kind)+".json", data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, kind, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	doc := v.ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, kind, err)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrSchema, kind, firstError(err))
	}
	return nil
}

// firstError keeps the report to one line per document.
func firstError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	msg := errs[0].Error()
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(errs)-1)
	}
	return msg
}
