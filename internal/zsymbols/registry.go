package zsymbols

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

// StructFieldDef is the resolved counterpart of zast.StructFieldDecl:
// the field's TypeAnnotation has been turned into a ztype.Type.
type StructFieldDef struct {
	Name       string
	Type       *ztype.Type
	HasDefault bool
	IsConst    bool
	IsWeak     bool
	Default    *zast.Expr
}

// StructDef is spec.md §3's struct/class definition: a canonical
// name, an ordered field list (emission order must match declaration
// order — spec.md §4.5 "Emit order matters"), and the is_class flag
// that decides whether instances are ARC'd.
type StructDef struct {
	Name    string
	Fields  []StructFieldDef
	IsClass bool

	// HasRCFields is true if any field recursively contains a
	// reference-kind field (spec.md §3, "A struct has RC fields if
	// ..."). Set by the analyzer at the end of the definition's own
	// analysis, once its field types are resolved.
	HasRCFields bool
}

// Registry is the process-wide (per-compilation) struct/class table,
// keyed by canonical name with insertion order preserved for
// deterministic emission (spec.md §4.2).
type Registry struct {
	byName map[string]*StructDef
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*StructDef)}
}

// Lookup returns the StructDef registered under name, if any.
func (r *Registry) Lookup(name string) (*StructDef, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Register inserts def under its own Name. It fails (returns false)
// if a different definition already owns that name — callers use this
// to detect duplicate type-defs, while anonymous tuple/object
// registration instead calls RegisterIfAbsent.
func (r *Registry) Register(def *StructDef) bool {
	if _, exists := r.byName[def.Name]; exists {
		return false
	}
	r.byName[def.Name] = def
	r.order = append(r.order, def.Name)
	return true
}

// RegisterIfAbsent returns the existing StructDef for name if one is
// already registered (spec.md §8: "Two distinct occurrences of a
// tuple literal with the same positional component types resolve to
// the same StructDef"), otherwise registers and returns def.
func (r *Registry) RegisterIfAbsent(name string, def *StructDef) *StructDef {
	if existing, ok := r.byName[name]; ok {
		return existing
	}
	r.byName[name] = def
	r.order = append(r.order, name)
	return def
}

// InOrder returns every registered StructDef in insertion order, the
// order the type-layout emitter must walk to satisfy spec.md §4.5's
// forward-reference rules.
func (r *Registry) InOrder() []*StructDef {
	out := make([]*StructDef, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
