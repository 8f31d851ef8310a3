// Package zsymbols implements spec.md §4.2's two registries: a scope
// stack of lexically-nested Symbol tables, and a process-wide
// struct/class registry keyed by canonical name. The scope shape is
// adapted from esbuild's internal/js_ast Scope/Symbol/SymbolMap trio
// (parent-chained maps of name to symbol), trimmed to Zinc's simpler
// binding model — no hoisting, no module-level export tracking.
package zsymbols

import "github.com/redodson01/zinc/internal/ztype"

// Symbol is a single bound name: a variable, parameter, or function.
type Symbol struct {
	Name string
	Type *ztype.Type

	IsConst    bool
	IsFunction bool
	IsExtern   bool

	// ParamTypes is populated only when IsFunction is true, one entry
	// per declared parameter, used for arity/kind checking at call
	// sites (spec.md §4.3, "Calls").
	ParamTypes []*ztype.Type
}

// Clone returns a deep copy of sym, including its Type and
// ParamTypes, so narrowing a shadowed symbol (spec.md §4.3.1) never
// mutates the original binding's type.
func (sym *Symbol) Clone() *Symbol {
	if sym == nil {
		return nil
	}
	out := &Symbol{
		Name:       sym.Name,
		Type:       ztype.Clone(sym.Type),
		IsConst:    sym.IsConst,
		IsFunction: sym.IsFunction,
		IsExtern:   sym.IsExtern,
	}
	if sym.ParamTypes != nil {
		out.ParamTypes = make([]*ztype.Type, len(sym.ParamTypes))
		for i, p := range sym.ParamTypes {
			out.ParamTypes[i] = ztype.Clone(p)
		}
	}
	return out
}

// Scope is a single lexical scope: a flat name-to-symbol map plus a
// parent pointer. Pushed on function entry, block entry, for-init,
// and narrowed if-then entry (spec.md §4.2); popped on exit.
type Scope struct {
	Parent *Scope
	Kind   ScopeKind
	Names  map[string]*Symbol
}

type ScopeKind uint8

const (
	ScopeBlock ScopeKind = iota
	ScopeFunction
	ScopeForInit
	ScopeNarrowed
	ScopeLoop
)

// NewScope allocates a fresh, empty scope parented to parent (nil for
// the top-level program scope).
func NewScope(parent *Scope, kind ScopeKind) *Scope {
	return &Scope{Parent: parent, Kind: kind, Names: make(map[string]*Symbol)}
}

// Declare binds name to sym in s. It fails (returns false) if name
// already exists in s itself — shadowing across scopes is permitted,
// per spec.md §4.2, only re-declaration within the *same* scope is
// rejected.
func (s *Scope) Declare(name string, sym *Symbol) bool {
	if _, exists := s.Names[name]; exists {
		return false
	}
	s.Names[name] = sym
	return true
}

// Lookup walks s and its ancestors for name, returning the nearest
// binding.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.Names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// IsLoopBoundary reports whether this scope is the kind break/continue
// should stop releasing at during early-exit cleanup (spec.md §4.4.2
// rule 5 / §9 "scope cleanup on non-local exit").
func (s *Scope) IsLoopBoundary() bool {
	return s.Kind == ScopeLoop
}
