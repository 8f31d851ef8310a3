// Package ztype implements spec.md §3/§4.1's Type model: the resolved
// representation the semantic analyzer attaches to every AST node and
// the emitter reads back out. Kind is a closed enum; Type layers an
// optional flag, a canonical name (struct/class only), and nested
// element/key types (array/hash only) on top of it.
package ztype

import "github.com/huandu/go-clone"

// Kind enumerates every resolved type kind spec.md §3 names.
type Kind uint8

const (
	Unknown Kind = iota
	Int
	Float
	Bool
	Char
	Void
	String
	Struct
	Class
	Array
	Hash
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case Void:
		return "void"
	case String:
		return "string"
	case Struct:
		return "struct"
	case Class:
		return "class"
	case Array:
		return "array"
	case Hash:
		return "hash"
	default:
		return "?"
	}
}

// IsReferenceKind reports whether values of this kind participate in
// ARC (spec.md §3: "string, class, array, hash are the reference
// kinds").
func (k Kind) IsReferenceKind() bool {
	switch k {
	case String, Class, Array, Hash:
		return true
	default:
		return false
	}
}

// Type is the resolved type the analyzer attaches to every AST node.
type Type struct {
	Kind Kind

	IsOptional bool

	// Name is the canonical struct/class name. Only meaningful when
	// Kind is Struct or Class.
	Name string

	// Elem is the array element type, or the hash value type. Only
	// meaningful when Kind is Array or Hash.
	Elem *Type

	// Key is the hash key type. Only meaningful when Kind is Hash.
	Key *Type
}

// New returns a bare, non-optional Type of the given kind.
func New(kind Kind) *Type {
	return &Type{Kind: kind}
}

// Optional returns a copy of t wrapped in IsOptional = true.
func Optional(t *Type) *Type {
	c := Clone(t)
	c.IsOptional = true
	return c
}

// Clone deep-copies t, including its Elem/Key chain, so that mutating
// one Type (for example narrowing its IsOptional flag in a shadow
// scope, per spec.md §4.3.1) never affects another binding that
// shares the same declared type. go-clone's generic Clone walks
// struct pointer fields recursively, which is exactly the deep-copy
// semantics spec.md §4.1 asks for ("clone (deep) ... must deep-copy
// element/key types").
func Clone(t *Type) *Type {
	if t == nil {
		return nil
	}
	return clone.Clone(t).(*Type)
}

// Equals implements spec.md §4.1's structural equality: same kind,
// same optionality, same canonical name for struct/class, structural
// recursion on element/key for array/hash. It ignores any transient
// marker the analyzer or emitter may stash elsewhere (those never
// live on Type itself).
func Equals(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.IsOptional != b.IsOptional {
		return false
	}
	switch a.Kind {
	case Struct, Class:
		return a.Name == b.Name
	case Array:
		return Equals(a.Elem, b.Elem)
	case Hash:
		return Equals(a.Elem, b.Elem) && Equals(a.Key, b.Key)
	default:
		return true
	}
}

// SuffixOf returns the canonical-name component suffix for a field of
// this kind, per spec.md §3's tuple/object naming schemes: primitives
// and collections map to a fixed short code, struct/class kinds use
// their own name verbatim.
func SuffixOf(kind Kind, name string) string {
	switch kind {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "str"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case Array:
		return "arr"
	case Hash:
		return "hash"
	case Struct, Class:
		return name
	default:
		return "unk"
	}
}
