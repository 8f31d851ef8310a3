package zemit

import (
	"fmt"
	"strings"

	"github.com/redodson01/zinc/internal/ztype"
)

// cTypeName returns the C type spelling for t: a struct/class tag
// reference for Struct/Class kinds, ZnOpt_<kind> for optional value
// kinds (spec.md §4.5/§9's tagged-union representation), a plain
// pointer for optional reference kinds (null is "none"), and the
// obvious native spelling otherwise.
func cTypeName(t *ztype.Type) string {
	if t == nil {
		return "void"
	}
	if t.IsOptional && !t.Kind.IsReferenceKind() {
		switch t.Kind {
		case ztype.Int, ztype.Float, ztype.Bool, ztype.Char:
			return "ZnOpt_" + t.Kind.String()
		case ztype.Struct:
			// An optional value struct is spelled ZnOpt_<Name>, the same
			// naming as the four primitive kinds. Neither the runtime
			// header nor emitTypeLayout defines a ZnOpt_<Name> record.
			return "ZnOpt_" + t.Name
		}
	}
	switch t.Kind {
	case ztype.Int:
		return "int64_t"
	case ztype.Float:
		return "double"
	case ztype.Bool:
		return "bool"
	case ztype.Char:
		return "char"
	case ztype.Void:
		return "void"
	case ztype.String:
		return "ZnString*"
	case ztype.Array:
		return "ZnArray*"
	case ztype.Hash:
		return "ZnHash*"
	case ztype.Struct:
		return t.Name
	case ztype.Class:
		return t.Name + "*"
	default:
		return "void*"
	}
}

// cTag returns the struct tag used in a typedef's `struct <tag>`
// declaration, letting self-referential and forward-referenced class
// fields compile as `struct <tag> *` before the typedef itself is
// seen (spec.md §9, "Cyclic and self-referential class types").
func cTag(name string) string { return "__zn_tag_" + sanitize(name) }

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func allocFn(name string) string   { return "__zn_alloc_" + sanitize(name) }
func retainFn(name string) string  { return "__zn_retain_" + sanitize(name) }
func releaseFn(name string) string { return "__zn_release_" + sanitize(name) }
func hashFn(name string) string    { return "__zn_hash_" + sanitize(name) }
func equalsFn(name string) string  { return "__zn_eq_" + sanitize(name) }

// coerceToStringFn returns the runtime coercion helper spec.md §4.4.3
// names for lowering a non-string leaf of a `+` concatenation chain.
func coerceToStringFn(k ztype.Kind) string {
	switch k {
	case ztype.Int:
		return "__zn_str_from_int"
	case ztype.Float:
		return "__zn_str_from_float"
	case ztype.Bool:
		return "__zn_str_from_bool"
	case ztype.Char:
		return "__zn_str_from_char"
	default:
		return ""
	}
}

// retainCallFor and releaseCallFor return the C expression that
// retains/releases a value of type t stored in the C lvalue expr,
// per spec.md §4.5's per-type callback scheme: named classes and
// anonymous objects get generated alloc/retain/release functions;
// the three built-in reference kinds go through the runtime's
// generic per-container helpers; value structs with RC fields get a
// generated field-walking release (no retain — they are never
// independently refcounted, only their RC-bearing fields are).
func retainCallFor(t *ztype.Type, expr string) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case ztype.String:
		return fmt.Sprintf("__zn_str_retain(%s)", expr)
	case ztype.Array:
		return fmt.Sprintf("__zn_arr_retain(%s)", expr)
	case ztype.Hash:
		return fmt.Sprintf("__zn_hash_retain(%s)", expr)
	case ztype.Class:
		return fmt.Sprintf("%s(%s)", retainFn(t.Name), expr)
	default:
		return ""
	}
}

func releaseCallFor(t *ztype.Type, expr string, hasRCFields bool) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case ztype.String:
		return fmt.Sprintf("__zn_str_release(%s)", expr)
	case ztype.Array:
		return fmt.Sprintf("__zn_arr_release(%s)", expr)
	case ztype.Hash:
		return fmt.Sprintf("__zn_hash_release(%s)", expr)
	case ztype.Class:
		return fmt.Sprintf("%s(%s)", releaseFn(t.Name), expr)
	case ztype.Struct:
		if hasRCFields {
			return fmt.Sprintf("%s(&(%s))", releaseFn(t.Name), expr)
		}
	}
	return ""
}

// isTrackedBinding reports whether a binding of type t needs ARC
// scope cleanup at all: reference kinds always do, value structs only
// when hasRCFields (resolved by the caller from the registry).
func isTrackedBinding(t *ztype.Type, hasRCFields bool) bool {
	if t == nil {
		return false
	}
	if t.Kind.IsReferenceKind() {
		return true
	}
	return t.Kind == ztype.Struct && hasRCFields
}
