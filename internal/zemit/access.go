package zemit

import (
	"fmt"

	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

func (e *Emitter) emitFieldAccess(b *buffer, d *zast.EFieldAccess) string {
	base := e.emitExprInto(b, &d.Base)
	baseT := d.Base.ResolvedType

	if d.Field == "length" {
		switch {
		case baseT.Kind == ztype.String:
			return fmt.Sprintf("((%s)->_len)", base)
		case baseT.Kind == ztype.Array:
			return fmt.Sprintf("__zn_arr_len(%s)", base)
		case baseT.Kind == ztype.Hash:
			return fmt.Sprintf("__zn_hash_len(%s)", base)
		}
	}

	if baseT.Kind == ztype.Class {
		return fmt.Sprintf("(%s)->%s", base, d.Field)
	}
	// Struct (value) base: plain member access, no pointer indirection.
	return fmt.Sprintf("(%s).%s", base, d.Field)
}

// emitIndex implements spec.md §4.4.5: primitive elements come back
// through an unbox call, reference/struct-or-class elements through a
// cast (struct elements are additionally dereferenced to yield a
// value copy, since a struct stored in a boxed ZnValue slot is always
// heap-backed by the array/hash implementation internally).
func (e *Emitter) emitIndex(b *buffer, ex *zast.Expr, d *zast.EIndex) string {
	base := e.emitExprInto(b, &d.Base)
	idx := e.emitExprInto(b, &d.Index)
	baseT := d.Base.ResolvedType

	switch baseT.Kind {
	case ztype.String:
		return fmt.Sprintf("((%s)->_data[%s])", base, idx)
	case ztype.Array:
		boxed := fmt.Sprintf("__zn_arr_get(%s, %s)", base, idx)
		return unboxElem(boxed, ex.ResolvedType)
	case ztype.Hash:
		boxed := fmt.Sprintf("__zn_hash_get(%s, %s)", base, idx)
		return unboxElem(boxed, ex.ResolvedType)
	default:
		return "/* invalid index */ 0"
	}
}

func unboxElem(boxed string, t *ztype.Type) string {
	if t == nil {
		return boxed
	}
	switch t.Kind {
	case ztype.Int:
		return fmt.Sprintf("__zn_val_as_int(%s)", boxed)
	case ztype.Float:
		return fmt.Sprintf("__zn_val_as_float(%s)", boxed)
	case ztype.Bool:
		return fmt.Sprintf("__zn_val_as_bool(%s)", boxed)
	case ztype.Char:
		return fmt.Sprintf("__zn_val_as_char(%s)", boxed)
	case ztype.Struct:
		return fmt.Sprintf("(*(%s*)__zn_val_as_val(%s))", t.Name, boxed)
	case ztype.Class, ztype.String, ztype.Array, ztype.Hash:
		return fmt.Sprintf("((void*)__zn_val_as_val(%s))", boxed)
	default:
		return boxed
	}
}
