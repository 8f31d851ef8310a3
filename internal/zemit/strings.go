package zemit

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

// flattenConcat implements spec.md §4.4.3: a `+` tree whose resolved
// type is string flattens into its left-to-right leaf sequence. Only
// nodes that are themselves string-typed `+` binaries get expanded;
// everything else (including a non-string sub-expression that simply
// participates in one `+`) is a leaf.
func flattenConcat(ex *zast.Expr) []*zast.Expr {
	bin, ok := ex.Data.(*zast.EBinary)
	if !ok || bin.Op != zast.BinAdd || ex.ResolvedType == nil || ex.ResolvedType.Kind != ztype.String {
		return []*zast.Expr{ex}
	}
	return append(flattenConcat(&bin.Left), flattenConcat(&bin.Right)...)
}

// emitStringConcat lowers a flattened `+` chain into a sequence of
// runtime concat calls, coercing non-string leaves through the
// `__zn_str_from_*` helpers and releasing every coercion temporary and
// non-final intermediate before yielding the final result.
func (e *Emitter) emitStringConcat(b *buffer, ex *zast.Expr) string {
	leaves := flattenConcat(ex)

	var acc string
	accIsTemp := false

	for i, leaf := range leaves {
		leafC := e.emitExprInto(b, leaf)
		leafStr := leafC
		leafIsTemp := false
		if leaf.ResolvedType == nil || leaf.ResolvedType.Kind != ztype.String {
			fn := coerceToStringFn(leaf.ResolvedType.Kind)
			tmp := e.nextTemp("coerce")
			b.line("ZnString* %s = %s(%s);", tmp, fn, leafC)
			leafStr = tmp
			leafIsTemp = true
		}

		if i == 0 {
			acc, accIsTemp = leafStr, leafIsTemp
			continue
		}

		next := e.nextTemp("concat")
		b.line("ZnString* %s = __zn_str_concat(%s, %s);", next, acc, leafStr)
		if accIsTemp {
			b.line("__zn_str_release(%s);", acc)
		}
		if leafIsTemp {
			b.line("__zn_str_release(%s);", leafStr)
		}
		acc, accIsTemp = next, true
	}

	return acc
}
