package zemit

import (
	"fmt"

	"github.com/redodson01/zinc/internal/zsymbols"
	"github.com/redodson01/zinc/internal/ztype"
)

// hashFieldExpr returns the value a field contributes to its owning
// type's djb2 hash, per spec.md §4.5: primitives hash by native
// pattern, reference-class fields by pointer identity, value-struct
// fields by recursing into their own generated hashcode.
func hashFieldExpr(f zsymbols.StructFieldDef) string {
	access := "self->" + f.Name
	switch f.Type.Kind {
	case ztype.Int:
		return fmt.Sprintf("(uint32_t)(%s)", access)
	case ztype.Float:
		return fmt.Sprintf("(uint32_t)(*(uint64_t*)&(%s))", access)
	case ztype.Bool, ztype.Char:
		return fmt.Sprintf("(uint32_t)(%s)", access)
	case ztype.String:
		return fmt.Sprintf("__zn_str_hash(%s)", access)
	case ztype.Class:
		return fmt.Sprintf("(uint32_t)(uintptr_t)(%s)", access)
	case ztype.Struct:
		return fmt.Sprintf("%s(&(%s))", hashFn(f.Type.Name), access)
	case ztype.Array, ztype.Hash:
		return fmt.Sprintf("(uint32_t)(uintptr_t)(%s)", access)
	default:
		return "0"
	}
}

// equalsFieldExprNegated returns a C boolean expression that is true
// when the field DIFFERS between `a` and `b` — emitEquals uses it as
// an early-exit `if (differs) return false;` per field.
func equalsFieldExprNegated(f zsymbols.StructFieldDef) string {
	an := "a->" + f.Name
	bn := "b->" + f.Name
	switch f.Type.Kind {
	case ztype.Struct:
		return fmt.Sprintf("!%s(&(%s), &(%s))", equalsFn(f.Type.Name), an, bn)
	case ztype.String:
		return fmt.Sprintf("strcmp((%s)->_data, (%s)->_data) != 0", an, bn)
	default:
		return fmt.Sprintf("(%s) != (%s)", an, bn)
	}
}
