package zemit

import (
	"fmt"

	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

// emitExprInto lowers e into a C expression, possibly writing
// supporting statements into b first (for forms that need a statement
// expression: if/while/for, string concatenation, struct/tuple/object
// construction, assignment). It always returns the C text that stands
// in for e's value at the call site.
func (e *Emitter) emitExprInto(b *buffer, ex *zast.Expr) string {
	switch d := ex.Data.(type) {
	case *zast.EInt:
		return fmt.Sprintf("%d", d.Value)
	case *zast.EFloat:
		return fmt.Sprintf("%g", d.Value)
	case *zast.EBool:
		if d.Value {
			return "true"
		}
		return "false"
	case *zast.EChar:
		return fmt.Sprintf("'%c'", d.Value)
	case *zast.ENil:
		return "NULL"
	case *zast.EString:
		e.registerStringLit(d.StringID, d.Value)
		return fmt.Sprintf("(&%s)", stringLitCName(d.StringID))

	case *zast.EIdent:
		if e.narrowed[d.Name] && ex.ResolvedType != nil && !ex.ResolvedType.Kind.IsReferenceKind() {
			// "Inside a narrowed then-branch, identifier references for
			// narrowed value-kind optionals emit name._val" (spec.md
			// §4.4.4). Reference-kind narrowing needs no unwrap: the
			// narrowed type is the same pointer, just no longer tagged
			// with a possible-null contract the emitted C tracks anyway.
			return d.Name + "._val"
		}
		return d.Name

	case *zast.EBinary:
		return e.emitBinary(b, ex, d)
	case *zast.EUnary:
		return e.emitUnary(b, d)
	case *zast.EAssign:
		return e.emitAssign(b, d)
	case *zast.ECompoundAssign:
		return e.emitCompoundAssign(b, d)
	case *zast.EIncDec:
		return e.emitIncDec(b, d)
	case *zast.ECall:
		return e.emitCall(b, ex, d)
	case *zast.EFieldAccess:
		return e.emitFieldAccess(b, d)
	case *zast.EIndex:
		return e.emitIndex(b, ex, d)
	case *zast.EOptionalCheck:
		return e.emitOptionalCheck(b, d)
	case *zast.ETuple:
		return e.emitTuple(b, ex, d)
	case *zast.EObjectLiteral:
		return e.emitObjectLiteral(b, ex, d)
	case *zast.EArrayLiteral:
		return e.emitArrayLiteral(b, ex, d)
	case *zast.EHashLiteral:
		return e.emitHashLiteral(b, ex, d)
	case *zast.ETypedEmptyArray:
		return fmt.Sprintf("__zn_arr_alloc(0, %s, %s, %s, %s)", hashFn("elem"), equalsFn("elem"), retainFnOrNull(ex.ResolvedType.Elem), releaseFnOrNull(ex.ResolvedType.Elem))
	case *zast.ETypedEmptyHash:
		return "__zn_hash_alloc(0)"
	case *zast.EIf:
		return e.emitIf(b, ex, d)
	case *zast.EWhile:
		return e.emitWhile(b, ex, d)
	case *zast.EFor:
		return e.emitFor(b, ex, d)
	default:
		return "/* unresolved */ 0"
	}
}

func (e *Emitter) registerStringLit(id int, value string) {
	if e.seenStringID[id] {
		return
	}
	e.seenStringID[id] = true
	e.stringLits = append(e.stringLits, stringLit{id: id, value: value})
}

func retainFnOrNull(t *ztype.Type) string {
	if t == nil {
		return "NULL"
	}
	switch t.Kind {
	case ztype.String:
		return "__zn_str_retain"
	case ztype.Array:
		return "__zn_arr_retain"
	case ztype.Hash:
		return "__zn_hash_retain"
	case ztype.Class:
		return retainFn(t.Name)
	default:
		return "NULL"
	}
}

func releaseFnOrNull(t *ztype.Type) string {
	if t == nil {
		return "NULL"
	}
	switch t.Kind {
	case ztype.String:
		return "__zn_str_release"
	case ztype.Array:
		return "__zn_arr_release"
	case ztype.Hash:
		return "__zn_hash_release"
	case ztype.Class:
		return releaseFn(t.Name)
	default:
		return "NULL"
	}
}

var binOpText = map[zast.BinOp]string{
	zast.BinSub: "-", zast.BinMul: "*", zast.BinDiv: "/", zast.BinMod: "%",
	zast.BinEq: "==", zast.BinNe: "!=", zast.BinLt: "<", zast.BinGt: ">",
	zast.BinLe: "<=", zast.BinGe: ">=", zast.BinAnd: "&&", zast.BinOr: "||",
}

func (e *Emitter) emitBinary(b *buffer, ex *zast.Expr, d *zast.EBinary) string {
	if d.Op == zast.BinAdd && ex.ResolvedType.Kind == ztype.String {
		return e.emitStringConcat(b, ex)
	}
	if d.Op == zast.BinEq || d.Op == zast.BinNe {
		lt := d.Left.ResolvedType
		if lt != nil && lt.Kind == ztype.String {
			left := e.emitExprInto(b, &d.Left)
			right := e.emitExprInto(b, &d.Right)
			cmp := fmt.Sprintf("(strcmp((%s)->_data, (%s)->_data) == 0)", left, right)
			if d.Op == zast.BinNe {
				return "!" + cmp
			}
			return cmp
		}
	}
	if d.Op == zast.BinAdd {
		left := e.emitExprInto(b, &d.Left)
		right := e.emitExprInto(b, &d.Right)
		return fmt.Sprintf("(%s + %s)", left, right)
	}
	left := e.emitExprInto(b, &d.Left)
	right := e.emitExprInto(b, &d.Right)
	op, ok := binOpText[d.Op]
	if !ok {
		op = "?"
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right)
}

func (e *Emitter) emitUnary(b *buffer, d *zast.EUnary) string {
	operand := e.emitExprInto(b, &d.Operand)
	switch d.Op {
	case zast.UnaryNot:
		return fmt.Sprintf("(!%s)", operand)
	case zast.UnaryNeg:
		return fmt.Sprintf("(-%s)", operand)
	default:
		return fmt.Sprintf("(+%s)", operand)
	}
}

func (e *Emitter) emitOptionalCheck(b *buffer, d *zast.EOptionalCheck) string {
	t := d.Operand.ResolvedType
	operand := e.emitExprInto(b, &d.Operand)
	if t != nil && t.Kind.IsReferenceKind() {
		return fmt.Sprintf("(%s != NULL)", operand)
	}
	return fmt.Sprintf("(%s._has)", operand)
}
