package zsema

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

func (a *Analyzer) analyzeExpr(e *zast.Expr) {
	switch d := e.Data.(type) {
	case *zast.EInt:
		a.resolve(e, ztype.New(ztype.Int), false)
	case *zast.EFloat:
		a.resolve(e, ztype.New(ztype.Float), false)
	case *zast.EBool:
		a.resolve(e, ztype.New(ztype.Bool), false)
	case *zast.EChar:
		a.resolve(e, ztype.New(ztype.Char), false)
	case *zast.ENil:
		a.resolve(e, ztype.New(ztype.Unknown), false)
	case *zast.EString:
		d.StringID = a.nextStringID
		a.nextStringID++
		a.resolve(e, ztype.New(ztype.String), false)

	case *zast.EIdent:
		a.analyzeIdent(e, d)
	case *zast.EBinary:
		a.analyzeBinary(e, d)
	case *zast.EUnary:
		a.analyzeUnary(e, d)
	case *zast.EAssign:
		a.analyzeAssign(e, d)
	case *zast.ECompoundAssign:
		a.analyzeCompoundAssign(e, d)
	case *zast.EIncDec:
		a.analyzeIncDec(e, d)
	case *zast.ECall:
		a.analyzeCall(e, d)
	case *zast.EFieldAccess:
		a.analyzeFieldAccess(e, d)
	case *zast.EIndex:
		a.analyzeIndex(e, d)
	case *zast.EOptionalCheck:
		a.analyzeOptionalCheck(e, d)
	case *zast.ETuple:
		a.analyzeTuple(e, d)
	case *zast.EObjectLiteral:
		a.analyzeObjectLiteral(e, d)
	case *zast.EArrayLiteral:
		a.analyzeArrayLiteral(e, d)
	case *zast.EHashLiteral:
		a.analyzeHashLiteral(e, d)
	case *zast.ETypedEmptyArray:
		a.resolve(e, &ztype.Type{Kind: ztype.Array, Elem: a.resolveTypeInfo(d.ElemType, e.Loc.Line)}, true)
	case *zast.ETypedEmptyHash:
		key := a.resolveTypeInfo(d.KeyType, e.Loc.Line)
		val := a.resolveTypeInfo(d.ValType, e.Loc.Line)
		a.resolve(e, &ztype.Type{Kind: ztype.Hash, Key: key, Elem: val}, true)
	case *zast.EIf:
		a.analyzeIf(e, d)
	case *zast.EWhile:
		a.analyzeWhile(e, d)
	case *zast.EFor:
		a.analyzeFor(e, d)
	default:
		a.resolve(e, ztype.New(ztype.Unknown), false)
	}
}

func (a *Analyzer) resolve(e *zast.Expr, t *ztype.Type, fresh bool) {
	e.ResolvedType = t
	e.IsFreshAlloc = fresh
}

func (a *Analyzer) analyzeIdent(e *zast.Expr, d *zast.EIdent) {
	sym, ok := a.scope.Lookup(d.Name)
	if !ok {
		a.log.AddError(e.Loc.Line, "undefined variable '%s'", d.Name)
		a.resolve(e, ztype.New(ztype.Unknown), false)
		return
	}
	a.resolve(e, ztype.Clone(sym.Type), false)
}

func isVoid(t *ztype.Type) bool { return t != nil && t.Kind == ztype.Void }

func arithmeticResult(a, b *ztype.Type) *ztype.Type {
	if (a != nil && a.Kind == ztype.Float) || (b != nil && b.Kind == ztype.Float) {
		return ztype.New(ztype.Float)
	}
	return ztype.New(ztype.Int)
}

func (a *Analyzer) analyzeBinary(e *zast.Expr, d *zast.EBinary) {
	a.analyzeExpr(&d.Left)
	a.analyzeExpr(&d.Right)
	lt, rt := d.Left.ResolvedType, d.Right.ResolvedType

	if (isVoid(lt) || isVoid(rt)) {
		a.log.AddError(e.Loc.Line, "cannot use void expression as operand")
	}

	switch d.Op {
	case zast.BinAdd:
		if (lt != nil && lt.Kind == ztype.String) || (rt != nil && rt.Kind == ztype.String) {
			a.resolve(e, ztype.New(ztype.String), true)
			return
		}
		a.resolve(e, arithmeticResult(lt, rt), false)

	case zast.BinSub, zast.BinMul, zast.BinDiv, zast.BinMod:
		a.resolve(e, arithmeticResult(lt, rt), false)

	case zast.BinEq, zast.BinNe, zast.BinLt, zast.BinGt, zast.BinLe, zast.BinGe,
		zast.BinAnd, zast.BinOr:
		a.resolve(e, ztype.New(ztype.Bool), false)

	default:
		a.resolve(e, ztype.New(ztype.Unknown), false)
	}
}

func (a *Analyzer) analyzeUnary(e *zast.Expr, d *zast.EUnary) {
	a.analyzeExpr(&d.Operand)
	switch d.Op {
	case zast.UnaryNot:
		a.resolve(e, ztype.New(ztype.Bool), false)
	default: // UnaryNeg, UnaryPos preserve operand kind
		a.resolve(e, ztype.Clone(d.Operand.ResolvedType), false)
	}
}

// lvalueCheck validates e as an assignment/modify target per spec.md
// §4.3's lvalue rules table. verb is "assign to" or "modify", used in
// the error text.
func (a *Analyzer) lvalueCheck(e *zast.Expr, verb string) {
	line := e.Loc.Line
	switch d := e.Data.(type) {
	case *zast.EIdent:
		sym, ok := a.scope.Lookup(d.Name)
		if !ok {
			a.log.AddError(line, "undefined variable '%s'", d.Name)
			return
		}
		if sym.IsConst {
			a.log.AddError(line, "cannot %s constant '%s'", verb, d.Name)
		}
		if sym.IsExtern {
			a.log.AddError(line, "cannot %s extern binding '%s'", verb, d.Name)
		}

	case *zast.EFieldAccess:
		a.lvalueCheckFieldAccess(e, d, verb)

	case *zast.EIndex:
		if d.Base.ResolvedType != nil && d.Base.ResolvedType.Kind == ztype.String {
			a.log.AddError(line, "strings are immutable")
			return
		}
		a.log.AddError(line, "invalid assignment target")

	default:
		a.log.AddError(line, "invalid assignment target")
	}
}

func (a *Analyzer) lvalueCheckFieldAccess(e *zast.Expr, d *zast.EFieldAccess, verb string) {
	base := d.Base.ResolvedType
	if base == nil || (base.Kind != ztype.Struct && base.Kind != ztype.Class) {
		a.log.AddError(e.Loc.Line, "invalid assignment target")
		return
	}
	def, ok := a.registry.Lookup(base.Name)
	if !ok {
		a.log.AddError(e.Loc.Line, "invalid assignment target")
		return
	}
	fieldIdx := -1
	for i := range def.Fields {
		if def.Fields[i].Name == d.Field {
			fieldIdx = i
			break
		}
	}
	if fieldIdx == -1 {
		a.log.AddError(e.Loc.Line, "undefined field '%s' on type '%s'", d.Field, def.Name)
		return
	}
	if def.Fields[fieldIdx].IsConst {
		a.log.AddError(e.Loc.Line, "cannot %s field '%s'", verb, d.Field)
	}

	if base.Kind == ztype.Struct {
		// "for struct bases, walk the chain of .field.field... to the
		// root identifier and fail if it is let-bound" (value-type
		// binding immutability).
		root := rootIdentOf(d.Base)
		if root != nil {
			if sym, ok := a.scope.Lookup(root.Name); ok && sym.IsConst {
				a.log.AddError(e.Loc.Line, "cannot modify field of immutable variable '%s'", root.Name)
			}
		}
	}
}

func rootIdentOf(e zast.Expr) *zast.EIdent {
	switch d := e.Data.(type) {
	case *zast.EIdent:
		return d
	case *zast.EFieldAccess:
		return rootIdentOf(d.Base)
	default:
		return nil
	}
}

func (a *Analyzer) analyzeAssign(e *zast.Expr, d *zast.EAssign) {
	a.analyzeExpr(&d.Target)
	a.analyzeExpr(&d.Value)
	a.lvalueCheck(&d.Target, "assign to")
	a.resolve(e, ztype.Clone(d.Value.ResolvedType), false)
}

func (a *Analyzer) analyzeCompoundAssign(e *zast.Expr, d *zast.ECompoundAssign) {
	a.analyzeExpr(&d.Target)
	a.analyzeExpr(&d.Value)
	a.lvalueCheck(&d.Target, "modify")
	a.resolve(e, arithmeticResult(d.Target.ResolvedType, d.Value.ResolvedType), false)
}

func (a *Analyzer) analyzeIncDec(e *zast.Expr, d *zast.EIncDec) {
	a.analyzeExpr(&d.Target)
	a.lvalueCheck(&d.Target, "modify")
	a.resolve(e, ztype.Clone(d.Target.ResolvedType), false)
}

func (a *Analyzer) analyzeOptionalCheck(e *zast.Expr, d *zast.EOptionalCheck) {
	a.analyzeExpr(&d.Operand)
	t := d.Operand.ResolvedType
	ok := t != nil && (t.IsOptional || t.Kind == ztype.String || t.Kind == ztype.Class)
	if !ok {
		a.log.AddError(e.Loc.Line, "'?' requires an optional, string, or class operand")
	}
	a.resolve(e, ztype.New(ztype.Bool), false)
}
