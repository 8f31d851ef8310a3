package zemit

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

func (e *Emitter) emitStmt(s *zast.Stmt) {
	switch d := s.Data.(type) {
	case *zast.SExprStmt:
		expr := e.emitExprInto(e.body, &d.Value)
		if d.Value.ResolvedType != nil && d.Value.ResolvedType.Kind != ztype.Void {
			e.body.line("(void)(%s);", expr)
		} else if expr != "" {
			e.body.line("%s;", expr)
		}

	case *zast.SDecl:
		e.emitDecl(d)

	case *zast.SBreak:
		e.emitLoopExit(d.HasValue, &d.Value, true)

	case *zast.SContinue:
		e.emitLoopExit(d.HasValue, &d.Value, false)

	case *zast.SReturn:
		e.emitReturn(d)

	case *zast.STypeDef, *zast.SFuncDef, *zast.SExternBlock,
		*zast.SExternFunc, *zast.SExternVar, *zast.SExternLet:
		// Not valid inside a function body; spec.md scopes declarations
		// of these kinds to the top level only.
	}
}

func (e *Emitter) emitDecl(d *zast.SDecl) {
	cName := d.Name
	valExpr := e.emitExprInto(e.body, &d.Init)
	t := d.Init.ResolvedType

	if t.Kind.IsReferenceKind() && !d.Init.IsFreshAlloc {
		if call := retainCallFor(t, valExpr); call != "" {
			e.body.line("%s %s = %s;", cTypeName(t), cName, valExpr)
			e.body.line("%s;", call)
		} else {
			e.body.line("%s %s = %s;", cTypeName(t), cName, valExpr)
		}
	} else {
		e.body.line("%s %s = %s;", cTypeName(t), cName, valExpr)
	}

	e.track(cName, t, e.hasRCFields(t))
}

func (e *Emitter) emitLoopExit(hasValue bool, val *zast.Expr, isBreak bool) {
	if hasValue {
		valExpr := e.emitExprInto(e.body, val)
		t := val.ResolvedType
		if t.Kind.IsReferenceKind() && !val.IsFreshAlloc {
			if call := retainCallFor(t, valExpr); call != "" {
				e.body.line("%s;", call)
			}
		}
		// The loop-result slot's shape is the *loop's* resolved type
		// (every for/non-"while true" while loop is optional-wrapped per
		// spec.md §4.3.2), not this break/continue value's own type.
		rt := e.currentLoopResultType
		if rt != nil && rt.IsOptional && !rt.Kind.IsReferenceKind() {
			e.body.line("%s._val = %s;", e.currentLoopResultVar, valExpr)
			e.body.line("%s._has = true;", e.currentLoopResultVar)
		} else {
			e.body.line("%s = %s;", e.currentLoopResultVar, valExpr)
		}
	}
	e.releaseThroughLoopBoundary(e.body)
	if isBreak {
		e.body.line("goto %s;", e.currentLoopBreakLabel)
	} else {
		e.body.line("goto %s;", e.currentLoopContinueLabel)
	}
}

func (e *Emitter) emitReturn(d *zast.SReturn) {
	if !d.HasValue {
		e.releaseAllScopes(e.body)
		e.body.line("return;")
		return
	}
	valExpr := e.emitExprInto(e.body, &d.Value)
	t := d.Value.ResolvedType
	if t.Kind.IsReferenceKind() && !d.Value.IsFreshAlloc {
		if call := retainCallFor(t, valExpr); call != "" {
			tmp := e.nextTemp("ret")
			e.body.line("%s %s = %s;", cTypeName(t), tmp, valExpr)
			e.body.line("%s;", call)
			e.releaseAllScopesExceptSelf(e.body, tmp, t)
			e.body.line("return %s;", tmp)
			return
		}
	}
	tmp := e.nextTemp("ret")
	e.body.line("%s %s = %s;", cTypeName(t), tmp, valExpr)
	e.releaseAllScopesExceptSelf(e.body, tmp, t)
	e.body.line("return %s;", tmp)
}
