package zemit

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

// inferReturnType recomputes spec.md §4.3's return-type inference rule
// directly from the already-analyzed body, since the resolved type an
// implicit return type settles on lives only on the analyzer's
// transient Symbol, not on the SFuncDef node itself. Re-deriving it
// here from nodes the analyzer already stamped with ResolvedType keeps
// the emitter from needing any side channel back into zsema's state.
func inferReturnType(d *zast.SFuncDef) *ztype.Type {
	if t := firstReturnType(d.Body.Stmts); t != nil {
		return t
	}
	if n := len(d.Body.Stmts); n > 0 {
		if es, ok := d.Body.Stmts[n-1].Data.(*zast.SExprStmt); ok && es.Value.ResolvedType != nil && es.Value.ResolvedType.Kind != ztype.Void {
			return es.Value.ResolvedType
		}
	}
	return ztype.New(ztype.Void)
}

func firstReturnType(stmts []zast.Stmt) *ztype.Type {
	for i := range stmts {
		switch d := stmts[i].Data.(type) {
		case *zast.SReturn:
			if d.HasValue && d.Value.ResolvedType != nil && d.Value.ResolvedType.Kind != ztype.Void {
				return d.Value.ResolvedType
			}
		case *zast.SExprStmt:
			if t := firstReturnTypeInExpr(&d.Value); t != nil {
				return t
			}
		}
	}
	return nil
}

// firstReturnTypeInExpr descends into the block-valued expression
// forms (if/while/for) a return statement can be nested inside.
func firstReturnTypeInExpr(e *zast.Expr) *ztype.Type {
	switch d := e.Data.(type) {
	case *zast.EIf:
		if t := firstReturnType(d.Then.Stmts); t != nil {
			return t
		}
		return firstReturnType(d.Else.Stmts)
	case *zast.EWhile:
		return firstReturnType(d.Body.Stmts)
	case *zast.EFor:
		return firstReturnType(d.Body.Stmts)
	default:
		return nil
	}
}

func (e *Emitter) emitFuncDef(line int, d *zast.SFuncDef, sourcePath string) {
	paramTypes := make([]*ztype.Type, len(d.Params))
	for i, p := range d.Params {
		paramTypes[i] = e.resolveType(p.TypeAnnotation)
	}
	retType := e.resolveType(d.ReturnType)
	if d.ReturnType == nil {
		retType = inferReturnType(d)
	}

	sig := e.formatParams(d.Params)
	e.header.line("%s %s(%s);", cTypeName(retType), d.Name, sig)

	e.body.line("%s %s(%s) {", cTypeName(retType), d.Name, sig)
	e.body.indent++
	e.body.line("#line %d \"%s\"", line, sourcePath)

	e.pushARCScope(false)
	for i, p := range d.Params {
		// Parameters are immutable bindings the analyzer never permits
		// reassigning; the emitter still tracks them for release since
		// an RC-bearing parameter is released at function exit like any
		// other binding in scope.
		e.track(p.Name, paramTypes[i], e.hasRCFields(paramTypes[i]))
	}

	e.emitFuncBody(d, retType)
	e.popARCScope(e.body)

	e.body.indent--
	e.body.line("}")
	e.body.blank()
}

// emitFuncBody emits every statement of the function's top-level
// block, then, per spec.md §4.4.2 rule 6, an implicit return of the
// last expression if the function didn't already end in an explicit
// `return`.
func (e *Emitter) emitFuncBody(d *zast.SFuncDef, retType *ztype.Type) {
	n := len(d.Body.Stmts)
	for i := 0; i < n; i++ {
		last := i == n-1
		if last {
			if es, ok := d.Body.Stmts[i].Data.(*zast.SExprStmt); ok && retType.Kind != ztype.Void {
				e.emitImplicitReturn(&es.Value, retType)
				continue
			}
		}
		e.emitStmt(&d.Body.Stmts[i])
	}
	if n == 0 && retType.Kind == ztype.Void {
		return
	}
}

func (e *Emitter) emitImplicitReturn(val *zast.Expr, retType *ztype.Type) {
	resultC := e.emitExprInto(e.body, val)
	tmp := e.nextTemp("ret")
	e.body.line("%s %s = %s;", cTypeName(retType), tmp, resultC)
	if retType.Kind.IsReferenceKind() && !val.IsFreshAlloc {
		if call := retainCallFor(retType, tmp); call != "" {
			e.body.line("%s;", call)
		}
	}
	e.releaseAllScopesExceptSelf(e.body, tmp, retType)
	e.body.line("return %s;", tmp)
}

// releaseAllScopesExceptSelf releases every tracked binding in every
// open scope, skipping the one C lvalue equal to the value being
// returned (so `return x` on the last binding in scope doesn't free
// the value it is about to hand back) — spec.md §4.4.2 rule 5's
// "retains the returned value into a temporary before releasing
// scopes".
func (e *Emitter) releaseAllScopesExceptSelf(b *buffer, skip string, t *ztype.Type) {
	for i := len(e.arc) - 1; i >= 0; i-- {
		s := e.arc[i]
		for j := len(s.bindings) - 1; j >= 0; j-- {
			bind := s.bindings[j]
			if bind.cName == skip {
				continue
			}
			if call := releaseCallFor(bind.t, bind.cName, bind.hasRCFields); call != "" {
				b.line("%s;", call)
			}
		}
	}
}

func (e *Emitter) hasRCFields(t *ztype.Type) bool {
	if t == nil || t.Kind != ztype.Struct {
		return false
	}
	if def, ok := e.reg.Lookup(t.Name); ok {
		return def.HasRCFields
	}
	return false
}
