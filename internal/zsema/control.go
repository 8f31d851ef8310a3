package zsema

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zsymbols"
	"github.com/redodson01/zinc/internal/ztype"
)

// narrowingTarget implements spec.md §4.3.1 / §9's narrowing
// predicate: the condition must be exactly `identifier?`, and the
// identifier's *currently resolved* type (which, for a plain lookup,
// is its declared type) must be optional. Compound conditions never
// match — "x? && y?", "!x?" and anything else narrow nothing, a
// deliberate restriction the spec leaves as-is (see DESIGN.md's open
// question resolution).
func narrowingTarget(cond *zast.Expr) (string, *ztype.Type, bool) {
	check, ok := cond.Data.(*zast.EOptionalCheck)
	if !ok {
		return "", nil, false
	}
	ident, ok := check.Operand.Data.(*zast.EIdent)
	if !ok {
		return "", nil, false
	}
	t := check.Operand.ResolvedType
	if t == nil || !t.IsOptional {
		return "", nil, false
	}
	return ident.Name, t, true
}

func (a *Analyzer) analyzeIf(e *zast.Expr, d *zast.EIf) {
	a.analyzeExpr(&d.Cond)

	a.pushScope(zsymbols.ScopeBlock)
	if name, t, ok := narrowingTarget(&d.Cond); ok {
		a.scope.Kind = zsymbols.ScopeNarrowed
		narrowed := ztype.Clone(t)
		narrowed.IsOptional = false
		if sym, found := a.scope.Parent.Lookup(name); found {
			a.scope.Declare(name, &zsymbols.Symbol{Name: name, Type: narrowed, IsConst: sym.IsConst})
		}
	}
	thenType := a.analyzeBlockStmtsInCurrentScope(&d.Then)
	a.popScope()

	var elseType *ztype.Type
	if d.HasElse {
		elseType = a.analyzeBlock(&d.Else)
	}

	if !d.HasElse {
		// "if without else: wraps the then-branch's type in optional."
		result := ztype.Optional(thenType)
		a.resolve(e, result, result.Kind.IsReferenceKind())
		return
	}

	if thenType.Kind != ztype.Void && ztype.Equals(thenType, elseType) {
		result := ztype.Clone(thenType)
		a.resolve(e, result, result.Kind.IsReferenceKind())
		return
	}
	a.resolve(e, ztype.New(ztype.Void), false)
}

// isAlwaysTrueCond recognizes the two syntactic always-true
// conditions spec.md §4.3.2 names: a literal `true`, and `!false`
// (the desugared form of `until false`).
func isAlwaysTrueCond(cond *zast.Expr) bool {
	if b, ok := cond.Data.(*zast.EBool); ok {
		return b.Value
	}
	if u, ok := cond.Data.(*zast.EUnary); ok && u.Op == zast.UnaryNot {
		if b, ok := u.Operand.Data.(*zast.EBool); ok {
			return !b.Value
		}
	}
	return false
}

func (a *Analyzer) analyzeWhile(e *zast.Expr, d *zast.EWhile) {
	a.pushScope(zsymbols.ScopeLoop)
	a.analyzeExpr(&d.Cond)

	savedLoopResult := a.loopResultType
	a.loopResultType = nil
	a.inLoop++
	a.analyzeBlockStmtsInCurrentScope(&d.Body)
	a.inLoop--
	loopType := a.loopResultType
	a.loopResultType = savedLoopResult
	a.popScope()

	if loopType == nil {
		a.resolve(e, ztype.New(ztype.Void), false)
		return
	}
	result := loopType
	if !isAlwaysTrueCond(&d.Cond) {
		result = ztype.Optional(loopType)
	}
	a.resolve(e, result, result.Kind.IsReferenceKind())
}

func (a *Analyzer) analyzeFor(e *zast.Expr, d *zast.EFor) {
	a.pushScope(zsymbols.ScopeForInit)
	if d.Init != nil {
		a.analyzeStmt(d.Init)
	}

	a.pushScope(zsymbols.ScopeLoop)
	if d.Cond.Data != nil {
		a.analyzeExpr(&d.Cond)
	}
	if d.Post != nil {
		// Post is analyzed in the loop scope too, since it can see the
		// loop variable, but it runs logically after the body; order
		// here only affects error-message ordering, not semantics.
		a.analyzeStmt(d.Post)
	}

	savedLoopResult := a.loopResultType
	a.loopResultType = nil
	a.inLoop++
	a.pushScope(zsymbols.ScopeBlock)
	a.analyzeBlockStmtsInCurrentScope(&d.Body)
	a.popScope()
	a.inLoop--
	loopType := a.loopResultType
	a.loopResultType = savedLoopResult

	a.popScope() // loop scope
	a.popScope() // for-init scope

	if loopType == nil {
		a.resolve(e, ztype.New(ztype.Void), false)
		return
	}
	// "for: always optional-wrapping, because the body may never
	// execute" — unconditional, unlike while.
	result := ztype.Optional(loopType)
	a.resolve(e, result, result.Kind.IsReferenceKind())
}
