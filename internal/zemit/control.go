package zemit

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

// narrowingIdent mirrors zsema's narrowing predicate on the emitter
// side (spec.md §9: "implemented both in the analyzer ... and in the
// emitter ... Both sides must agree on the narrowing predicate").
func narrowingIdent(cond *zast.Expr) (string, bool) {
	check, ok := cond.Data.(*zast.EOptionalCheck)
	if !ok {
		return "", false
	}
	ident, ok := check.Operand.Data.(*zast.EIdent)
	if !ok {
		return "", false
	}
	t := check.Operand.ResolvedType
	if t == nil || !t.IsOptional {
		return "", false
	}
	return ident.Name, true
}

// emitIf lowers an EIf into the statement-expression form spec.md
// §4.4.1/§8 scenario 2 shows literally: a declared result temporary,
// the if/else executed as ordinary C control flow assigning into it,
// and the temporary yielded as the block's trailing expression.
func (e *Emitter) emitIf(outer *buffer, ex *zast.Expr, d *zast.EIf) string {
	rt := ex.ResolvedType
	sub := &buffer{}
	tmp := e.nextTemp("if")

	if rt.Kind != ztype.Void {
		sub.line("%s %s;", cTypeName(rt), tmp)
		if rt.IsOptional && !rt.Kind.IsReferenceKind() {
			sub.line("%s._has = false;", tmp)
		} else if rt.IsOptional {
			sub.line("%s = NULL;", tmp)
		}
	}

	condC := e.emitExprInto(sub, &d.Cond)
	sub.line("if (%s) {", condC)
	sub.indent++
	name, doNarrow := narrowingIdent(&d.Cond)
	if doNarrow {
		e.narrowed[name] = true
	}
	e.emitBranchInto(sub, &d.Then, tmp, rt, !d.HasElse)
	if doNarrow {
		delete(e.narrowed, name)
	}
	sub.indent--
	if d.HasElse {
		sub.line("} else {")
		sub.indent++
		e.emitBranchInto(sub, &d.Else, tmp, rt, false)
		sub.indent--
		sub.line("}")
	} else {
		sub.line("}")
	}
	if rt.Kind != ztype.Void {
		sub.line("%s;", tmp)
	}
	return "(" + "{\n" + sub.String() + "}" + ")"
}

// emitBranchInto emits one if/else (or loop) branch's statements in a
// fresh ARC scope, assigning the branch's trailing expression value
// (if any) into tmp. wrapOptional marks the no-else then-branch case,
// where a value-kind result must also flip `_has` true (spec.md
// §4.4.7).
func (e *Emitter) emitBranchInto(sub *buffer, blk *zast.Block, tmp string, rt *ztype.Type, wrapOptional bool) {
	e.pushARCScope(false)
	n := len(blk.Stmts)
	for i := 0; i < n; i++ {
		if i == n-1 {
			if es, ok := blk.Stmts[i].Data.(*zast.SExprStmt); ok && rt.Kind != ztype.Void {
				valC := e.emitExprInto(sub, &es.Value)
				if es.Value.ResolvedType.Kind.IsReferenceKind() && !es.Value.IsFreshAlloc {
					if call := retainCallFor(es.Value.ResolvedType, valC); call != "" {
						sub.line("%s;", call)
					}
				}
				if wrapOptional && rt.IsOptional && !rt.Kind.IsReferenceKind() {
					sub.line("%s._val = %s;", tmp, valC)
					sub.line("%s._has = true;", tmp)
				} else {
					sub.line("%s = %s;", tmp, valC)
				}
				continue
			}
		}
		e.emitStmt(&blk.Stmts[i])
	}
	e.popARCScope(sub)
}

// emitWhile and emitFor both lower to a labeled C `while`/`for` loop
// wrapped in a statement expression, with `break`/`continue` lowered
// to `goto` against per-loop labels (spec.md §9's unique-integer-ID
// scheme for avoiding collisions with the surrounding function's
// other statement-expression temporaries).
func (e *Emitter) emitWhile(outer *buffer, ex *zast.Expr, d *zast.EWhile) string {
	rt := ex.ResolvedType
	sub := &buffer{}
	resultVar := e.nextTemp("loop")
	breakLabel := e.nextTemp("loop_break")
	continueLabel := e.nextTemp("loop_continue")

	if rt.Kind != ztype.Void {
		sub.line("%s %s;", cTypeName(rt), resultVar)
		if rt.IsOptional && !rt.Kind.IsReferenceKind() {
			sub.line("%s._has = false;", resultVar)
		} else if rt.IsOptional {
			sub.line("%s = NULL;", resultVar)
		}
	}

	savedVar, savedType, savedBreak, savedCont := e.currentLoopResultVar, e.currentLoopResultType, e.currentLoopBreakLabel, e.currentLoopContinueLabel
	e.currentLoopResultVar, e.currentLoopResultType = resultVar, rt
	e.currentLoopBreakLabel, e.currentLoopContinueLabel = breakLabel, continueLabel

	condC := e.emitExprInto(sub, &d.Cond)
	sub.line("while (%s) {", condC)
	sub.indent++
	sub.line("%s:;", continueLabel)
	e.pushARCScope(true)
	for i := range d.Body.Stmts {
		e.emitStmt(&d.Body.Stmts[i])
	}
	e.popARCScope(sub)
	sub.indent--
	sub.line("}")
	sub.line("%s:;", breakLabel)
	if rt.Kind != ztype.Void {
		sub.line("%s;", resultVar)
	}

	e.currentLoopResultVar, e.currentLoopResultType = savedVar, savedType
	e.currentLoopBreakLabel, e.currentLoopContinueLabel = savedBreak, savedCont

	return "(" + "{\n" + sub.String() + "}" + ")"
}

func (e *Emitter) emitFor(outer *buffer, ex *zast.Expr, d *zast.EFor) string {
	rt := ex.ResolvedType
	sub := &buffer{}
	resultVar := e.nextTemp("loop")
	breakLabel := e.nextTemp("loop_break")
	continueLabel := e.nextTemp("loop_continue")

	if rt.Kind != ztype.Void {
		sub.line("%s %s;", cTypeName(rt), resultVar)
		if rt.IsOptional && !rt.Kind.IsReferenceKind() {
			sub.line("%s._has = false;", resultVar)
		} else if rt.IsOptional {
			sub.line("%s = NULL;", resultVar)
		}
	}

	savedVar, savedType, savedBreak, savedCont := e.currentLoopResultVar, e.currentLoopResultType, e.currentLoopBreakLabel, e.currentLoopContinueLabel
	e.currentLoopResultVar, e.currentLoopResultType = resultVar, rt
	e.currentLoopBreakLabel, e.currentLoopContinueLabel = breakLabel, continueLabel

	sub.line("{")
	sub.indent++
	if d.Init != nil {
		e.emitStmt(d.Init)
	}
	cond := "true"
	if d.Cond.Data != nil {
		cond = e.emitExprInto(sub, &d.Cond)
	}
	sub.line("while (%s) {", cond)
	sub.indent++
	e.pushARCScope(true)
	for i := range d.Body.Stmts {
		e.emitStmt(&d.Body.Stmts[i])
	}
	e.popARCScope(sub)
	sub.line("%s:;", continueLabel)
	if d.Post != nil {
		e.emitStmt(d.Post)
	}
	sub.indent--
	sub.line("}")
	sub.indent--
	sub.line("}")
	sub.line("%s:;", breakLabel)
	if rt.Kind != ztype.Void {
		sub.line("%s;", resultVar)
	}

	e.currentLoopResultVar, e.currentLoopResultType = savedVar, savedType
	e.currentLoopBreakLabel, e.currentLoopContinueLabel = savedBreak, savedCont

	return "(" + "{\n" + sub.String() + "}" + ")"
}
