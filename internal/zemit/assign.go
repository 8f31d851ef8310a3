package zemit

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

// emitAssign implements spec.md §4.4.2 rule 3's retain-before-release
// contract for `target = value`. Non-reference targets lower to a
// plain C assignment; reference-kind targets go through a temporary so
// the retain of the new value always happens before the release of
// whatever the target held, which keeps self-assignment (`x = x`)
// safe. Rule 3's release-then-assign-then-retain shortcut is scoped to
// String/array/hash only — class assignment always takes the temp path
// below, since a class instance's release can run arbitrary
// finalization (field releases) before the retain would run, which is
// unsafe to reorder ahead of the retain on self-assignment.
func (e *Emitter) emitAssign(b *buffer, d *zast.EAssign) string {
	targetC := e.emitExprInto(b, &d.Target)
	t := d.Target.ResolvedType

	if t == nil || !t.Kind.IsReferenceKind() {
		valC := e.emitExprInto(b, &d.Value)
		b.line("%s = %s;", targetC, valC)
		return targetC
	}

	_, isIdent := d.Value.Data.(*zast.EIdent)
	isShortcutKind := t.Kind == ztype.String || t.Kind == ztype.Array || t.Kind == ztype.Hash
	if isIdent && isShortcutKind {
		// "release-then-assign-then-retain as an equivalent form when
		// RHS is a bare identifier."
		valC := e.emitExprInto(b, &d.Value)
		if call := releaseCallFor(t, targetC, false); call != "" {
			b.line("%s;", call)
		}
		b.line("%s = %s;", targetC, valC)
		if call := retainCallFor(t, targetC); call != "" {
			b.line("%s;", call)
		}
		return targetC
	}

	tmp := e.nextTemp("asg")
	valC := e.emitExprInto(b, &d.Value)
	b.line("%s %s = %s;", cTypeName(t), tmp, valC)
	if !d.Value.IsFreshAlloc {
		if call := retainCallFor(t, tmp); call != "" {
			b.line("%s;", call)
		}
	}
	if call := releaseCallFor(t, targetC, false); call != "" {
		b.line("%s;", call)
	}
	b.line("%s = %s;", targetC, tmp)
	return targetC
}

func (e *Emitter) emitCompoundAssign(b *buffer, d *zast.ECompoundAssign) string {
	targetC := e.emitExprInto(b, &d.Target)
	valC := e.emitExprInto(b, &d.Value)
	op, ok := binOpText[d.Op]
	if !ok {
		op = "+"
	}
	b.line("%s = (%s %s %s);", targetC, targetC, op, valC)
	return targetC
}

func (e *Emitter) emitIncDec(b *buffer, d *zast.EIncDec) string {
	targetC := e.emitExprInto(b, &d.Target)
	op := "++"
	if d.Op == zast.Decrement {
		op = "--"
	}
	if d.IsPrefix {
		return "(" + op + targetC + ")"
	}
	return "(" + targetC + op + ")"
}
