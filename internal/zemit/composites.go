package zemit

import (
	"fmt"
	"strings"

	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

func (e *Emitter) emitTuple(b *buffer, ex *zast.Expr, d *zast.ETuple) string {
	def, ok := e.reg.Lookup(ex.ResolvedType.Name)
	if !ok {
		return "/* unregistered tuple */ {0}"
	}
	fields := make([]string, len(d.Elements))
	for i := range d.Elements {
		val := e.emitExprInto(b, &d.Elements[i].Value)
		if i < len(def.Fields) {
			fields[i] = fmt.Sprintf(".%s = %s", def.Fields[i].Name, val)
		}
	}
	return fmt.Sprintf("(%s){ %s }", def.Name, strings.Join(fields, ", "))
}

func (e *Emitter) emitObjectLiteral(b *buffer, ex *zast.Expr, d *zast.EObjectLiteral) string {
	def, ok := e.reg.Lookup(ex.ResolvedType.Name)
	if !ok {
		return "/* unregistered object */ NULL"
	}
	values := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		argC := e.emitExprInto(b, &f.Value)
		if f.Value.ResolvedType != nil && f.Value.ResolvedType.Kind.IsReferenceKind() && !f.Value.IsFreshAlloc {
			if call := retainCallFor(f.Value.ResolvedType, argC); call != "" {
				b.line("%s;", call)
			}
		}
		values[i] = argC
	}
	tmp := e.nextTemp("new")
	b.line("%s* %s = %s();", def.Name, tmp, allocFn(def.Name))
	for i, f := range def.Fields {
		b.line("%s->%s = %s;", tmp, f.Name, values[i])
	}
	return tmp
}

func (e *Emitter) emitArrayLiteral(b *buffer, ex *zast.Expr, d *zast.EArrayLiteral) string {
	elem := ex.ResolvedType.Elem
	tmp := e.nextTemp("arr")
	b.line("ZnArray* %s = __zn_arr_alloc(%d, %s, %s, %s, %s);", tmp, len(d.Elements),
		hashCallbackFor(elem), equalsCallbackFor(elem), retainFnOrNull(elem), releaseFnOrNull(elem))
	for i := range d.Elements {
		val := e.emitExprInto(b, &d.Elements[i])
		fresh := d.Elements[i].IsFreshAlloc && elem != nil && elem.Kind.IsReferenceKind()
		if fresh {
			ins := e.nextTemp("ins")
			b.line("%s %s = %s;", cTypeName(elem), ins, val)
			val = ins
		}
		boxed := boxElem(val, elem, d.Elements[i].IsFreshAlloc)
		b.line("__zn_arr_push(%s, %s);", tmp, boxed)
		if fresh {
			b.line("%s;", releaseCallFor(elem, val, false))
		}
	}
	return tmp
}

func (e *Emitter) emitHashLiteral(b *buffer, ex *zast.Expr, d *zast.EHashLiteral) string {
	keyT, valT := ex.ResolvedType.Key, ex.ResolvedType.Elem
	tmp := e.nextTemp("hash")
	b.line("ZnHash* %s = __zn_hash_alloc(%d);", tmp, len(d.Pairs))
	for i := range d.Pairs {
		p := &d.Pairs[i]
		k := e.emitExprInto(b, &p.Key)
		v := e.emitExprInto(b, &p.Value)
		boxedKey := boxElem(k, keyT, p.Key.IsFreshAlloc)
		boxedVal := boxElem(v, valT, p.Value.IsFreshAlloc)
		b.line("__zn_hash_set(%s, %s, %s);", tmp, boxedKey, boxedVal)
	}
	return tmp
}

// boxElem wraps val in the runtime's ZnValue box for t. The boxing
// calls do not retain; retaining is the container's job. For arrays,
// __zn_arr_push retains through the array's retain callback, so
// emitArrayLiteral (spec.md §4.4.2 rule 4) pre-evaluates a fresh
// element into a temporary and releases that temporary after the push.
func boxElem(val string, t *ztype.Type, _ bool) string {
	if t == nil {
		return val
	}
	switch t.Kind {
	case ztype.Int:
		return fmt.Sprintf("__zn_val_int(%s)", val)
	case ztype.Float:
		return fmt.Sprintf("__zn_val_float(%s)", val)
	case ztype.Bool:
		return fmt.Sprintf("__zn_val_bool(%s)", val)
	case ztype.Char:
		return fmt.Sprintf("__zn_val_char(%s)", val)
	case ztype.String:
		return fmt.Sprintf("__zn_val_string(%s)", val)
	case ztype.Array:
		return fmt.Sprintf("__zn_val_array(%s)", val)
	case ztype.Hash:
		return fmt.Sprintf("__zn_val_hash(%s)", val)
	case ztype.Class:
		return fmt.Sprintf("__zn_val_ref(%s)", val)
	case ztype.Struct:
		return fmt.Sprintf("__zn_val_val(&(%s), sizeof(%s))", val, t.Name)
	default:
		return val
	}
}

func hashCallbackFor(t *ztype.Type) string {
	if t == nil {
		return "__zn_default_hashcode"
	}
	if t.Kind == ztype.Struct || t.Kind == ztype.Class {
		return hashFn(t.Name)
	}
	return "__zn_default_hashcode"
}

func equalsCallbackFor(t *ztype.Type) string {
	if t == nil {
		return "__zn_default_equals"
	}
	if t.Kind == ztype.Struct || t.Kind == ztype.Class {
		return equalsFn(t.Name)
	}
	return "__zn_default_equals"
}
