package zemit

import (
	"fmt"
	"strings"

	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zsymbols"
	"github.com/redodson01/zinc/internal/ztype"
)

func (e *Emitter) emitCall(b *buffer, ex *zast.Expr, d *zast.ECall) string {
	if def, ok := e.reg.Lookup(d.Callee); ok {
		return e.emitStructInit(b, ex, d, def)
	}
	if d.Callee == "print" {
		arg := e.emitExprInto(b, &d.Args[0].Value)
		return fmt.Sprintf("__zn_print(%s)", arg)
	}
	sig := e.funcSigs[d.Callee]
	args := make([]string, len(d.Args))
	for i := range d.Args {
		argC := e.emitExprInto(b, &d.Args[i].Value)
		if i < len(sig) {
			argC = coerceArg(argC, d.Args[i].Value.ResolvedType, sig[i])
		}
		args[i] = argC
	}
	return fmt.Sprintf("%s(%s)", d.Callee, strings.Join(args, ", "))
}

// emitStructInit builds a value-struct compound literal or a
// heap-allocated, reference-counted class instance, per spec.md
// §4.5's type-layout contract: classes go through the generated
// allocFn, which zero-allocates the instance and sets _rc to 1; every
// field is then assigned from the named arguments, filling any field
// with HasDefault from its declared default expression when the
// caller omitted it.
func (e *Emitter) emitStructInit(b *buffer, ex *zast.Expr, d *zast.ECall, def *zsymbols.StructDef) string {
	supplied := make(map[string]string, len(d.Args))
	for i := range d.Args {
		arg := &d.Args[i]
		argC := e.emitExprInto(b, &arg.Value)
		if arg.Value.ResolvedType != nil && arg.Value.ResolvedType.Kind.IsReferenceKind() && !arg.Value.IsFreshAlloc {
			if call := retainCallFor(arg.Value.ResolvedType, argC); call != "" {
				b.line("%s;", call)
			}
		}
		supplied[arg.Name] = argC
	}

	values := make([]string, len(def.Fields))
	for i, f := range def.Fields {
		if v, ok := supplied[f.Name]; ok {
			values[i] = v
			continue
		}
		if f.HasDefault {
			values[i] = e.emitExprInto(b, f.Default)
			continue
		}
		values[i] = "0" // weak fields default to null/zero
	}

	if !def.IsClass {
		fields := make([]string, len(def.Fields))
		for i, f := range def.Fields {
			fields[i] = fmt.Sprintf(".%s = %s", f.Name, values[i])
		}
		return fmt.Sprintf("(%s){ %s }", def.Name, strings.Join(fields, ", "))
	}

	tmp := e.nextTemp("new")
	b.line("%s* %s = %s();", def.Name, tmp, allocFn(def.Name))
	for i, f := range def.Fields {
		b.line("%s->%s = %s;", tmp, f.Name, values[i])
	}
	return tmp
}

// coerceArg implements spec.md §4.4.6: a non-optional argument passed
// where the callee expects an optional value kind is wrapped into the
// tagged representation at the call site.
func coerceArg(argC string, argT, paramT *ztype.Type) string {
	if paramT == nil || !paramT.IsOptional || (argT != nil && argT.IsOptional) {
		return argC
	}
	if paramT.Kind.IsReferenceKind() {
		return argC
	}
	return fmt.Sprintf("(%s){ ._has = true, ._val = %s }", cTypeName(paramT), argC)
}
