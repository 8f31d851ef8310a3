package zemit

import (
	"github.com/redodson01/zinc/internal/zsymbols"
	"github.com/redodson01/zinc/internal/ztype"
)

// emitTypeLayout implements spec.md §4.5 over every StructDef the
// analyzer registered, in the order rule (a)-(d) requires: value
// structs first, then named classes, then anonymous tuples, then
// anonymous objects — so that forward-referenced class tags
// (spec.md §9) are always declared before a later type's field needs
// them. Collection helper declarations (e) are the runtime header's
// job (internal/runtime), not a per-compilation concern, since they
// don't vary by program.
func (e *Emitter) emitTypeLayout() {
	var structs, classes, tuples, objects []*zsymbols.StructDef
	for _, def := range e.reg.InOrder() {
		switch {
		case isTupleName(def.Name):
			tuples = append(tuples, def)
		case isObjectName(def.Name):
			objects = append(objects, def)
		case def.IsClass:
			classes = append(classes, def)
		default:
			structs = append(structs, def)
		}
	}

	for _, def := range structs {
		e.emitValueStructTypedef(def)
	}
	for _, def := range classes {
		e.emitClassTypedef(def)
	}
	for _, def := range tuples {
		e.emitValueStructTypedef(def)
	}
	for _, def := range objects {
		e.emitClassTypedef(def)
	}

	for _, def := range structs {
		e.emitValueStructHelpers(def)
	}
	for _, def := range classes {
		e.emitClassHelpers(def)
	}
	for _, def := range tuples {
		e.emitValueStructHelpers(def)
	}
	for _, def := range objects {
		e.emitClassHelpers(def)
	}
}

func isTupleName(name string) bool {
	return len(name) >= len("__ZnTuple") && name[:len("__ZnTuple")] == "__ZnTuple"
}

func isObjectName(name string) bool {
	return len(name) >= len("__obj") && name[:len("__obj")] == "__obj"
}

func (e *Emitter) emitValueStructTypedef(def *zsymbols.StructDef) {
	e.header.line("typedef struct %s {", cTag(def.Name))
	e.header.indent++
	for _, f := range def.Fields {
		ct := cTypeName(f.Type)
		if f.Type != nil && f.Type.Kind == ztype.Class {
			ct = "struct " + cTag(f.Type.Name) + "*"
		}
		e.header.line("%s %s;", ct, f.Name)
	}
	e.header.indent--
	e.header.line("} %s;", def.Name)
	e.header.blank()
}

// emitClassTypedef emits a named-tag struct prefixed with the
// refcount field, so self-referential and forward-referenced pointer
// fields (`struct <tag> *`) compile before the typedef name itself is
// visible (spec.md §9).
func (e *Emitter) emitClassTypedef(def *zsymbols.StructDef) {
	e.header.line("typedef struct %s {", cTag(def.Name))
	e.header.indent++
	e.header.line("int32_t _rc;")
	for _, f := range def.Fields {
		ct := cTypeName(f.Type)
		if f.Type != nil && f.Type.Kind == ztype.Class {
			ct = "struct " + cTag(f.Type.Name) + "*"
		}
		e.header.line("%s %s;", ct, f.Name)
	}
	e.header.indent--
	e.header.line("} %s;", def.Name)
	e.header.blank()
}

func (e *Emitter) emitValueStructHelpers(def *zsymbols.StructDef) {
	e.header.line("void %s(void* self);", releaseFn(def.Name))
	e.header.line("uint32_t %s(const void* self);", hashFn(def.Name))
	e.header.line("bool %s(const void* a, const void* b);", equalsFn(def.Name))
	e.header.blank()

	if def.HasRCFields {
		e.source.line("void %s(void* selfPtr) {", releaseFn(def.Name))
		e.source.indent++
		e.source.line("%s* self = (%s*)selfPtr;", def.Name, def.Name)
		for _, f := range def.Fields {
			if f.IsWeak {
				continue
			}
			if call := releaseCallFor(f.Type, "self->"+f.Name, e.hasRCFields(f.Type)); call != "" {
				e.source.line("%s;", call)
			}
		}
		e.source.indent--
		e.source.line("}")
		e.source.blank()
	} else {
		e.source.line("void %s(void* selfPtr) { (void)selfPtr; }", releaseFn(def.Name))
		e.source.blank()
	}

	e.emitHashcode(def)
	e.emitEquals(def)
}

func (e *Emitter) emitClassHelpers(def *zsymbols.StructDef) {
	e.header.line("%s* %s(void);", def.Name, allocFn(def.Name))
	e.header.line("void %s(void* self);", retainFn(def.Name))
	e.header.line("void %s(void* self);", releaseFn(def.Name))
	e.header.line("uint32_t %s(const void* self);", hashFn(def.Name))
	e.header.line("bool %s(const void* a, const void* b);", equalsFn(def.Name))
	e.header.blank()

	e.source.line("%s* %s(void) {", def.Name, allocFn(def.Name))
	e.source.indent++
	e.source.line("%s* self = (%s*)calloc(1, sizeof(%s));", def.Name, def.Name, def.Name)
	e.source.line("self->_rc = 1;")
	e.source.line("return self;")
	e.source.indent--
	e.source.line("}")
	e.source.blank()

	e.source.line("void %s(void* selfPtr) {", retainFn(def.Name))
	e.source.indent++
	e.source.line("%s* self = (%s*)selfPtr;", def.Name, def.Name)
	e.source.line("self->_rc++;")
	e.source.indent--
	e.source.line("}")
	e.source.blank()

	// "release walks all ref fields, recurses into value-type fields,
	// then frees. weak fields are skipped in release." (spec.md §4.5)
	e.source.line("void %s(void* selfPtr) {", releaseFn(def.Name))
	e.source.indent++
	e.source.line("%s* self = (%s*)selfPtr;", def.Name, def.Name)
	e.source.line("if (--self->_rc > 0) return;")
	for _, f := range def.Fields {
		if f.IsWeak {
			continue
		}
		if call := releaseCallFor(f.Type, "self->"+f.Name, e.hasRCFields(f.Type)); call != "" {
			e.source.line("%s;", call)
		}
	}
	e.source.line("free(self);")
	e.source.indent--
	e.source.line("}")
	e.source.blank()

	e.emitHashcode(def)
	e.emitEquals(def)
}

// emitHashcode/emitEquals implement spec.md §4.5's per-type djb2
// hashcode and field-by-field equality: primitive fields hash/compare
// by native pattern, reference-class fields by pointer identity,
// value-struct fields recurse into their own generated hashcode.
func (e *Emitter) emitHashcode(def *zsymbols.StructDef) {
	e.source.line("uint32_t %s(const void* selfPtr) {", hashFn(def.Name))
	e.source.indent++
	e.source.line("const %s* self = (const %s*)selfPtr;", def.Name, def.Name)
	e.source.line("uint32_t h = 5381;")
	for _, f := range def.Fields {
		e.source.line("h = __zn_djb2_mix(h, %s);", hashFieldExpr(f))
	}
	e.source.line("return h;")
	e.source.indent--
	e.source.line("}")
	e.source.blank()
}

func (e *Emitter) emitEquals(def *zsymbols.StructDef) {
	e.source.line("bool %s(const void* aPtr, const void* bPtr) {", equalsFn(def.Name))
	e.source.indent++
	e.source.line("const %s* a = (const %s*)aPtr;", def.Name, def.Name)
	e.source.line("const %s* b = (const %s*)bPtr;", def.Name, def.Name)
	for _, f := range def.Fields {
		e.source.line("if (%s) return false;", equalsFieldExprNegated(f))
	}
	e.source.line("return true;")
	e.source.indent--
	e.source.line("}")
	e.source.blank()
}
