package zsema

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zsymbols"
	"github.com/redodson01/zinc/internal/ztype"
)

// resolveTypeInfo converts a parser-side zast.TypeInfo into a
// ztype.Type, per spec.md §4.1: "Semantic analysis converts TypeInfo
// to Type and may register new anonymous types as a side effect."
func (a *Analyzer) resolveTypeInfo(ti *zast.TypeInfo, line int) *ztype.Type {
	if ti == nil {
		return ztype.New(ztype.Unknown)
	}

	if ti.IsTuple || ti.IsObject {
		return a.resolveInlineComposite(ti, line)
	}

	switch ti.Kind {
	case ztype.Struct, ztype.Class:
		def, ok := a.registry.Lookup(ti.Name)
		if !ok {
			a.log.AddError(line, "undefined type '%s'", ti.Name)
			return ztype.New(ztype.Unknown)
		}
		// "a name referring to a class resolves to class kind even
		// though the parser emitted struct" (spec.md §4.3).
		kind := ztype.Struct
		if def.IsClass {
			kind = ztype.Class
		}
		return &ztype.Type{Kind: kind, Name: def.Name, IsOptional: ti.IsOptional}

	case ztype.Array:
		elem := a.resolveTypeInfo(ti.Elem, line)
		return &ztype.Type{Kind: ztype.Array, Elem: elem, IsOptional: ti.IsOptional}

	case ztype.Hash:
		key := a.resolveTypeInfo(ti.Key, line)
		val := a.resolveTypeInfo(ti.Elem, line)
		return &ztype.Type{Kind: ztype.Hash, Key: key, Elem: val, IsOptional: ti.IsOptional}

	default:
		return &ztype.Type{Kind: ti.Kind, IsOptional: ti.IsOptional}
	}
}

// resolveInlineComposite handles an inline tuple/object type
// annotation such as `(x: int, y: int)`, registering it under the
// same canonical-name scheme a literal of that shape would use so
// that an annotation and a literal with matching field shape share
// one StructDef (spec.md §8's round-trip property).
func (a *Analyzer) resolveInlineComposite(ti *zast.TypeInfo, line int) *ztype.Type {
	comps := make([]component, len(ti.Fields))
	fieldTypes := make([]*ztype.Type, len(ti.Fields))
	for i, f := range ti.Fields {
		t := a.resolveTypeInfo(f.Type, line)
		fieldTypes[i] = t
		comps[i] = component{Name: f.Name, Suffix: suffixFor(t)}
	}

	if ti.IsTuple {
		name := tupleCanonicalName(comps)
		def := a.registry.RegisterIfAbsent(name, a.buildTupleDef(name, ti.Fields, fieldTypes))
		return &ztype.Type{Kind: ztype.Struct, Name: def.Name, IsOptional: ti.IsOptional}
	}

	name := objectCanonicalName(comps)
	def := a.registry.RegisterIfAbsent(name, a.buildObjectDef(name, ti.Fields, fieldTypes))
	return &ztype.Type{Kind: ztype.Class, Name: def.Name, IsOptional: ti.IsOptional}
}

func (a *Analyzer) buildTupleDef(name string, fields []zast.TypeInfoField, types []*ztype.Type) *zsymbols.StructDef {
	def := &zsymbols.StructDef{Name: name, IsClass: false}
	for i, f := range fields {
		fieldName := f.Name
		if fieldName == "" {
			fieldName = positionalFieldName(i)
		}
		def.Fields = append(def.Fields, zsymbols.StructFieldDef{Name: fieldName, Type: types[i]})
	}
	return def
}

func (a *Analyzer) buildObjectDef(name string, fields []zast.TypeInfoField, types []*ztype.Type) *zsymbols.StructDef {
	def := &zsymbols.StructDef{Name: name, IsClass: true}
	for i, f := range fields {
		def.Fields = append(def.Fields, zsymbols.StructFieldDef{Name: f.Name, Type: types[i]})
	}
	return def
}
