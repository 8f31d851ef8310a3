package zsema

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zsymbols"
	"github.com/redodson01/zinc/internal/ztype"
)

func (a *Analyzer) analyzeTuple(e *zast.Expr, d *zast.ETuple) {
	comps := make([]component, len(d.Elements))
	types := make([]*ztype.Type, len(d.Elements))
	for i := range d.Elements {
		el := &d.Elements[i]
		a.analyzeExpr(&el.Value)
		types[i] = el.Value.ResolvedType
		comps[i] = component{Name: el.Name, Suffix: suffixFor(types[i])}
	}

	name := tupleCanonicalName(comps)
	def := a.registry.RegisterIfAbsent(name, a.buildTupleDefFromComponents(name, d.Elements, types))
	a.resolve(e, &ztype.Type{Kind: ztype.Struct, Name: def.Name}, true)
}

func (a *Analyzer) buildTupleDefFromComponents(name string, elems []zast.Arg, types []*ztype.Type) *zsymbols.StructDef {
	def := &zsymbols.StructDef{Name: name, IsClass: false}
	for i, el := range elems {
		fieldName := el.Name
		if fieldName == "" {
			fieldName = positionalFieldName(i)
		}
		def.Fields = append(def.Fields, zsymbols.StructFieldDef{Name: fieldName, Type: ztype.Clone(types[i])})
	}
	return def
}

func (a *Analyzer) analyzeObjectLiteral(e *zast.Expr, d *zast.EObjectLiteral) {
	comps := make([]component, len(d.Fields))
	types := make([]*ztype.Type, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		a.analyzeExpr(&f.Value)
		types[i] = f.Value.ResolvedType
		comps[i] = component{Name: f.Name, Suffix: suffixFor(types[i])}
	}

	name := objectCanonicalName(comps)
	def := a.registry.RegisterIfAbsent(name, a.buildObjectDefFromComponents(name, d.Fields, types))
	// "Object literals are classes (reference types with ARC)" —
	// always fresh.
	a.resolve(e, &ztype.Type{Kind: ztype.Class, Name: def.Name}, true)
}

func (a *Analyzer) buildObjectDefFromComponents(name string, fields []zast.Arg, types []*ztype.Type) *zsymbols.StructDef {
	def := &zsymbols.StructDef{Name: name, IsClass: true}
	for i, f := range fields {
		def.Fields = append(def.Fields, zsymbols.StructFieldDef{Name: f.Name, Type: ztype.Clone(types[i])})
	}
	return def
}
