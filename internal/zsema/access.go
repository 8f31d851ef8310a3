package zsema

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

func (a *Analyzer) analyzeFieldAccess(e *zast.Expr, d *zast.EFieldAccess) {
	a.analyzeExpr(&d.Base)
	base := d.Base.ResolvedType

	if d.Field == "length" && base != nil &&
		(base.Kind == ztype.String || base.Kind == ztype.Array || base.Kind == ztype.Hash) {
		a.resolve(e, ztype.New(ztype.Int), false)
		return
	}

	if base != nil && base.Kind == ztype.String {
		a.log.AddError(e.Loc.Line, "strings have no field '%s'", d.Field)
		a.resolve(e, ztype.New(ztype.Unknown), false)
		return
	}

	if base == nil || (base.Kind != ztype.Struct && base.Kind != ztype.Class) {
		a.log.AddError(e.Loc.Line, "field access on a non-struct type")
		a.resolve(e, ztype.New(ztype.Unknown), false)
		return
	}

	def, ok := a.registry.Lookup(base.Name)
	if !ok {
		a.log.AddError(e.Loc.Line, "field access on unresolved type '%s'", base.Name)
		a.resolve(e, ztype.New(ztype.Unknown), false)
		return
	}

	if !d.IsDotInt && isTupleDef(def.Name) && tupleIndexFieldName.MatchString(d.Field) {
		a.log.AddError(e.Loc.Line, "use '.%s' (the canonical form) to access a tuple's positional field", d.Field[1:])
	}

	for _, f := range def.Fields {
		if f.Name == d.Field {
			a.resolve(e, ztype.Clone(f.Type), false)
			return
		}
	}
	a.log.AddError(e.Loc.Line, "'%s' has no field '%s'", def.Name, d.Field)
	a.resolve(e, ztype.New(ztype.Unknown), false)
}

func isTupleDef(name string) bool {
	return len(name) >= len("__ZnTuple") && name[:len("__ZnTuple")] == "__ZnTuple"
}

func (a *Analyzer) analyzeIndex(e *zast.Expr, d *zast.EIndex) {
	a.analyzeExpr(&d.Base)
	a.analyzeExpr(&d.Index)
	base := d.Base.ResolvedType

	switch {
	case base != nil && base.Kind == ztype.String:
		if !isUnknownType(d.Index.ResolvedType) && d.Index.ResolvedType.Kind != ztype.Int {
			a.log.AddError(e.Loc.Line, "string index must be an int")
		}
		a.resolve(e, ztype.New(ztype.Char), false)

	case base != nil && base.Kind == ztype.Array:
		if !isUnknownType(d.Index.ResolvedType) && d.Index.ResolvedType.Kind != ztype.Int {
			a.log.AddError(e.Loc.Line, "array index must be an int")
		}
		a.resolve(e, ztype.Clone(base.Elem), false)

	case base != nil && base.Kind == ztype.Hash:
		a.resolve(e, ztype.Clone(base.Elem), false)

	default:
		a.log.AddError(e.Loc.Line, "invalid index target")
		a.resolve(e, ztype.New(ztype.Unknown), false)
	}
}

func (a *Analyzer) analyzeArrayLiteral(e *zast.Expr, d *zast.EArrayLiteral) {
	var elemType *ztype.Type
	for i := range d.Elements {
		a.analyzeExpr(&d.Elements[i])
		t := d.Elements[i].ResolvedType
		if isUnknownType(t) {
			continue
		}
		if elemType == nil {
			elemType = t
		} else if !ztype.Equals(elemType, t) {
			a.log.AddError(e.Loc.Line, "array elements must all have the same type")
		}
	}
	if elemType == nil {
		elemType = ztype.New(ztype.Unknown)
	}
	a.resolve(e, &ztype.Type{Kind: ztype.Array, Elem: ztype.Clone(elemType)}, true)
}

func (a *Analyzer) analyzeHashLiteral(e *zast.Expr, d *zast.EHashLiteral) {
	var keyType, valType *ztype.Type
	for i := range d.Pairs {
		p := &d.Pairs[i]
		a.analyzeExpr(&p.Key)
		a.analyzeExpr(&p.Value)
		kt, vt := p.Key.ResolvedType, p.Value.ResolvedType
		if !isUnknownType(kt) {
			if keyType == nil {
				keyType = kt
			} else if !ztype.Equals(keyType, kt) {
				a.log.AddError(e.Loc.Line, "hash keys must all have the same type")
			}
		}
		if !isUnknownType(vt) {
			if valType == nil {
				valType = vt
			} else if !ztype.Equals(valType, vt) {
				a.log.AddError(e.Loc.Line, "hash values must all have the same type")
			}
		}
	}
	if keyType == nil {
		keyType = ztype.New(ztype.Unknown)
	}
	if valType == nil {
		valType = ztype.New(ztype.Unknown)
	}
	a.resolve(e, &ztype.Type{Kind: ztype.Hash, Key: ztype.Clone(keyType), Elem: ztype.Clone(valType)}, true)
}
