package zemit

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
)

// resolveType turns a parser-side zast.TypeInfo into a ztype.Type for
// emission purposes (function parameter/return declarations, which
// the analyzer resolves into symbol tables that do not survive past
// its own pass). Named struct/class/array/hash/primitive annotations
// resolve directly against the registry the analyzer already
// populated; an inline tuple/object annotation resolves to whatever
// StructDef a literal of the same shape would have registered,
// recomputed with the same suffix/canonical-name scheme zsema uses
// (spec.md §3's naming scheme is a pure function of the shape, so
// recomputing it here agrees with the registry without needing the
// analyzer's own registration side effect repeated).
func (e *Emitter) resolveType(ti *zast.TypeInfo) *ztype.Type {
	if ti == nil {
		return ztype.New(ztype.Void)
	}
	if ti.IsTuple || ti.IsObject {
		return e.resolveInlineComposite(ti)
	}
	switch ti.Kind {
	case ztype.Struct, ztype.Class:
		if def, ok := e.reg.Lookup(ti.Name); ok {
			kind := ztype.Struct
			if def.IsClass {
				kind = ztype.Class
			}
			return &ztype.Type{Kind: kind, Name: def.Name, IsOptional: ti.IsOptional}
		}
		return &ztype.Type{Kind: ztype.Unknown}
	case ztype.Array:
		return &ztype.Type{Kind: ztype.Array, Elem: e.resolveType(ti.Elem), IsOptional: ti.IsOptional}
	case ztype.Hash:
		return &ztype.Type{Kind: ztype.Hash, Key: e.resolveType(ti.Key), Elem: e.resolveType(ti.Elem), IsOptional: ti.IsOptional}
	default:
		return &ztype.Type{Kind: ti.Kind, IsOptional: ti.IsOptional}
	}
}

func (e *Emitter) resolveInlineComposite(ti *zast.TypeInfo) *ztype.Type {
	comps := make([]component, len(ti.Fields))
	for i, f := range ti.Fields {
		t := e.resolveType(f.Type)
		comps[i] = component{Name: f.Name, Suffix: suffixFor(t)}
	}
	if ti.IsTuple {
		return &ztype.Type{Kind: ztype.Struct, Name: tupleCanonicalName(comps), IsOptional: ti.IsOptional}
	}
	return &ztype.Type{Kind: ztype.Class, Name: objectCanonicalName(comps), IsOptional: ti.IsOptional}
}

// component/suffixFor/tupleCanonicalName/objectCanonicalName mirror
// zsema's unexported naming helpers exactly (spec.md §3's scheme is a
// pure function of shape, so the two packages agreeing requires only
// that both implement the same pure function, not that they share
// code across a package boundary neither otherwise needs).
type component struct {
	Name   string
	Suffix string
}

func suffixFor(t *ztype.Type) string {
	if t == nil {
		return "unk"
	}
	return ztype.SuffixOf(t.Kind, t.Name)
}

func tupleCanonicalName(comps []component) string {
	allNamed := len(comps) > 0
	for _, c := range comps {
		if c.Name == "" {
			allNamed = false
			break
		}
	}
	name := "__ZnTuple"
	for _, c := range comps {
		if allNamed {
			name += "_" + c.Name + "_" + c.Suffix
		} else {
			name += "_" + c.Suffix
		}
	}
	return name
}

func objectCanonicalName(comps []component) string {
	name := "__obj"
	for _, c := range comps {
		name += "_" + c.Name + "_" + c.Suffix
	}
	return name
}
