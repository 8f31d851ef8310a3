package zast

import "github.com/redodson01/zinc/internal/ztype"

// TypeInfo is the parser-side type specification spec.md §3
// describes: "before struct/class resolution". Semantic analysis
// converts a TypeInfo into a ztype.Type, possibly registering a new
// anonymous StructDef as a side effect (tuple/object type
// annotations).
type TypeInfo struct {
	Kind       ztype.Kind
	IsOptional bool

	// Name is the struct/class name as written in the annotation,
	// unresolved until the analyzer looks it up in the struct
	// registry.
	Name string

	Elem *TypeInfo // array element / hash value annotation
	Key  *TypeInfo // hash key annotation

	IsObject bool
	IsTuple  bool

	// Fields describes a composite type annotation (tuple or object)
	// written out inline, e.g. `(x: int, y: int)`.
	Fields []TypeInfoField
}

type TypeInfoField struct {
	Name string
	Type *TypeInfo
}
