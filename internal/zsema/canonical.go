package zsema

import "github.com/redodson01/zinc/internal/ztype"

// component is one positional or named slot of a tuple/object literal
// or inline composite type annotation, reduced to exactly what the
// canonical-name algorithm in spec.md §3 needs: an optional name and
// the kind/name suffix (spec.md §4.1's suffix_of).
type component struct {
	Name   string // empty for a positional tuple component
	Suffix string
}

func suffixFor(t *ztype.Type) string {
	if t == nil {
		return "unk"
	}
	return ztype.SuffixOf(t.Kind, t.Name)
}

// tupleCanonicalName implements spec.md §3's two tuple naming
// schemes: "__ZnTuple followed by _<suffix> per positional field, or
// _<name>_<suffix> when all fields are named."
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

// objectCanonicalName implements spec.md §3's object-literal naming
// scheme: "__obj followed by _<fieldname>_<suffix> per field."
func objectCanonicalName(comps []component) string {
	name := "__obj"
	for _, c := range comps {
		name += "_" + c.Name + "_" + c.Suffix
	}
	return name
}

// positionalFieldName returns the canonical field accessor name for
// the n-th positional tuple component ("_0, _1, ..." per spec.md §3).
func positionalFieldName(n int) string {
	digits := [...]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	if n < 10 {
		return "_" + digits[n]
	}
	// Tuples with ten-plus components are rare but not forbidden;
	// fall back to a plain itoa-style expansion.
	s := ""
	for n > 0 {
		s = digits[n%10] + s
		n /= 10
	}
	return "_" + s
}
