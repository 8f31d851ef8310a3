package ztype

import "testing"

func TestCloneIsDeepNotShallow(t *testing.T) {
	elem := New(Int)
	arr := New(Array)
	arr.Elem = elem

	clone := Clone(arr)
	clone.Elem.Kind = Float

	if elem.Kind != Int {
		t.Fatalf("mutating the clone's Elem mutated the original: %v", elem.Kind)
	}
	if clone.Elem.Kind != Float {
		t.Fatalf("clone.Elem was not mutated as expected")
	}
}

func TestEqualsStructural(t *testing.T) {
	a := &Type{Kind: Array, Elem: New(Int)}
	b := &Type{Kind: Array, Elem: New(Int)}
	c := &Type{Kind: Array, Elem: New(Float)}

	if !Equals(a, b) {
		t.Fatalf("expected structurally-equal arrays to be Equals")
	}
	if Equals(a, c) {
		t.Fatalf("expected array[int] != array[float]")
	}
}

func TestEqualsDistinguishesOptional(t *testing.T) {
	a := New(Int)
	b := Optional(New(Int))
	if Equals(a, b) {
		t.Fatalf("int and int? must not be Equals")
	}
}

func TestEqualsStructClassByName(t *testing.T) {
	a := &Type{Kind: Struct, Name: "Point"}
	b := &Type{Kind: Struct, Name: "Point"}
	c := &Type{Kind: Struct, Name: "Other"}
	if !Equals(a, b) {
		t.Fatalf("same-named structs should be Equals")
	}
	if Equals(a, c) {
		t.Fatalf("differently-named structs must not be Equals")
	}
}

func TestSuffixOf(t *testing.T) {
	cases := []struct {
		kind Kind
		name string
		want string
	}{
		{Int, "", "int"},
		{Float, "", "float"},
		{String, "", "str"},
		{Bool, "", "bool"},
		{Char, "", "char"},
		{Array, "", "arr"},
		{Hash, "", "hash"},
		{Struct, "Point", "Point"},
		{Class, "Animal", "Animal"},
	}
	for _, c := range cases {
		if got := SuffixOf(c.kind, c.name); got != c.want {
			t.Fatalf("SuffixOf(%v, %q) = %q, want %q", c.kind, c.name, got, c.want)
		}
	}
}

func TestIsReferenceKind(t *testing.T) {
	for _, k := range []Kind{String, Class, Array, Hash} {
		if !k.IsReferenceKind() {
			t.Fatalf("%v should be a reference kind", k)
		}
	}
	for _, k := range []Kind{Int, Float, Bool, Char, Void, Struct} {
		if k.IsReferenceKind() {
			t.Fatalf("%v should not be a reference kind", k)
		}
	}
}
