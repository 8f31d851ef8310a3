package zsymbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIfAbsentDedupesSameCanonicalName(t *testing.T) {
	r := NewRegistry()
	a := &StructDef{Name: "__ZnTuple_int_str"}
	got := r.RegisterIfAbsent("__ZnTuple_int_str", a)
	require.Same(t, a, got)

	b := &StructDef{Name: "__ZnTuple_int_str"}
	got2 := r.RegisterIfAbsent("__ZnTuple_int_str", b)
	assert.Same(t, a, got2, "the second occurrence must resolve to the first StructDef")

	assert.Len(t, r.InOrder(), 1)
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.Register(&StructDef{Name: "Point"}))
	assert.False(t, r.Register(&StructDef{Name: "Point"}))
}

func TestInOrderPreservesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&StructDef{Name: "A"})
	r.Register(&StructDef{Name: "B"})
	r.Register(&StructDef{Name: "C"})

	names := make([]string, 0, 3)
	for _, d := range r.InOrder() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}
