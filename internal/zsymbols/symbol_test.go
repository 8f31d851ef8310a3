package zsymbols

import (
	"testing"

	"github.com/redodson01/zinc/internal/ztype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeDeclareRejectsShadowInSameScope(t *testing.T) {
	s := NewScope(nil, ScopeBlock)
	require.True(t, s.Declare("x", &Symbol{Name: "x", Type: ztype.New(ztype.Int)}))
	assert.False(t, s.Declare("x", &Symbol{Name: "x", Type: ztype.New(ztype.Int)}))
}

func TestScopeDeclareAllowsShadowAcrossScopes(t *testing.T) {
	outer := NewScope(nil, ScopeBlock)
	require.True(t, outer.Declare("x", &Symbol{Name: "x", Type: ztype.New(ztype.Int)}))

	inner := NewScope(outer, ScopeBlock)
	assert.True(t, inner.Declare("x", &Symbol{Name: "x", Type: ztype.New(ztype.String)}))

	sym, ok := inner.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, ztype.String, sym.Type.Kind)
}

func TestScopeLookupWalksParents(t *testing.T) {
	outer := NewScope(nil, ScopeBlock)
	outer.Declare("y", &Symbol{Name: "y", Type: ztype.New(ztype.Bool)})
	inner := NewScope(outer, ScopeBlock)

	sym, ok := inner.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, ztype.Bool, sym.Type.Kind)

	_, ok = inner.Lookup("nope")
	assert.False(t, ok)
}

func TestSymbolCloneIsIndependent(t *testing.T) {
	orig := &Symbol{Name: "x", Type: ztype.Optional(ztype.New(ztype.Int))}
	clone := orig.Clone()
	clone.Type.IsOptional = false

	assert.True(t, orig.Type.IsOptional, "cloning must not mutate the original symbol's type")
	assert.False(t, clone.Type.IsOptional)
}

func TestLoopBoundaryDetection(t *testing.T) {
	loop := NewScope(nil, ScopeLoop)
	block := NewScope(loop, ScopeBlock)
	assert.True(t, loop.IsLoopBoundary())
	assert.False(t, block.IsLoopBoundary())
}
