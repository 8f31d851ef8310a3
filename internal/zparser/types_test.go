package zparser

import (
	"testing"

	"github.com/redodson01/zinc/internal/logger"
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/ztype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTypeOK(t *testing.T, src string) *zast.TypeInfo {
	t.Helper()
	var log logger.Log
	p := New(src, &log)
	ti := p.parseType()
	require.False(t, log.HasErrors(), "unexpected errors: %v", log.Msgs())
	return ti
}

func TestPrimitiveType(t *testing.T) {
	ti := parseTypeOK(t, "int")
	assert.Equal(t, ztype.Int, ti.Kind)
}

func TestOptionalSuffix(t *testing.T) {
	ti := parseTypeOK(t, "int?")
	assert.Equal(t, ztype.Int, ti.Kind)
	assert.True(t, ti.IsOptional)
}

func TestStructOrClassNameType(t *testing.T) {
	ti := parseTypeOK(t, "Point")
	assert.Equal(t, ztype.Struct, ti.Kind)
	assert.Equal(t, "Point", ti.Name)
}

func TestArrayType(t *testing.T) {
	ti := parseTypeOK(t, "[int]")
	assert.Equal(t, ztype.Array, ti.Kind)
	require.NotNil(t, ti.Elem)
	assert.Equal(t, ztype.Int, ti.Elem.Kind)
}

func TestHashType(t *testing.T) {
	ti := parseTypeOK(t, "[string: int]")
	assert.Equal(t, ztype.Hash, ti.Kind)
	require.NotNil(t, ti.Key)
	require.NotNil(t, ti.Elem)
	assert.Equal(t, ztype.String, ti.Key.Kind)
	assert.Equal(t, ztype.Int, ti.Elem.Kind)
}

func TestTupleType(t *testing.T) {
	ti := parseTypeOK(t, "(int, string)")
	assert.True(t, ti.IsTuple)
	require.Len(t, ti.Fields, 2)
	assert.Equal(t, ztype.Int, ti.Fields[0].Type.Kind)
	assert.Equal(t, ztype.String, ti.Fields[1].Type.Kind)
}

func TestNamedTupleType(t *testing.T) {
	ti := parseTypeOK(t, "(x: int, y: string)")
	assert.True(t, ti.IsTuple)
	require.Len(t, ti.Fields, 2)
	assert.Equal(t, "x", ti.Fields[0].Name)
	assert.Equal(t, "y", ti.Fields[1].Name)
}

func TestObjectType(t *testing.T) {
	ti := parseTypeOK(t, "{x: int, y: string}")
	assert.True(t, ti.IsObject)
	require.Len(t, ti.Fields, 2)
	assert.Equal(t, "x", ti.Fields[0].Name)
}
