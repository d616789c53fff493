package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epigen/internal/errors"
)

func mustPrimitive(t *testing.T, name string) TypeDescriptor {
	t.Helper()

	td, ok := Primitive(name)
	require.True(t, ok, "primitive %s", name)

	return td
}

func TestTypeDescriptor_String(t *testing.T) {
	floatT := mustPrimitive(t, "epiFloat")

	arr, err := ArrayOf(floatT)
	require.NoError(t, err)

	classArr, err := ArrayOf(ClassRef("B"))
	require.NoError(t, err)

	ptr, err := PointerTo(ClassRef("B"))
	require.NoError(t, err)

	tests := []struct {
		td   TypeDescriptor
		want string
	}{
		{floatT, "epiFloat"},
		{arr, "epiArray<epiFloat>"},
		{classArr, "epiPtrArray<B>"},
		{ptr, "B*"},
		{EnumRef("Color::EInnerMask"), "Color::EInnerMask"},
		{TypeDescriptor{}, "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.td.String())
	}
}

func TestTypeDescriptor_RejectsNestedComposites(t *testing.T) {
	arr, err := ArrayOf(mustPrimitive(t, "epiS32"))
	require.NoError(t, err)

	_, err = ArrayOf(arr)
	assert.True(t, errors.Is(err, ErrNestedComposite))

	_, err = PointerTo(arr)
	assert.True(t, errors.Is(err, ErrNestedComposite))

	_, err = ArrayOf(TypeDescriptor{})
	assert.Error(t, err)
}

func TestTypeDescriptor_ByValue(t *testing.T) {
	ptr, err := PointerTo(mustPrimitive(t, "epiFloat"))
	require.NoError(t, err)

	assert.True(t, mustPrimitive(t, "epiU8").ByValue())
	assert.True(t, EnumRef("EMask").ByValue())
	assert.True(t, ptr.ByValue())
	assert.False(t, mustPrimitive(t, "epiString").ByValue())
	assert.False(t, mustPrimitive(t, "epiMat4x4f").ByValue())
	assert.False(t, ClassRef("B").ByValue())
}

func TestTypeDescriptor_Equal(t *testing.T) {
	a, _ := ArrayOf(EnumRef("EMask"))
	b, _ := ArrayOf(EnumRef("EMask"))
	c, _ := PointerTo(EnumRef("EMask"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, EnumRef("EMask"), a.Leaf())
}

func TestPrimitiveKind(t *testing.T) {
	k, ok := LookupPrimitive("epiSize_t")
	require.True(t, ok)
	assert.Equal(t, "Size", k.String())
	assert.True(t, k.IsInteger())
	assert.True(t, k.IsFundamental())

	k, _ = LookupPrimitive("epiVec4f")
	assert.False(t, k.IsFundamental())
	assert.False(t, k.IsNumber())
	assert.Equal(t, "", k.DefaultLiteral())

	assert.Equal(t, "PrimitiveKind(0)", PrimitiveKind(0).String())
	assert.Len(t, PrimitiveNames(), len(primitiveKinds))
}
