package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epigen/internal/errors"
	"epigen/internal/hashid"
)

func newLinkedRegistry(t *testing.T, classes ...*Class) *Registry {
	t.Helper()

	r := NewRegistry("")
	for _, c := range classes {
		require.NoError(t, r.AddClass(c))
	}

	require.NoError(t, r.Link())

	return r
}

func TestRegistry_IsWalksAncestors(t *testing.T) {
	a := NewClass("", "A", "")
	b := NewClass("", "B", "A")
	c := NewClass("", "C", "B")
	other := NewClass("", "Other", "")

	r := newLinkedRegistry(t, c, b, a, other)

	assert.True(t, r.Is("C", hashid.Of("C")))
	assert.True(t, r.Is("C", hashid.Of("B")))
	assert.True(t, r.Is("C", hashid.Of("A")))
	assert.True(t, r.Is("C", hashid.Of("Object")))
	assert.False(t, r.Is("C", hashid.Of("Other")))
	assert.False(t, r.Is("A", hashid.Of("B")))
	assert.False(t, r.Is("Missing", hashid.Of("Object")))

	assert.Equal(t, "Object", a.Parent)

	var ordered []string
	for _, k := range r.Ordered() {
		ordered = append(ordered, k.Qualified)
	}

	assert.Equal(t, []string{"A", "B", "C", "Other"}, ordered)
	assert.Len(t, r.Ancestors(c), 3)
	assert.Nil(t, r.ParentOf(r.Root()))
}

func TestRegistry_UnresolvedParent(t *testing.T) {
	r := NewRegistry("")
	require.NoError(t, r.AddClass(NewClass("", "A", "Objekt")))

	err := r.Link()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnresolvedParent))
	assert.Contains(t, err.Error(), `parent "Objekt"`)
	assert.Equal(t, []string{"did you mean Object?"}, errors.GetAllHints(err))
}

func TestRegistry_Cycle(t *testing.T) {
	r := NewRegistry("")
	require.NoError(t, r.AddClass(NewClass("", "A", "B")))
	require.NoError(t, r.AddClass(NewClass("", "B", "A")))

	err := r.Link()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInheritanceCycle))
}

func TestRegistry_DuplicateClass(t *testing.T) {
	r := NewRegistry("")
	require.NoError(t, r.AddClass(NewClass("", "A", "")))
	assert.Error(t, r.AddClass(NewClass("", "A", "")))
}

func TestRegistry_ScopedResolution(t *testing.T) {
	outer := NewClass("", "Outer", "")
	inner := NewClass("Outer", "Inner", "Sibling")
	sibling := NewClass("Outer", "Sibling", "")
	outer.Nested = []*Class{inner, sibling}

	r := NewRegistry("")
	require.NoError(t, r.AddClass(outer))
	require.NoError(t, r.AddEnum(&Enum{Name: "EMask"}))
	require.NoError(t, r.AddEnum(&Enum{Scope: "Outer", Name: "EMask"}))
	require.NoError(t, r.Link())

	assert.Equal(t, "Outer::Sibling", inner.Parent)
	assert.Equal(t, hashid.Of("Outer::Inner"), inner.TypeID)

	e, ok := r.ResolveEnum("Outer::Inner", "EMask")
	require.True(t, ok)
	assert.Equal(t, "Outer::EMask", e.Qualified())

	e, ok = r.ResolveEnum("", "EMask")
	require.True(t, ok)
	assert.Equal(t, "EMask", e.Qualified())

	assert.Error(t, r.AddEnum(&Enum{Scope: "Outer", Name: "EMask"}))
	assert.Equal(t, []string{"EMask", "Outer::EMask"}, r.EnumNames())
}

func TestClass_PropertiesAndIndices(t *testing.T) {
	s32, _ := Primitive("epiS32")
	floatT, _ := Primitive("epiFloat")

	c := NewClass("", "A", "")
	c.AddProperty(NewField("PName", s32, false))
	c.AddProperty(NewCallback("VirtualFloat", floatT, true))
	c.AddProperty(NewField("Value", floatT, false))

	assert.Len(t, c.Fields(), 2)
	assert.Len(t, c.Callbacks(), 1)
	assert.Len(t, c.Serialized(), 2)

	p, ok := c.Property("Value")
	require.True(t, ok)
	assert.Equal(t, 2, p.Index)
	assert.Equal(t, hashid.Of("Value"), p.ID)
}
