package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outputs() map[string][]byte {
	return map[string][]byte{
		"codegen/A.h":   []byte("h"),
		"codegen/A.hxx": []byte("hxx"),
		"codegen/A.cxx": []byte("cxx"),
	}
}

func TestCache_FreshAfterRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)

	c, err := Open(path, "cfg")
	require.NoError(t, err)

	input := Sum([]byte("spec"))

	assert.False(t, c.Fresh("codegen/A", input, outputs()), "nothing recorded yet")

	c.Record("codegen/A", input, outputs())
	assert.True(t, c.Fresh("codegen/A", input, outputs()))

	t.Run("input changed", func(t *testing.T) {
		assert.False(t, c.Fresh("codegen/A", Sum([]byte("spec2")), outputs()))
	})

	t.Run("artifact edited", func(t *testing.T) {
		out := outputs()
		out["codegen/A.cxx"] = []byte("edited")
		assert.False(t, c.Fresh("codegen/A", input, out))
	})

	t.Run("artifact deleted", func(t *testing.T) {
		out := outputs()
		out["codegen/A.hxx"] = nil
		assert.False(t, c.Fresh("codegen/A", input, out))
	})
}

func TestCache_SaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build", DefaultName)

	c, err := Open(path, "cfg")
	require.NoError(t, err)

	input := Sum([]byte("spec"))
	c.Record("codegen/A", input, outputs())
	c.Record("codegen/B", input, outputs())
	require.NoError(t, c.Save())

	again, err := Open(path, "cfg")
	require.NoError(t, err)
	assert.Equal(t, []string{"codegen/A", "codegen/B"}, again.Units())
	assert.True(t, again.Fresh("codegen/A", input, outputs()))

	other, err := Open(path, "other-cfg")
	require.NoError(t, err)
	assert.Empty(t, other.Units(), "a different fingerprint invalidates everything")
}

func TestCache_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	require.NoError(t, os.WriteFile(path, []byte("not cbor at all"), 0o644))

	c, err := Open(path, "cfg")
	require.NoError(t, err)
	assert.Empty(t, c.Units())
}

func TestCache_Retain(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), DefaultName), "cfg")
	require.NoError(t, err)

	c.Record("a", "x", nil)
	c.Record("b", "x", nil)
	c.Retain([]string{"b", "c"})

	assert.Equal(t, []string{"b"}, c.Units())
}

func TestCache_NilIsDisabled(t *testing.T) {
	var c *Cache

	c.Record("a", "x", outputs())
	assert.False(t, c.Fresh("a", "x", outputs()))
	assert.Nil(t, c.Units())
	assert.NoError(t, c.Save())
}

func TestSum_LengthPrefixed(t *testing.T) {
	assert.NotEqual(t, Sum([]byte("ab"), []byte("c")), Sum([]byte("a"), []byte("bc")))
	assert.Equal(t, Sum([]byte("a")), Sum([]byte("a")))
	assert.Len(t, Sum(), 64)
}

func TestFingerprint(t *testing.T) {
	type settings struct {
		PadIDs bool
		Root   string
	}

	a, err := Fingerprint(settings{Root: "Object"})
	require.NoError(t, err)

	b, err := Fingerprint(settings{Root: "Object"})
	require.NoError(t, err)

	c, err := Fingerprint(settings{Root: "Object", PadIDs: true})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
