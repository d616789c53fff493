package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epigen/internal/errors"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
		ok   bool
	}{
		{"A.epi.yaml", FormatYAML, true},
		{"dir/A.epi.yml", FormatYAML, true},
		{"A.EPI.TOML", FormatTOML, true},
		{"A.epi.hcl", FormatHCL, true},
		{"A.epi.json", FormatJSON, true},
		{"A.yaml", 0, false},
		{"A.epi", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectFormat(tt.name)
			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLoadFile_AllFormatsAgree(t *testing.T) {
	want, err := LoadFile(filepath.Join("testdata", "codegen", "A.epi.yaml"))
	require.NoError(t, err)
	require.Len(t, want.Classes, 2)
	require.Len(t, want.Classes[0].Properties, 11)

	for _, ext := range []string{".epi.toml", ".epi.hcl", ".epi.json"} {
		t.Run(ext, func(t *testing.T) {
			got, err := LoadFile(filepath.Join("testdata", "codegen", "A"+ext))
			require.NoError(t, err)

			got.Path = want.Path

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s differs from YAML (-yaml +%s):\n%s", ext, ext, diff)
			}
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte(`
classes:
  - name: C
    properties:
      - name: F
        type: epiS32
      - name: V
        type: epiFloat
        storage: callback
`), FormatYAML, "C.epi.yaml")
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, StorageField, f.Classes[0].Properties[0].Storage)
	assert.Empty(t, f.Classes[0].Properties[0].Write)
	assert.Equal(t, WriteCallback, f.Classes[0].Properties[1].Write)
}

func TestParse_YAMLShorthands(t *testing.T) {
	f, err := Parse([]byte(`
enums:
  - name: EMask
    mask: true
    values:
      - Value0: "1 << 0"
      - Value1
      - {name: All, value: Value0 | Value1}
classes:
  - name: C
    properties:
      - name: Clamped
        type: epiFloat
        min: 0.0
        max: {value: 1.0f, clamp: true}
      - name: Both
        type: epiString
        storage: callback
        suppress_ref: true
      - name: WriteOnly
        type: epiString
        storage: callback
        suppress_ref: write
`), FormatYAML, "C.epi.yaml")
	require.NoError(t, err)

	assert.Equal(t, []EnumValueSpec{
		{Name: "Value0", Value: "1 << 0"},
		{Name: "Value1"},
		{Name: "All", Value: "Value0 | Value1"},
	}, f.Enums[0].Values)

	props := f.Classes[0].Properties
	assert.Equal(t, &BoundSpec{Value: "0.0"}, props[0].Min)
	assert.Equal(t, &BoundSpec{Value: "1.0f", Clamp: true}, props[0].Max)
	assert.Equal(t, RefBoth, props[1].SuppressRef)
	assert.Equal(t, RefWrite, props[2].SuppressRef)
}

func TestParse_TOMLAndJSONShorthands(t *testing.T) {
	toml := `
[[enums]]
name = "E"
values = ["A", { B = 2 }, { name = "C", value = "A | B" }]
`
	json := `{"enums": [{"name": "E", "values": ["A", {"B": 2}, {"name": "C", "value": "A | B"}]}]}`

	want := []EnumValueSpec{{Name: "A"}, {Name: "B", Value: "2"}, {Name: "C", Value: "A | B"}}

	for _, tt := range []struct {
		format Format
		src    string
	}{
		{FormatTOML, toml},
		{FormatJSON, json},
	} {
		t.Run(tt.format.String(), func(t *testing.T) {
			f, err := Parse([]byte(tt.src), tt.format, "E.epi."+tt.format.String())
			require.NoError(t, err)
			require.Len(t, f.Enums, 1)
			assert.Equal(t, want, f.Enums[0].Values)
		})
	}
}

func TestParse_UnknownKeysRejected(t *testing.T) {
	tests := []struct {
		format Format
		src    string
	}{
		{FormatYAML, "classes:\n  - name: C\n    propertys: []\n"},
		{FormatTOML, "[[classes]]\nname = \"C\"\nsizee = 4\n"},
		{FormatJSON, `{"classes": [{"name": "C", "sizee": 4}]}`},
		{FormatHCL, "class \"C\" {\n  sizee = 4\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.format, "C.epi."+tt.format.String())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidSpec))
		})
	}
}

func TestParse_BadShorthand(t *testing.T) {
	_, err := Parse([]byte(`
classes:
  - name: C
    properties:
      - name: P
        type: epiS32
        suppress_ref: sometimes
`), FormatYAML, "C.epi.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sometimes")
}

func TestLoadFile_NotASpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classes: []\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidSpec))
}

func TestFile_UnitName(t *testing.T) {
	dir := filepath.Join("in")

	f := &File{Path: filepath.Join(dir, "codegen", "A.epi.yaml")}
	assert.Equal(t, "codegen/A", f.UnitName(dir))

	f.Unit = "other/./B"
	assert.Equal(t, "other/B", f.UnitName(dir))
}

func TestMarshal_RoundTripsShorthands(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "codegen", "A.epi.yaml"))
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)

	back, err := Parse(data, FormatYAML, f.Path)
	require.NoError(t, err)

	back.Path = f.Path
	assert.Equal(t, f, back)
}
