package spec

import (
	"maps"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"epigen/internal/errors"
	"epigen/internal/gen"
	"epigen/internal/model"
)

func buildSources(t *testing.T, srcs map[string]string) ([]*gen.Unit, *model.Registry, error) {
	t.Helper()

	var files []*File

	for _, name := range slices.Sorted(maps.Keys(srcs)) {
		f := mustParse(t, srcs[name])
		f.Path = filepath.Join("in", name+".epi.yaml")
		require.True(t, Validate(f).IsValid())

		files = append(files, f)
	}

	return Build(files, BuildOptions{InputDir: "in"})
}

func TestBuild_ClassA_GeneratesGolden(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "codegen", "A.epi.yaml"))
	require.NoError(t, err)

	units, reg, err := Build([]*File{f}, BuildOptions{InputDir: "testdata"})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "codegen/A", units[0].Name)
	assert.Len(t, reg.Ordered(), 2)

	ar, err := txtar.ParseFile(filepath.Join("..", "gen", "testdata", "class_a.txtar"))
	require.NoError(t, err)

	golden := make(map[string]string, len(ar.Files))
	for _, af := range ar.Files {
		golden[af.Name] = string(af.Data)
	}

	g := gen.NewGenerator(gen.DefaultGeneratorConfig(), gen.NewMemStore())

	res, err := g.GenerateUnit(units[0])
	require.NoError(t, err)

	for _, file := range res.Files {
		want := golden["A"+file.Kind.Ext()]
		if diff := cmp.Diff(want, string(file.Content)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", file.Kind.Ext(), diff)
		}
	}
}

func TestBuild_AllFormatsBuildTheSameModel(t *testing.T) {
	build := func(ext string) []*gen.Unit {
		f, err := LoadFile(filepath.Join("testdata", "codegen", "A"+ext))
		require.NoError(t, err)

		units, _, err := Build([]*File{f}, BuildOptions{InputDir: "testdata"})
		require.NoError(t, err)

		return units
	}

	want := build(".epi.yaml")

	for _, ext := range []string{".epi.toml", ".epi.hcl", ".epi.json"} {
		t.Run(ext, func(t *testing.T) {
			got := build(ext)
			if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(gen.Unit{}, "Source")); diff != "" {
				t.Errorf("model differs (-yaml +%s):\n%s", ext, diff)
			}
		})
	}
}

func TestBuild_PropertyOptions(t *testing.T) {
	units, _, err := buildSources(t, map[string]string{"C": `
classes:
  - name: C
    properties:
      - name: Ro
        type: epiS32
        readonly: true
      - name: Mat
        type: epiMat4x4f
        storage: callback
        suppress_ref: both
        display_name: Matrix
      - name: Gauge
        type: epiFloat
        min: {value: "0.0f", clamp: true}
`})
	require.NoError(t, err)

	c := units[0].Classes[0]

	ro, ok := c.Property("Ro")
	require.True(t, ok)
	assert.True(t, ro.ReadOnly())
	assert.Equal(t, model.AccessNone, ro.Write)

	mat, ok := c.Property("Mat")
	require.True(t, ok)
	assert.Equal(t, model.CallbackPair, mat.Storage)
	assert.Equal(t, model.SuppressBoth, mat.SuppressRef)
	assert.Equal(t, "Matrix", mat.Label())
	assert.Equal(t, 1, mat.Index)

	gauge, ok := c.Property("Gauge")
	require.True(t, ok)
	assert.Equal(t, model.PatternClampMin, gauge.Validation.Pattern())
	assert.Equal(t, "0.0f", gauge.Validation.Min.Literal)
}

func TestBuild_ResolvesTypesAcrossScopesAndUnits(t *testing.T) {
	units, reg, err := buildSources(t, map[string]string{
		"base": `
enums:
  - name: EColor
    values: [Red]
classes:
  - name: Shape
`,
		"scene": `
classes:
  - name: Scene
    parent: Shape
    enums:
      - name: EColor
        values: [Night]
    classes:
      - name: Node
        properties:
          - {name: Tint, type: EColor}
          - {name: Owner, type: Scene*}
    properties:
      - {name: Color, type: EColor}
      - {name: Shapes, type: "epiArray<Shape>"}
      - {name: Nodes, type: "epiPtrArray<Node>"}
`,
	})
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "scene", units[1].Name)

	scene, ok := reg.Class("Scene")
	require.True(t, ok)
	assert.Equal(t, "Shape", scene.Parent)

	color, _ := scene.Property("Color")
	assert.Equal(t, model.EnumRef("Scene::EColor"), color.Type)

	shapes, _ := scene.Property("Shapes")
	assert.Equal(t, "epiPtrArray<Shape>", shapes.Type.String())

	nodes, _ := scene.Property("Nodes")
	assert.Equal(t, "epiPtrArray<Scene::Node>", nodes.Type.String())

	node, ok := reg.Class("Scene::Node")
	require.True(t, ok)

	tint, _ := node.Property("Tint")
	assert.Equal(t, model.EnumRef("Scene::EColor"), tint.Type, "innermost enum scope wins")

	owner, _ := node.Property("Owner")
	assert.True(t, owner.Type.IsPointer())
	assert.Equal(t, "Scene*", owner.Type.String())

	base, ok := reg.Enum("EColor")
	require.True(t, ok)
	assert.Equal(t, "base", base.Unit)
}

func TestBuild_UnknownTypeSuggests(t *testing.T) {
	_, _, err := buildSources(t, map[string]string{"C": `
classes:
  - name: C
    properties:
      - {name: P, type: epiFlaot}
`})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidSpec))
	assert.Contains(t, err.Error(), "unknown_type")
	assert.Contains(t, errors.FlattenHints(err), "epiFloat")
}

func TestBuild_PtrArrayOfPrimitiveRejected(t *testing.T) {
	_, _, err := buildSources(t, map[string]string{"C": `
classes:
  - name: C
    properties:
      - {name: P, type: "epiPtrArray<epiS32>"}
`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_type")
}

func TestBuild_UnresolvedParent(t *testing.T) {
	_, _, err := buildSources(t, map[string]string{"C": `
classes:
  - name: Shape
  - name: C
    parent: Shap
`})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnresolvedParent))
	assert.Contains(t, errors.FlattenHints(err), "Shape")
}

func TestBuild_InheritanceCycle(t *testing.T) {
	_, _, err := buildSources(t, map[string]string{"C": `
classes:
  - {name: A, parent: B}
  - {name: B, parent: A}
`})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInheritanceCycle))
}

func TestBuild_DuplicatesAcrossUnits(t *testing.T) {
	_, _, err := buildSources(t, map[string]string{
		"a": "classes: [{name: Shape}]\n",
		"b": "classes: [{name: Shape}]\n",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate_class")

	f1 := mustParse(t, "unit: same\nclasses: [{name: A}]\n")
	f2 := mustParse(t, "unit: same\nclasses: [{name: B}]\n")

	_, _, err = Build([]*File{f1, f2}, BuildOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate_unit")
}

func TestBuild_CustomRoot(t *testing.T) {
	units, reg, err := Build([]*File{mustParse(t, "unit: u\nclasses: [{name: A}]\n")}, BuildOptions{RootClass: "Entity"})
	require.NoError(t, err)

	assert.Equal(t, "Entity", reg.Root().Name)
	assert.Equal(t, "Entity", units[0].Classes[0].Parent)
}

func TestDependencies(t *testing.T) {
	units, reg, err := buildSources(t, map[string]string{
		"a": "enums: [{name: EKind, values: [K]}]\nclasses: [{name: Base}]\n",
		"b": "classes: [{name: Mid, parent: Base}]\n",
		"c": `
classes:
  - name: Leaf
    parent: Mid
    properties:
      - {name: Kind, type: EKind}
      - {name: Self, type: Leaf*}
`,
	})
	require.NoError(t, err)
	require.Len(t, units, 3)

	assert.Empty(t, Dependencies(units[0], reg))
	assert.Equal(t, []string{"a"}, Dependencies(units[1], reg))
	assert.Equal(t, []string{"a", "b"}, Dependencies(units[2], reg))
}
