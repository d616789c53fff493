package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epigen/internal/model"
)

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultName)
	require.NoError(t, os.WriteFile(p, []byte(`{"modules": ["engine/core/", "./engine/render"]}`), 0o644))

	m, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"engine/core", "engine/render"}, m.Modules)
}

func TestLoad_UnknownKey(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultName)
	require.NoError(t, os.WriteFile(p, []byte(`{"modulez": []}`), 0o644))

	_, err := Load(p)
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultName)
	want := &Manifest{Modules: []string{"engine", "game"}}

	require.NoError(t, Save(want, p))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIncludePrefix(t *testing.T) {
	m := &Manifest{Modules: []string{"engine", "engine/core", "game"}}

	tests := []struct {
		rel  string
		want string
	}{
		{"engine/core/math/Vec.epi.yaml", "core/math"},
		{"engine/core/Object.epi.yaml", "core"},
		{"engine/Render.epi.yaml", "engine"},
		{"game/ui/Button.epi.hcl", "game/ui"},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			got, err := m.IncludePrefix(tt.rel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := m.IncludePrefix("tools/X.epi.yaml")
	require.Error(t, err)
}

func TestIncludePrefix_RootModule(t *testing.T) {
	m := &Manifest{Modules: []string{"."}}

	got, err := m.IncludePrefix("A.epi.yaml")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = m.IncludePrefix("codegen/A.epi.yaml")
	require.NoError(t, err)
	assert.Equal(t, "codegen", got)
}

func TestInspect(t *testing.T) {
	reg := model.NewRegistry("")

	s32, ok := model.Primitive("epiS32")
	require.True(t, ok)

	c := model.NewClass("", "A", "")
	c.Unit = "codegen/A"
	p := model.NewField("PName", s32, true)
	p.DisplayName = "Name"
	c.AddProperty(p)

	gauge := model.NewField("Gauge", s32, false)
	gauge.Validation.Min = &model.Bound{Literal: "0", Clamp: true}
	c.AddProperty(gauge)

	require.NoError(t, reg.AddClass(c))
	require.NoError(t, reg.AddEnum(&model.Enum{Name: "EMask", Mask: true, Values: []model.EnumValue{{Name: "V0"}}}))
	require.NoError(t, reg.Link())

	report := Inspect(reg, false)

	require.Len(t, report.Classes, 1)
	cr := report.Classes[0]
	assert.Equal(t, "A", cr.Name)
	assert.Equal(t, "Object", cr.Parent)
	require.Len(t, cr.Properties, 2)
	assert.Equal(t, "Name", cr.Properties[0].Label)
	assert.Equal(t, "0", cr.Properties[0].Default)
	assert.True(t, cr.Properties[0].Serialized)
	assert.Empty(t, cr.Properties[0].Validation)
	assert.Equal(t, "clamp_min", cr.Properties[1].Validation)

	require.Len(t, report.Enums, 1)
	assert.Equal(t, []string{"V0"}, report.Enums[0].Values)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, report))

	var back InspectReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, report, back)
}
