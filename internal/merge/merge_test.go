package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"epigen/internal/errors"
	"epigen/internal/region"
)

func loadArchive(t *testing.T, name string) map[string]string {
	t.Helper()

	ar, err := txtar.ParseFile("testdata/" + name)
	require.NoError(t, err)

	files := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = string(f.Data)
	}

	return files
}

func reorderFresh() *region.Node {
	root := region.NewRoot().Text("head\n")
	root.Add(region.NewOwned("B")).Text("new owned B\n")

	a := root.Add(region.NewOwned("A")).Text("new owned A\n")
	a.Add(region.NewPreserved("A::EMask")).SeedText("        Seed,\n")
	a.Add(region.NewPreserved("A::ENew")).SeedText("        X,\n")

	return root
}

func TestMerge_ReorderPreserveDrop(t *testing.T) {
	files := loadArchive(t, "reorder.txtar")

	prior, err := region.Parse(files["prior"])
	require.NoError(t, err)

	out, report, err := Merge(reorderFresh(), prior)
	require.NoError(t, err)

	if diff := cmp.Diff(files["want"], region.Render(out)); diff != "" {
		t.Errorf("merged artifact mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"B", "A"}, report.Paths(Regenerated))
	assert.Equal(t, []string{"A::EMask"}, report.Paths(Kept))
	assert.Equal(t, []string{"A::ENew"}, report.Paths(Placeholder))
	assert.Equal(t, []string{"Gone"}, report.Paths(Dropped))
	assert.Empty(t, report.Paths(Seeded))
}

func TestMerge_ShadowedEnumNames(t *testing.T) {
	files := loadArchive(t, "shadowed.txtar")

	prior, err := region.Parse(files["prior"])
	require.NoError(t, err)

	fresh := region.NewRoot()
	fresh.Add(region.NewPreserved("EMask")).SeedText("    Seed = 0,\n")
	color := fresh.Add(region.NewOwned("Color")).Text("    int m_Added;\n")
	color.Add(region.NewPreserved("Color::EMask"))

	out, _, err := Merge(fresh, prior)
	require.NoError(t, err)

	if diff := cmp.Diff(files["want"], region.Render(out)); diff != "" {
		t.Errorf("merged artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_FirstRunSeedsPreservedRegions(t *testing.T) {
	out, report, err := Merge(reorderFresh(), nil)
	require.NoError(t, err)

	a := out.Child("A")
	require.NotNil(t, a)
	assert.Equal(t, "        Seed,\n", a.Child("A::EMask").Body())
	assert.Equal(t, "        X,\n", a.Child("A::ENew").Body())
	assert.Equal(t, []string{"A::EMask", "A::ENew"}, report.Paths(Seeded))
}

func TestMerge_Idempotent(t *testing.T) {
	files := loadArchive(t, "reorder.txtar")

	prior, err := region.Parse(files["prior"])
	require.NoError(t, err)

	first, _, err := Merge(reorderFresh(), prior)
	require.NoError(t, err)

	text1 := region.Render(first)

	reparsed, err := region.Parse(text1)
	require.NoError(t, err)

	second, _, err := Merge(reorderFresh(), reparsed)
	require.NoError(t, err)

	assert.Equal(t, text1, region.Render(second))
}

func TestMerge_DoesNotMutateFresh(t *testing.T) {
	fresh := reorderFresh()
	before := region.Render(fresh)

	prior, err := region.Parse("EPI_GENREGION_BEGIN(B)\nx\nEPI_GENREGION_END(B)\n")
	require.NoError(t, err)

	_, _, err = Merge(fresh, prior)
	require.NoError(t, err)
	assert.Equal(t, before, region.Render(fresh))
}

func TestMerge_AmbiguousFreshTree(t *testing.T) {
	fresh := region.NewRoot()
	fresh.Add(region.NewOwned("A"))
	fresh.Add(region.NewOwned("A"))

	_, _, err := Merge(fresh, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAmbiguousRegion))
}

func TestArtifact_Lifecycle(t *testing.T) {
	a := NewArtifact("codegen/A.h", region.DefaultMarkers)

	_, err := a.Merge(region.NewRoot())
	require.Error(t, err, "merge before load")

	require.NoError(t, a.Load("", false))
	assert.Equal(t, NotFound, a.State())

	out, err := a.Merge(reorderFresh())
	require.NoError(t, err)
	assert.Equal(t, Merged, a.State())
	assert.Equal(t, out, a.Output())
	assert.Contains(t, out, "        Seed,\n")
	assert.Equal(t, "codegen/A.h (merged)", a.String())

	_, err = a.Merge(reorderFresh())
	assert.Error(t, err)
}

func TestArtifact_ParsedState(t *testing.T) {
	a := NewArtifact("A.h", region.DefaultMarkers)
	require.NoError(t, a.Load("EPI_GENREGION_BEGIN(A)\nEPI_GENREGION_BEGIN(A::EMask)\n  V = 3,\nEPI_GENREGION_END(A::EMask)\nEPI_GENREGION_END(A)\n", true))
	assert.Equal(t, Parsed, a.State())

	out, err := a.Merge(reorderFresh())
	require.NoError(t, err)
	assert.Contains(t, out, "EPI_GENREGION_BEGIN(A::EMask)\n  V = 3,\nEPI_GENREGION_END(A::EMask)\n")
	assert.Contains(t, out, "EPI_GENREGION_BEGIN(A::ENew)\nEPI_GENREGION_END(A::ENew)\n")
}

func TestArtifact_MalformedPrior(t *testing.T) {
	a := NewArtifact("codegen/A.hxx", region.DefaultMarkers)

	err := a.Load("EPI_GENREGION_BEGIN(A)\n", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedArtifact))
	assert.Contains(t, err.Error(), "codegen/A.hxx")
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestMerge_FramedRootKeepsTextBetweenRegions(t *testing.T) {
	fresh := region.NewFramedRoot().Text("#pragma once\n\n")
	fresh.Add(region.NewOwned("A")).Text("new A\n")
	fresh.Text("};\nclass B : public A\n")

	prior, err := region.Parse("#pragma once\n#include \"user/extra.h\"\n\n" +
		"EPI_GENREGION_BEGIN(A)\nold A\nEPI_GENREGION_END(A)\n" +
		"void UserOverload(int);\n};\nclass B : public Object\n")
	require.NoError(t, err)

	out, report, err := Merge(fresh, prior)
	require.NoError(t, err)

	want := "#pragma once\n#include \"user/extra.h\"\n\n" +
		"EPI_GENREGION_BEGIN(A)\nnew A\nEPI_GENREGION_END(A)\n" +
		"void UserOverload(int);\n};\nclass B : public A\n"

	if diff := cmp.Diff(want, region.Render(out)); diff != "" {
		t.Errorf("merged artifact mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, report.Paths(Discarded))

	again, _, err := Merge(fresh, out)
	require.NoError(t, err)
	assert.Equal(t, want, region.Render(again))
}

func TestMerge_FramedRootNewRegion(t *testing.T) {
	fresh := region.NewFramedRoot().Text("top\n")
	fresh.Add(region.NewOwned("A")).Text("a\n")
	fresh.Text("}\nmid B\n")
	fresh.Add(region.NewOwned("B")).Text("b\n")
	fresh.Text("}\nend\n")

	prior, err := region.Parse("top\nEPI_GENREGION_BEGIN(A)\na\nEPI_GENREGION_END(A)\nuser line\n}\nend\n")
	require.NoError(t, err)

	out, report, err := Merge(fresh, prior)
	require.NoError(t, err)

	want := "top\nEPI_GENREGION_BEGIN(A)\na\nEPI_GENREGION_END(A)\nuser line\n}\nmid B\n" +
		"EPI_GENREGION_BEGIN(B)\nb\nEPI_GENREGION_END(B)\n}\nend\n"

	if diff := cmp.Diff(want, region.Render(out)); diff != "" {
		t.Errorf("merged artifact mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, report.Paths(Discarded))
}

func TestMerge_FramedRootReportsDiscardedText(t *testing.T) {
	fresh := region.NewFramedRoot().Text("top\n")
	fresh.Add(region.NewOwned("A")).Text("a\n")
	fresh.Text("}\nend\n")

	prior, err := region.Parse("top\nEPI_GENREGION_BEGIN(A)\na\nEPI_GENREGION_END(A)\n}\n" +
		"EPI_GENREGION_BEGIN(Gone)\ng\nEPI_GENREGION_END(Gone)\ncustom\nend\n")
	require.NoError(t, err)

	out, report, err := Merge(fresh, prior)
	require.NoError(t, err)

	assert.Equal(t, "top\nEPI_GENREGION_BEGIN(A)\na\nEPI_GENREGION_END(A)\n}\nend\n", region.Render(out))
	assert.Equal(t, []string{"Gone"}, report.Paths(Dropped))
	assert.Equal(t, []Decision{{Path: "Gone", Action: Discarded, Bytes: len("custom\n")}}, decisionsOf(report, Discarded))
}

func TestMerge_OwnedRootDiscardsTextBetweenRegions(t *testing.T) {
	fresh := region.NewRoot().Text("top\n")
	fresh.Add(region.NewOwned("A")).Text("a\n")

	prior, err := region.Parse("top\nextra\nEPI_GENREGION_BEGIN(A)\na\nEPI_GENREGION_END(A)\n")
	require.NoError(t, err)

	out, _, err := Merge(fresh, prior)
	require.NoError(t, err)
	assert.Equal(t, "top\nEPI_GENREGION_BEGIN(A)\na\nEPI_GENREGION_END(A)\n", region.Render(out))
}

func decisionsOf(r Report, a Action) []Decision {
	var out []Decision

	for _, d := range r.Decisions {
		if d.Action == a {
			out = append(out, d)
		}
	}

	return out
}
