package gen

import (
	"bytes"
	"strings"
	"text/template"

	"epigen/internal/common"
	"epigen/internal/errors"
	"epigen/internal/model"
	"epigen/internal/region"
)

// IncludeRegion holds the bundle include of a declaration. Its path is
// reserved at file scope.
const IncludeRegion = "include"

// indentUnit is one level of C++ indentation.
const indentUnit = "    "

// Emit builds the fresh region tree of one artifact.
func (g *Generator) Emit(u *Unit, kind ArtifactKind) (*region.Node, error) {
	switch kind {
	case ArtifactDeclaration:
		return g.EmitDeclaration(u)
	case ArtifactBundle:
		return g.EmitBundle(u)
	case ArtifactDefinition:
		return g.EmitDefinition(u)
	default:
		return nil, errors.Newf("unknown artifact kind %s", kind)
	}
}

// EmitDeclaration builds the .h tree: file-scoped enums, then one class
// body per top-level class with enums and nested classes inline. Text the
// user adds between top-level regions survives regeneration.
func (g *Generator) EmitDeclaration(u *Unit) (*region.Node, error) {
	root := region.NewFramedRoot()

	root.Text("#pragma once\n\n")
	root.Add(region.NewOwned(IncludeRegion)).Text("#include \"" + u.IncludePath() + "\"\n")
	root.Text("\n" + g.config.NamespaceBegin + "\n\n")

	for _, e := range u.Enums {
		root.Text(enumHead(e, ""))
		root.Add(enumRegion(e, indentUnit))
		root.Text("};\n\n")
	}

	for _, c := range u.Classes {
		body, err := g.classRegion(c)
		if err != nil {
			return nil, err
		}

		root.Text("class " + c.Name + " : public " + c.Parent + "\n{\n")
		root.Add(body)
		root.Text("};\n\n")
	}

	root.Text(g.config.NamespaceEnd + "\n")

	return root, nil
}

func (g *Generator) classRegion(c *model.Class) (*region.Node, error) {
	n := region.NewOwned(c.Qualified)
	n.Text("\n" + macroName(c) + "()\n\n")

	for _, e := range c.Enums {
		n.Text("public:\n" + enumHead(e, indentUnit))
		n.Add(enumRegion(e, indentUnit+indentUnit))
		n.Text(indentUnit + "};\n\n")
	}

	for _, k := range c.Nested {
		body, err := g.classRegion(k)
		if err != nil {
			return nil, err
		}

		indentNode(body, indentUnit)

		n.Text("public:\n" + indentUnit + "class " + k.Name + " : public " + k.Parent + "\n" + indentUnit + "{\n")
		n.Add(body)
		n.Text(indentUnit + "};\n\n")
	}

	tail, err := execute(classTailTemplate, g.buildClassData(c))
	if err != nil {
		return nil, errors.Wrapf(err, "class %s", c.Qualified)
	}

	n.Text(tail)

	for _, r := range c.Regions {
		n.Add(region.NewPreserved(common.JoinScope(c.Qualified, r)))
		n.Text("\n")
	}

	return n, nil
}

func enumHead(e *model.Enum, indent string) string {
	head := indent + "enum " + e.Name
	if e.Base != "" {
		head += " : " + e.Base
	}

	return head + "\n" + indent + "{\n"
}

// enumRegion is the preserved value list of e, seeded from its declared values.
func enumRegion(e *model.Enum, indent string) *region.Node {
	n := region.NewPreserved(e.Qualified())

	for i, v := range e.Values {
		line := indent + v.Name
		if v.Value != "" {
			line += " = " + v.Value
		}

		if i < len(e.Values)-1 {
			line += ","
		}

		n.SeedText(line + "\n")
	}

	return n
}

// EmitBundle builds the .hxx tree: one macro per class, nested classes flattened.
func (g *Generator) EmitBundle(u *Unit) (*region.Node, error) {
	root := region.NewRoot()
	root.Text(banner + "\n")

	for i, c := range u.AllClasses() {
		body, err := execute(bundleTemplate, g.buildClassData(c))
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", c.Qualified)
		}

		if i > 0 {
			root.Text("\n")
		}

		root.Add(region.NewOwned(c.Qualified)).Text(macroize(body) + "\n")
	}

	return root, nil
}

// macroize turns every line into a macro continuation line.
func macroize(body string) string {
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l + " \\\n")
	}

	return sb.String()
}

// EmitDefinition builds the .cxx tree: serialization and metadata per class.
func (g *Generator) EmitDefinition(u *Unit) (*region.Node, error) {
	root := region.NewRoot()
	root.Text(banner + "\n" + g.config.NamespaceBegin + "\n\n")

	for _, c := range u.AllClasses() {
		body, err := execute(definitionTemplate, g.buildClassData(c))
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", c.Qualified)
		}

		root.Add(region.NewOwned(c.Qualified)).Text(body)
		root.Text("\n")
	}

	root.Text(g.config.NamespaceEnd + "\n")

	return root, nil
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "executing template %s", t.Name())
	}

	return buf.String(), nil
}

// indentNode prefixes every non-empty generated line of the subtree,
// seeds included. Marker lines are rendered separately and stay at column 0.
func indentNode(n *region.Node, prefix string) {
	for i := range n.Parts {
		if n.Parts[i].Node != nil {
			indentNode(n.Parts[i].Node, prefix)
			continue
		}

		n.Parts[i].Text = indentLines(n.Parts[i].Text, prefix)
	}

	for i := range n.Seed {
		n.Seed[i].Text = indentLines(n.Seed[i].Text, prefix)
	}
}

func indentLines(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")

	var sb strings.Builder
	for _, l := range lines {
		if l != "" && l != "\n" {
			sb.WriteString(prefix)
		}

		sb.WriteString(l)
	}

	return sb.String()
}
