package region

import (
	"strings"
)

// Render linearizes a tree with the default markers.
func Render(root *Node) string {
	return DefaultMarkers.Render(root)
}

// Render linearizes a tree. Regions built in memory get canonical
// column-0 markers; regions that came from Parse keep the marker lines they were parsed from.
func (m Markers) Render(root *Node) string {
	var sb strings.Builder

	m.writeParts(&sb, root.Parts)

	return sb.String()
}

// BeginLine is the canonical BEGIN marker line for path.
func (m Markers) BeginLine(path string) string {
	return m.Begin + "(" + path + ")\n"
}

// EndLine is the canonical END marker line for path.
func (m Markers) EndLine(path string) string {
	return m.End + "(" + path + ")\n"
}

func (m Markers) writeParts(sb *strings.Builder, parts []Part) {
	for _, p := range parts {
		if p.Node == nil {
			sb.WriteString(p.Text)
			continue
		}

		m.writeRegion(sb, p.Node)
	}
}

func (m Markers) writeRegion(sb *strings.Builder, n *Node) {
	if n.rawBegin != "" {
		sb.WriteString(n.rawBegin)
	} else {
		sb.WriteString(m.BeginLine(n.Path))
	}

	m.writeParts(sb, n.Parts)

	if n.rawEnd != "" {
		sb.WriteString(n.rawEnd)
	} else {
		sb.WriteString(m.EndLine(n.Path))
	}
}
