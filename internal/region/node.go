package region

import (
	"strings"

	"epigen/internal/common"
	"epigen/internal/errors"
)

// Category fixes how the merge engine treats a region. It is decided by
// the region's role, never by prior content.
type Category int

const (
	// Owned regions are regenerated on every run.
	Owned Category = iota
	// Preserved regions keep their prior body verbatim.
	Preserved
	// Framed regions regenerate their child regions, but the text between
	// them is shared with the user: lines only the prior artifact has are kept.
	Framed
)

// String returns a human-readable category.
func (c Category) String() string {
	switch c {
	case Owned:
		return "owned"
	case Preserved:
		return "preserved"
	case Framed:
		return "framed"
	default:
		return common.UnknownStr
	}
}

// Part is either literal text or a child region.
type Part struct {
	Text string
	Node *Node
}

// Node is one region. The document itself is a root node with an empty path.
type Node struct {
	Path     string
	Category Category
	Parts    []Part
	// Seed is the body of a preserved region on first generation.
	Seed []Part
	// Line is the 1-based line of the BEGIN marker for parsed regions.
	Line int

	// Verbatim marker lines of a parsed region, newline included.
	rawBegin string
	rawEnd   string
}

// NewRoot creates an owned document root.
func NewRoot() *Node {
	return &Node{Category: Owned}
}

// NewFramedRoot creates a document root whose text outside regions is
// shared with the user.
func NewFramedRoot() *Node {
	return &Node{Category: Framed}
}

// NewOwned creates an owned region.
func NewOwned(path string) *Node {
	return &Node{Path: path, Category: Owned}
}

// NewPreserved creates a preserved region.
func NewPreserved(path string) *Node {
	return &Node{Path: path, Category: Preserved}
}

// IsRoot reports whether n is a document root.
func (n *Node) IsRoot() bool {
	return n.Path == ""
}

// Text appends literal text, coalescing with a trailing text part.
func (n *Node) Text(s string) *Node {
	n.Parts = appendText(n.Parts, s)
	return n
}

// SeedText appends literal text to the seed body.
func (n *Node) SeedText(s string) *Node {
	n.Seed = appendText(n.Seed, s)
	return n
}

func appendText(parts []Part, s string) []Part {
	if s == "" {
		return parts
	}

	if k := len(parts) - 1; k >= 0 && parts[k].Node == nil {
		parts[k].Text += s
		return parts
	}

	return append(parts, Part{Text: s})
}

// Add appends a child region and returns it.
func (n *Node) Add(child *Node) *Node {
	n.Parts = append(n.Parts, Part{Node: child})
	return child
}

// Children returns the direct child regions in order.
func (n *Node) Children() []*Node {
	var out []*Node

	for _, p := range n.Parts {
		if p.Node != nil {
			out = append(out, p.Node)
		}
	}

	return out
}

// Child returns the direct child with the given path, or nil.
func (n *Node) Child(path string) *Node {
	if n == nil {
		return nil
	}

	for _, p := range n.Parts {
		if p.Node != nil && p.Node.Path == path {
			return p.Node
		}
	}

	return nil
}

// Find searches the whole subtree, depth first, for path.
func (n *Node) Find(path string) *Node {
	if n == nil {
		return nil
	}

	for _, c := range n.Children() {
		if c.Path == path {
			return c
		}

		if found := c.Find(path); found != nil {
			return found
		}
	}

	return nil
}

// Body renders the region content without its own markers.
func (n *Node) Body() string {
	var sb strings.Builder

	DefaultMarkers.writeParts(&sb, n.Parts)

	return sb.String()
}

// Validate checks that no two siblings share a path, anywhere in the subtree.
func (n *Node) Validate() error {
	seen := make(map[string]bool)

	for _, c := range n.Children() {
		if seen[c.Path] {
			return errors.Wrapf(errors.ErrAmbiguousRegion, "region %q appears twice in %s", c.Path, n.describe())
		}

		seen[c.Path] = true

		if err := c.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (n *Node) describe() string {
	if n.IsRoot() {
		return "the document"
	}

	return "region " + n.Path
}

// Clone deep-copies a node, keeping verbatim markers.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := *n
	c.Parts = cloneParts(n.Parts)
	c.Seed = cloneParts(n.Seed)

	return &c
}

func cloneParts(parts []Part) []Part {
	if parts == nil {
		return nil
	}

	out := make([]Part, len(parts))
	for i, p := range parts {
		out[i] = Part{Text: p.Text, Node: p.Node.Clone()}
	}

	return out
}

// CloneParts deep-copies a part list.
func CloneParts(parts []Part) []Part {
	return cloneParts(parts)
}
