package region

import (
	"epigen/internal/errors"
)

// Parse builds a region tree from src using the default markers.
func Parse(src string) (*Node, error) {
	return DefaultMarkers.Parse(src)
}

// Parse builds a region tree from src. Regions must nest strictly, and
// siblings must have distinct paths. Categories are left Owned; the merge
// engine assigns roles from the fresh tree.
func (m Markers) Parse(src string) (*Node, error) {
	tokens, err := m.Tokenize(src)
	if err != nil {
		return nil, err
	}

	root := NewRoot()
	stack := []*Node{root}

	for _, tok := range tokens {
		top := stack[len(stack)-1]

		switch tok.Kind {
		case TokenText:
			top.Text(tok.Raw)

		case TokenBegin:
			if top.Child(tok.Path) != nil {
				return nil, errors.Wrapf(errors.ErrAmbiguousRegion,
					"line %d: region %q appears twice in %s", tok.Line, tok.Path, top.describe())
			}

			child := &Node{Path: tok.Path, Line: tok.Line, rawBegin: tok.Raw}
			top.Add(child)
			stack = append(stack, child)

		case TokenEnd:
			if top.IsRoot() {
				return nil, errors.Mark(
					errors.Newf("line %d: %s(%s) has no matching %s", tok.Line, m.End, tok.Path, m.Begin),
					errors.ErrMalformedArtifact)
			}

			if tok.Path != top.Path {
				return nil, errors.Mark(
					errors.Newf("line %d: %s(%s) closes region %q opened on line %d",
						tok.Line, m.End, tok.Path, top.Path, top.Line),
					errors.ErrMalformedArtifact)
			}

			top.rawEnd = tok.Raw
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1]

		return nil, errors.Mark(
			errors.Newf("region %q opened on line %d is never closed", open.Path, open.Line),
			errors.ErrMalformedArtifact)
	}

	return root, nil
}
