package spec

import (
	"regexp"
	"strings"

	"epigen/internal/errors"
	"epigen/internal/model"
)

// Array container templates.
const (
	ContainerArray    = "epiArray"
	ContainerPtrArray = "epiPtrArray"
)

var qualifiedIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(::[A-Za-z_][A-Za-z0-9_]*)*$`)

// TypeExpr is a parsed, unresolved type expression.
type TypeExpr struct {
	// Container is ContainerArray or ContainerPtrArray for arrays.
	Container string
	Pointer   bool
	// Name is the leaf type name, possibly qualified.
	Name string
}

// IsArray reports whether the expression is an array.
func (t TypeExpr) IsArray() bool {
	return t.Container != ""
}

// IsPlain reports whether the expression is a bare name.
func (t TypeExpr) IsPlain() bool {
	return !t.IsArray() && !t.Pointer
}

// ParseTypeExpr parses T, T*, epiArray<T> or epiPtrArray<T>. Composites
// of composites are rejected with model.ErrNestedComposite.
func ParseTypeExpr(s string) (TypeExpr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeExpr{}, errors.New("empty type")
	}

	var expr TypeExpr

	if strings.HasSuffix(s, "*") {
		expr.Pointer = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "*"))

		if strings.ContainsAny(s, "*<>") {
			return TypeExpr{}, errors.Wrapf(model.ErrNestedComposite, "pointer to %s", s)
		}
	}

	if open := strings.IndexByte(s, '<'); open >= 0 {
		if !strings.HasSuffix(s, ">") {
			return TypeExpr{}, errors.Newf("unterminated template in %q", s)
		}

		container := strings.TrimSpace(s[:open])
		if container != ContainerArray && container != ContainerPtrArray {
			return TypeExpr{}, errors.Newf("unknown container %q (expected %s or %s)", container, ContainerArray, ContainerPtrArray)
		}

		inner := strings.TrimSpace(s[open+1 : len(s)-1])
		if strings.ContainsAny(inner, "*<>") {
			return TypeExpr{}, errors.Wrapf(model.ErrNestedComposite, "array of %s", inner)
		}

		expr.Container = container
		s = inner
	}

	if !qualifiedIdent.MatchString(s) {
		return TypeExpr{}, errors.Newf("invalid type name %q", s)
	}

	expr.Name = s

	return expr, nil
}
