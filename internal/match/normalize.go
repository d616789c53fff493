package match

import (
	"strings"
)

// typePrefix is shared by every built-in type name and carries no signal.
const typePrefix = "epi"

// NormalizeIdent normalizes an identifier for fuzzy matching:
// the scope qualifier is kept, case is folded, separators are removed and
// a leading "epi" is dropped so that epiFloat and Float compare equal.
func NormalizeIdent(s string) string {
	lower := strings.ToLower(stripSeparators(s))

	if strings.HasPrefix(lower, typePrefix) && len(lower) > len(typePrefix) {
		lower = lower[len(typePrefix):]
	}

	return lower
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// stripSeparators removes common separators from a string.
func stripSeparators(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
