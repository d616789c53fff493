package common

import "strings"

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

// ScopeSep separates scopes in qualified class, enum and region names.
const ScopeSep = "::"

// JoinScope joins non-empty scope segments with ScopeSep.
func JoinScope(segments ...string) string {
	parts := make([]string, 0, len(segments))

	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, ScopeSep)
}

// SplitScope splits a qualified name into its segments. The empty name has none.
func SplitScope(qualified string) []string {
	if qualified == "" {
		return nil
	}

	return strings.Split(qualified, ScopeSep)
}

// Identifier flattens a qualified name into a single C identifier (A::B -> A_B).
func Identifier(qualified string) string {
	return strings.ReplaceAll(qualified, ScopeSep, "_")
}
