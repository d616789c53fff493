package spec

import (
	"sort"

	"epigen/internal/gen"
	"epigen/internal/model"
)

// Dependencies returns the names of the other units whose classes or enums
// u refers to through a parent or a property type, sorted. Call after Build.
func Dependencies(u *gen.Unit, reg *model.Registry) []string {
	seen := map[string]struct{}{}

	add := func(unit string) {
		if unit != "" && unit != u.Name {
			seen[unit] = struct{}{}
		}
	}

	for _, c := range u.AllClasses() {
		if parent, ok := reg.Class(c.Parent); ok {
			add(parent.Unit)
		}

		for _, p := range c.Properties {
			leaf := p.Type.Leaf()

			switch leaf.Kind {
			case model.TypeKindClass:
				if k, ok := reg.Class(leaf.Name); ok {
					add(k.Unit)
				}
			case model.TypeKindEnum:
				if e, ok := reg.Enum(leaf.Name); ok {
					add(e.Unit)
				}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for unit := range seen {
		out = append(out, unit)
	}

	sort.Strings(out)

	return out
}
