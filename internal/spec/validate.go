package spec

import (
	"fmt"
	"regexp"

	"epigen/internal/common"
	"epigen/internal/diagnostic"
	"epigen/internal/gen"
	"epigen/internal/model"
)

var ident = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// identRef finds identifiers inside an enum value literal.
var identRef = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*`)

// Validate checks a spec file structurally. Names of enum and class types
// are resolved later by Build, because they may live in other units.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("spec_is_nil", "spec file is nil", diagnostic.Location{})
		return res
	}

	v := validator{res: res, unit: f.Path}

	v.enums("", f.Enums)
	v.fileScope(f)

	seen := map[string]struct{}{}

	for i := range f.Classes {
		c := &f.Classes[i]
		if c.Name != "" {
			if _, dup := seen[c.Name]; dup {
				res.AddError("duplicate_class", fmt.Sprintf("duplicate class %q", c.Name), v.loc(c.Name, ""))
			}

			seen[c.Name] = struct{}{}
		}

		v.class("", c)
	}

	return res
}

type validator struct {
	res  *diagnostic.Diagnostics
	unit string
}

func (v *validator) loc(class, property string) diagnostic.Location {
	return diagnostic.Location{Unit: v.unit, Class: class, Property: property}
}

// fileScope checks the root region paths of the file's artifacts: top-level
// classes, file enums and the bundle include share one namespace.
// Collisions within one kind are reported as duplicate_class or duplicate_enum.
func (v *validator) fileScope(f *File) {
	taken := map[string]string{gen.IncludeRegion: "reserved region"}

	claim := func(kind, name string) {
		if name == "" {
			return
		}

		what, dup := taken[name]
		if !dup {
			taken[name] = kind
			return
		}

		if what != kind {
			v.res.AddError("duplicate_region",
				fmt.Sprintf("%s %q collides with %s %q", kind, name, what, name), v.loc(name, ""))
		}
	}

	for _, e := range f.Enums {
		claim("enum", e.Name)
	}

	for _, c := range f.Classes {
		claim("class", c.Name)
	}
}

// name reports a missing or malformed name and returns whether it is usable.
func (v *validator) name(kind, name, scope, property string) bool {
	if name == "" {
		v.res.AddError("missing_name", kind+" must have a name", v.loc(scope, property))
		return false
	}

	if !ident.MatchString(name) {
		v.res.AddError("invalid_name", fmt.Sprintf("%s name %q is not an identifier", kind, name), v.loc(scope, property))
		return false
	}

	return true
}

func (v *validator) enums(scope string, enums []EnumSpec) {
	seen := map[string]struct{}{}

	for i := range enums {
		e := &enums[i]
		if !v.name("enum", e.Name, scope, "") {
			continue
		}

		q := common.JoinScope(scope, e.Name)

		if _, dup := seen[e.Name]; dup {
			v.res.AddError("duplicate_enum", fmt.Sprintf("duplicate enum %q", q), v.loc(q, ""))
		}

		seen[e.Name] = struct{}{}

		v.enumValues(q, e)
	}
}

func (v *validator) enumValues(q string, e *EnumSpec) {
	if len(e.Values) == 0 {
		v.res.AddWarning("empty_enum", fmt.Sprintf("enum %q has no seed values", q), v.loc(q, ""))
		return
	}

	declared := map[string]struct{}{}

	for _, ev := range e.Values {
		if !v.name("enum value", ev.Name, q, "") {
			continue
		}

		if e.Mask {
			for _, ref := range identRef.FindAllString(ev.Value, -1) {
				if _, ok := declared[ref]; !ok {
					v.res.AddWarning("mask_reference",
						fmt.Sprintf("mask value %s references %s, which is not declared earlier in %s", ev.Name, ref, q),
						v.loc(q, ev.Name))
				}
			}
		}

		declared[ev.Name] = struct{}{}
	}
}

func (v *validator) class(scope string, c *ClassSpec) {
	if !v.name("class", c.Name, scope, "") {
		return
	}

	q := common.JoinScope(scope, c.Name)

	if c.Parent != "" && !qualifiedIdent.MatchString(c.Parent) {
		v.res.AddError("invalid_name", fmt.Sprintf("parent name %q is not an identifier", c.Parent), v.loc(q, ""))
	}

	if c.Size < 0 {
		v.res.AddError("invalid_size", fmt.Sprintf("size %d is negative", c.Size), v.loc(q, ""))
	}

	v.enums(q, c.Enums)

	// Enum, nested class and region names share the region path namespace.
	taken := map[string]string{}
	for _, e := range c.Enums {
		taken[e.Name] = "enum"
	}

	nested := map[string]struct{}{}

	for i := range c.Classes {
		n := &c.Classes[i]
		if n.Name != "" {
			if _, dup := nested[n.Name]; dup {
				v.res.AddError("duplicate_class", fmt.Sprintf("duplicate class %q", common.JoinScope(q, n.Name)), v.loc(q, ""))
			}

			nested[n.Name] = struct{}{}
			taken[n.Name] = "nested class"
		}

		v.class(q, n)
	}

	for _, r := range c.Regions {
		if !v.name("region", r, q, "") {
			continue
		}

		if what, dup := taken[r]; dup {
			v.res.AddError("duplicate_region",
				fmt.Sprintf("region %q collides with %s %s", r, what, common.JoinScope(q, r)), v.loc(q, ""))
			continue
		}

		taken[r] = "region"
	}

	props := map[string]struct{}{}

	for i := range c.Properties {
		p := &c.Properties[i]
		if !v.name("property", p.Name, q, "") {
			continue
		}

		if _, dup := props[p.Name]; dup {
			v.res.AddError("duplicate_property", fmt.Sprintf("duplicate property %q", p.Name), v.loc(q, p.Name))
		}

		props[p.Name] = struct{}{}

		v.property(q, p)
	}
}

func (v *validator) property(q string, p *PropertySpec) {
	loc := v.loc(q, p.Name)

	expr, err := ParseTypeExpr(p.Type)
	if err != nil {
		v.res.AddError("invalid_type", fmt.Sprintf("type %q: %v", p.Type, err), loc)
	}

	switch p.Storage {
	case "", StorageField:
		if p.Write != "" {
			v.res.AddError("invalid_write", "write applies to callback storage only", loc)
		}
	case StorageCallback:
		if p.Write != "" && p.Write != WriteCallback && p.Write != WriteNone {
			v.res.AddError("invalid_write", fmt.Sprintf("write %q is not callback or none", p.Write), loc)
		}

		opts := []struct {
			name string
			set  bool
		}{
			{"default", p.Default != ""},
			{"min", p.Min != nil},
			{"max", p.Max != nil},
			{"readonly", p.ReadOnly},
		}

		for _, opt := range opts {
			if opt.set {
				v.res.AddError("field_option_on_callback",
					fmt.Sprintf("%s only applies to field storage", opt.name), loc)
			}
		}
	default:
		v.res.AddError("invalid_storage", fmt.Sprintf("storage %q is not field or callback", p.Storage), loc)
	}

	if !p.SuppressRef.Valid() {
		v.res.AddError("invalid_suppress_ref", fmt.Sprintf("suppress_ref %q is not read, write, both or none", p.SuppressRef), loc)
	}

	if err != nil || (p.Min == nil && p.Max == nil) {
		return
	}

	if kind, ok := model.LookupPrimitive(expr.Name); !ok || !expr.IsPlain() || !kind.IsNumber() {
		v.res.AddError("bound_on_non_numeric", fmt.Sprintf("min/max need a numeric primitive, %s is not one", p.Type), loc)
	}

	if p.Min != nil && p.Min.Value == "" {
		v.res.AddError("invalid_bound", "min bound has no value", loc)
	}

	if p.Max != nil && p.Max.Value == "" {
		v.res.AddError("invalid_bound", "max bound has no value", loc)
	}
}
