package spec

import (
	"fmt"

	"epigen/internal/diagnostic"
	"epigen/internal/gen"
	"epigen/internal/match"
	"epigen/internal/model"
)

// BuildOptions configures Build.
type BuildOptions struct {
	// RootClass is the implicit root of every hierarchy. Empty means model.DefaultRoot.
	RootClass string
	// InputDir is the directory unit names are derived relative to.
	InputDir string
}

// Build turns validated spec files into generation units and one linked,
// read-only registry. Types may reference enums and classes of any unit.
func Build(files []*File, opts BuildOptions) ([]*gen.Unit, *model.Registry, error) {
	b := &builder{
		reg:  model.NewRegistry(opts.RootClass),
		diag: &diagnostic.Diagnostics{},
	}

	units := make([]*gen.Unit, 0, len(files))
	seen := make(map[string]string, len(files))

	for _, f := range files {
		name := f.UnitName(opts.InputDir)
		if other, dup := seen[name]; dup {
			b.diag.AddError("duplicate_unit", fmt.Sprintf("unit %s is also declared by %s", name, other), diagnostic.Location{Unit: f.Path})
			continue
		}

		seen[name] = f.Path

		units = append(units, b.unit(f, name))
	}

	for _, p := range b.pending {
		b.properties(p)
	}

	if err := b.diag.Error(); err != nil {
		return nil, nil, err
	}

	if err := b.reg.Link(); err != nil {
		return nil, nil, err
	}

	return units, b.reg, nil
}

type pendingClass struct {
	class *model.Class
	spec  *ClassSpec
	file  string
}

type builder struct {
	reg     *model.Registry
	diag    *diagnostic.Diagnostics
	pending []pendingClass
}

func (b *builder) unit(f *File, name string) *gen.Unit {
	u := &gen.Unit{Name: name, Module: f.Module, Source: f.Path}

	u.Enums = b.enums(f.Path, name, "", f.Enums)

	for i := range f.Classes {
		c := b.class(f.Path, name, "", &f.Classes[i])

		if err := b.reg.AddClass(c); err != nil {
			b.diag.AddError("duplicate_class", err.Error(), diagnostic.Location{Unit: f.Path, Class: c.Qualified})
			continue
		}

		u.Classes = append(u.Classes, c)
	}

	return u
}

func (b *builder) enums(file, unit, scope string, specs []EnumSpec) []*model.Enum {
	out := make([]*model.Enum, 0, len(specs))

	for _, es := range specs {
		e := &model.Enum{
			Scope: scope,
			Name:  es.Name,
			Base:  es.Base,
			Mask:  es.Mask,
			Unit:  unit,
		}

		for _, v := range es.Values {
			e.Values = append(e.Values, model.EnumValue{Name: v.Name, Value: v.Value})
		}

		if err := b.reg.AddEnum(e); err != nil {
			b.diag.AddError("duplicate_enum", err.Error(), diagnostic.Location{Unit: file, Class: e.Qualified()})
			continue
		}

		out = append(out, e)
	}

	return out
}

// class builds the skeleton of cs and its nested classes. Properties are
// added once every unit has registered its types.
func (b *builder) class(file, unit, scope string, cs *ClassSpec) *model.Class {
	c := model.NewClass(scope, cs.Name, cs.Parent)
	c.Size = cs.Size
	c.Unit = unit
	c.Regions = append(c.Regions, cs.Regions...)
	c.Enums = b.enums(file, unit, c.Qualified, cs.Enums)

	for i := range cs.Classes {
		c.Nested = append(c.Nested, b.class(file, unit, c.Qualified, &cs.Classes[i]))
	}

	b.pending = append(b.pending, pendingClass{class: c, spec: cs, file: file})

	return c
}

func (b *builder) properties(p pendingClass) {
	for i := range p.spec.Properties {
		ps := &p.spec.Properties[i]
		loc := diagnostic.Location{Unit: p.file, Class: p.class.Qualified, Property: ps.Name}

		t, ok := b.resolveType(p.class.Qualified, ps.Type, loc)
		if !ok {
			continue
		}

		var prop *model.Property

		if ps.IsCallback() {
			prop = model.NewCallback(ps.Name, t, ps.Write != WriteNone)
		} else {
			prop = model.NewField(ps.Name, t, ps.ReadOnly)
			prop.Default = ps.Default
			prop.Validation = model.ValidationPolicy{Min: bound(ps.Min), Max: bound(ps.Max)}
		}

		prop.Transient = ps.Transient
		prop.DisplayName = ps.DisplayName
		prop.SuppressRef = suppression(ps.SuppressRef)

		p.class.AddProperty(prop)
	}
}

// resolveType resolves a type expression as seen from inside scope:
// primitives first, then enums from the innermost scope outwards, then classes.
func (b *builder) resolveType(scope, text string, loc diagnostic.Location) (model.TypeDescriptor, bool) {
	expr, err := ParseTypeExpr(text)
	if err != nil {
		b.diag.AddError("invalid_type", fmt.Sprintf("type %q: %v", text, err), loc)
		return model.TypeDescriptor{}, false
	}

	leaf, ok := model.Primitive(expr.Name)
	if !ok {
		if e, found := b.reg.ResolveEnum(scope, expr.Name); found {
			leaf, ok = model.EnumRef(e.Qualified()), true
		} else if c, found := b.reg.ResolveClass(scope, expr.Name); found {
			leaf, ok = model.ClassRef(c.Qualified), true
		}
	}

	if !ok {
		known := append(model.PrimitiveNames(), b.reg.EnumNames()...)
		known = append(known, b.reg.ClassNames()...)

		b.diag.AddError("unknown_type", fmt.Sprintf("type %q is not a primitive, enum or class", expr.Name), loc,
			match.Suggest(expr.Name, known, 3)...)

		return model.TypeDescriptor{}, false
	}

	switch {
	case expr.IsArray():
		if expr.Container == ContainerPtrArray && leaf.Kind != model.TypeKindClass {
			b.diag.AddError("invalid_type", fmt.Sprintf("%s holds classes, %s is not one", ContainerPtrArray, expr.Name), loc)
			return model.TypeDescriptor{}, false
		}

		t, err := model.ArrayOf(leaf)
		if err != nil {
			b.diag.AddError("invalid_type", err.Error(), loc)
			return model.TypeDescriptor{}, false
		}

		return t, true
	case expr.Pointer:
		t, err := model.PointerTo(leaf)
		if err != nil {
			b.diag.AddError("invalid_type", err.Error(), loc)
			return model.TypeDescriptor{}, false
		}

		return t, true
	default:
		return leaf, true
	}
}

func bound(b *BoundSpec) *model.Bound {
	if b == nil {
		return nil
	}

	return &model.Bound{Literal: b.Value, Clamp: b.Clamp}
}

func suppression(m RefMode) model.RefSuppression {
	switch m {
	case RefRead:
		return model.SuppressRead
	case RefWrite:
		return model.SuppressWrite
	case RefBoth:
		return model.SuppressBoth
	default:
		return model.SuppressNone
	}
}
