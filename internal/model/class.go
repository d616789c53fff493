package model

import (
	"epigen/internal/common"
	"epigen/internal/hashid"
)

// Class is a disposable snapshot of one reflected class, rebuilt on every run.
type Class struct {
	// Name is the simple name; Qualified includes enclosing classes (Outer::Inner).
	Name      string
	Qualified string
	// Parent is the qualified parent name. Empty means the root object type.
	Parent string
	// Size is the declared instance size in bytes, zero when unknown.
	Size int
	// TypeID is hashid.Of(Qualified).
	TypeID hashid.ID
	// Properties are the class's own properties in declaration order.
	Properties []*Property
	// Enums declared inside the class body.
	Enums []*Enum
	// Nested classes declared inside the class body.
	Nested []*Class
	// Regions are hand-editable preserved regions placed at the end of the class body.
	Regions []string
	// Unit is the spec file the class came from.
	Unit string
}

// NewClass creates a class named name inside the given enclosing scope.
func NewClass(scope, name, parent string) *Class {
	q := common.JoinScope(scope, name)

	return &Class{
		Name:      name,
		Qualified: q,
		Parent:    parent,
		TypeID:    hashid.Of(q),
	}
}

// AddProperty appends p and assigns its declaration index.
func (c *Class) AddProperty(p *Property) {
	p.Index = len(c.Properties)
	c.Properties = append(c.Properties, p)
}

// Property finds an own property by name.
func (c *Class) Property(name string) (*Property, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}

	return nil, false
}

// Fields returns the properties that own a member field.
func (c *Class) Fields() []*Property {
	var out []*Property

	for _, p := range c.Properties {
		if p.OwnsField() {
			out = append(out, p)
		}
	}

	return out
}

// Callbacks returns the CallbackPair properties.
func (c *Class) Callbacks() []*Property {
	var out []*Property

	for _, p := range c.Properties {
		if p.Storage == CallbackPair {
			out = append(out, p)
		}
	}

	return out
}

// Serialized returns the properties visited by (de)serialization.
func (c *Class) Serialized() []*Property {
	var out []*Property

	for _, p := range c.Properties {
		if p.Serialized() {
			out = append(out, p)
		}
	}

	return out
}

// Walk visits c and then every nested class, depth first, in declaration order.
func (c *Class) Walk(fn func(*Class)) {
	fn(c)

	for _, n := range c.Nested {
		n.Walk(fn)
	}
}

// EnumValue is one entry of an enum seed. Value is an opaque literal, possibly empty.
type EnumValue struct {
	Name  string
	Value string
}

// Enum is an enumeration declared at file scope or inside a class.
// Its values only seed the preserved region on first generation.
type Enum struct {
	// Scope is the qualified name of the enclosing class, empty at file scope.
	Scope string
	Name  string
	// Base is the optional underlying type.
	Base string
	// Mask marks a flag-mask enum.
	Mask   bool
	Values []EnumValue
	Unit   string
}

// Qualified returns Scope::Name.
func (e *Enum) Qualified() string {
	return common.JoinScope(e.Scope, e.Name)
}

// TypeID is hashid.Of(Qualified()).
func (e *Enum) TypeID() hashid.ID {
	return hashid.Of(e.Qualified())
}
