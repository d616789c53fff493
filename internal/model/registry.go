package model

import (
	"sort"
	"strings"

	"epigen/internal/common"
	"epigen/internal/errors"
	"epigen/internal/hashid"
	"epigen/internal/match"
)

// DefaultRoot is the abstract root object type every class ultimately derives from.
const DefaultRoot = "Object"

// Registry indexes every class and enum of a run. It is filled while
// building, linked once, and read-only afterwards so units can be generated
// concurrently.
type Registry struct {
	root    *Class
	classes map[string]*Class
	enums   map[string]*Enum
	// order is registration order, root excluded.
	order []*Class
	// linked is parent-first order, filled by Link.
	linked []*Class
}

// NewRegistry creates a registry holding only the root class.
func NewRegistry(rootName string) *Registry {
	if rootName == "" {
		rootName = DefaultRoot
	}

	root := NewClass("", rootName, "")

	return &Registry{
		root:    root,
		classes: map[string]*Class{root.Qualified: root},
		enums:   make(map[string]*Enum),
	}
}

// Root returns the root class.
func (r *Registry) Root() *Class {
	return r.root
}

// AddClass registers c and its nested classes.
func (r *Registry) AddClass(c *Class) error {
	var err error

	c.Walk(func(k *Class) {
		if err != nil {
			return
		}

		if _, dup := r.classes[k.Qualified]; dup {
			err = errors.Newf("class %s is declared more than once", k.Qualified)
			return
		}

		r.classes[k.Qualified] = k
		r.order = append(r.order, k)
	})

	return err
}

// AddEnum registers e under its qualified name.
func (r *Registry) AddEnum(e *Enum) error {
	q := e.Qualified()
	if _, dup := r.enums[q]; dup {
		return errors.Newf("enum %s is declared more than once", q)
	}

	r.enums[q] = e

	return nil
}

// Class looks a class up by qualified name.
func (r *Registry) Class(qualified string) (*Class, bool) {
	c, ok := r.classes[qualified]
	return c, ok
}

// Enum looks an enum up by qualified name.
func (r *Registry) Enum(qualified string) (*Enum, bool) {
	e, ok := r.enums[qualified]
	return e, ok
}

// Classes returns every registered class except the root, in registration order.
func (r *Registry) Classes() []*Class {
	return r.order
}

// ClassNames returns every qualified class name, root included, sorted.
func (r *Registry) ClassNames() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// EnumNames returns every qualified enum name, sorted.
func (r *Registry) EnumNames() []string {
	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// candidates lists name as seen from scope, innermost scope first:
// for scope A::B and name X that is A::B::X, A::X, X.
func candidates(scope, name string) []string {
	segs := common.SplitScope(scope)
	out := make([]string, 0, len(segs)+1)

	for i := len(segs); i > 0; i-- {
		out = append(out, common.JoinScope(strings.Join(segs[:i], common.ScopeSep), name))
	}

	return append(out, name)
}

// ResolveClass finds a class named name as seen from inside scope.
func (r *Registry) ResolveClass(scope, name string) (*Class, bool) {
	for _, q := range candidates(scope, name) {
		if c, ok := r.classes[q]; ok {
			return c, true
		}
	}

	return nil, false
}

// ResolveEnum finds an enum named name as seen from inside scope.
func (r *Registry) ResolveEnum(scope, name string) (*Enum, bool) {
	for _, q := range candidates(scope, name) {
		if e, ok := r.enums[q]; ok {
			return e, true
		}
	}

	return nil, false
}

func enclosing(c *Class) string {
	if i := strings.LastIndex(c.Qualified, common.ScopeSep); i >= 0 {
		return c.Qualified[:i]
	}

	return ""
}

// Link resolves every parent reference to a qualified name, rejects
// unknown parents and inheritance cycles, and fixes a parent-first order.
func (r *Registry) Link() error {
	for _, c := range r.order {
		if c.Parent == "" {
			c.Parent = r.root.Qualified
			continue
		}

		parent, ok := r.ResolveClass(enclosing(c), c.Parent)
		if !ok {
			err := errors.Wrapf(errors.ErrUnresolvedParent, "class %s (%s): parent %q is not declared", c.Qualified, c.Unit, c.Parent)
			if s := match.Suggest(c.Parent, r.ClassNames(), 3); len(s) > 0 {
				err = errors.WithHintf(err, "did you mean %s?", strings.Join(s, ", "))
			}

			return err
		}

		c.Parent = parent.Qualified
	}

	index := make(map[string]int, len(r.order))
	for i, c := range r.order {
		index[c.Qualified] = i
	}

	order, stuck, err := topoSort(len(r.order), func(i int) []int {
		if p, ok := index[r.order[i].Parent]; ok {
			return []int{p}
		}

		return nil
	})
	if err != nil {
		names := make([]string, 0, len(stuck))
		for _, i := range stuck {
			names = append(names, r.order[i].Qualified)
		}

		return errors.Wrapf(errors.ErrInheritanceCycle, "classes %s", strings.Join(names, ", "))
	}

	r.linked = make([]*Class, 0, len(order))
	for _, i := range order {
		r.linked = append(r.linked, r.order[i])
	}

	return nil
}

// Ordered returns classes parent-first. Valid after Link.
func (r *Registry) Ordered() []*Class {
	return r.linked
}

// ParentOf returns the parent class, or nil for the root.
func (r *Registry) ParentOf(c *Class) *Class {
	if c == r.root || c.Parent == "" {
		return nil
	}

	return r.classes[c.Parent]
}

// Ancestors walks the parent links of c up to and including the root.
func (r *Registry) Ancestors(c *Class) []*Class {
	var out []*Class

	// Bounded by the class count so a corrupted chain cannot loop.
	for p, n := r.ParentOf(c), 0; p != nil && n < len(r.classes); p, n = r.ParentOf(p), n+1 {
		out = append(out, p)
	}

	return out
}

// Is reports whether the class named qualified is typeID or derives from it.
func (r *Registry) Is(qualified string, typeID hashid.ID) bool {
	c, ok := r.classes[qualified]
	if !ok {
		return false
	}

	if c.TypeID == typeID {
		return true
	}

	for _, a := range r.Ancestors(c) {
		if a.TypeID == typeID {
			return true
		}
	}

	return false
}
