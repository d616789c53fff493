package model

import (
	"epigen/internal/common"
	"epigen/internal/errors"
)

// TypeKind discriminates TypeDescriptor variants.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindPrimitive          // built-in value type
	TypeKindArray              // array of a leaf type
	TypeKindPointer            // pointer to a leaf type
	TypeKindEnum               // qualified enum reference
	TypeKindClass              // qualified class reference
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindPrimitive:
		return "primitive"
	case TypeKindArray:
		return "array"
	case TypeKindPointer:
		return "pointer"
	case TypeKindEnum:
		return "enum"
	case TypeKindClass:
		return "class"
	default:
		return common.UnknownStr
	}
}

// TypeDescriptor describes the shape of a property value. Array and pointer
// wrap exactly one non-composite leaf; constructors reject anything deeper.
type TypeDescriptor struct {
	Kind TypeKind
	// Name is the primitive name or the qualified enum/class name. Empty for composites.
	Name string
	// Elem is the wrapped leaf for arrays and pointers.
	Elem *TypeDescriptor
	// Primitive is set for TypeKindPrimitive.
	Primitive PrimitiveKind
}

// ErrNestedComposite is returned when wrapping an array or pointer in another one.
var ErrNestedComposite = errors.New("arrays and pointers may only wrap a primitive, enum or class")

// Primitive returns a primitive descriptor, or false when name is not built in.
func Primitive(name string) (TypeDescriptor, bool) {
	kind, ok := LookupPrimitive(name)
	if !ok {
		return TypeDescriptor{}, false
	}

	return TypeDescriptor{Kind: TypeKindPrimitive, Name: name, Primitive: kind}, true
}

// EnumRef references an enum by qualified name.
func EnumRef(qualified string) TypeDescriptor {
	return TypeDescriptor{Kind: TypeKindEnum, Name: qualified}
}

// ClassRef references a class by qualified name.
func ClassRef(qualified string) TypeDescriptor {
	return TypeDescriptor{Kind: TypeKindClass, Name: qualified}
}

// ArrayOf wraps elem in an array.
func ArrayOf(elem TypeDescriptor) (TypeDescriptor, error) {
	if elem.IsComposite() || elem.Kind == TypeKindUnknown {
		return TypeDescriptor{}, errors.Wrapf(ErrNestedComposite, "array of %s", elem)
	}

	return TypeDescriptor{Kind: TypeKindArray, Elem: &elem}, nil
}

// PointerTo wraps elem in a pointer.
func PointerTo(elem TypeDescriptor) (TypeDescriptor, error) {
	if elem.IsComposite() || elem.Kind == TypeKindUnknown {
		return TypeDescriptor{}, errors.Wrapf(ErrNestedComposite, "pointer to %s", elem)
	}

	return TypeDescriptor{Kind: TypeKindPointer, Elem: &elem}, nil
}

// IsComposite reports whether t is an array or pointer.
func (t TypeDescriptor) IsComposite() bool {
	return t.Kind == TypeKindArray || t.Kind == TypeKindPointer
}

// Leaf returns the wrapped element of a composite, or t itself.
func (t TypeDescriptor) Leaf() TypeDescriptor {
	if t.IsComposite() && t.Elem != nil {
		return *t.Elem
	}

	return t
}

// IsPointer reports whether t is a pointer.
func (t TypeDescriptor) IsPointer() bool {
	return t.Kind == TypeKindPointer
}

// ByValue reports whether values of t are passed and returned by value:
// fundamental primitives, enums and pointers. Everything else travels by const reference.
func (t TypeDescriptor) ByValue() bool {
	switch t.Kind {
	case TypeKindPrimitive:
		return t.Primitive.IsFundamental()
	case TypeKindEnum, TypeKindPointer:
		return true
	default:
		return false
	}
}

// Container is the C++ container template used for arrays: epiPtrArray for
// arrays of classes, epiArray otherwise. Empty for non-arrays.
func (t TypeDescriptor) Container() string {
	if t.Kind != TypeKindArray {
		return ""
	}

	if t.Elem != nil && t.Elem.Kind == TypeKindClass {
		return "epiPtrArray"
	}

	return "epiArray"
}

// String renders the C++ spelling of the type.
func (t TypeDescriptor) String() string {
	switch t.Kind {
	case TypeKindArray:
		return t.Container() + "<" + t.Leaf().String() + ">"
	case TypeKindPointer:
		return t.Leaf().String() + "*"
	case TypeKindUnknown:
		return common.UnknownStr
	default:
		return t.Name
	}
}

// Equal compares two descriptors structurally.
func (t TypeDescriptor) Equal(o TypeDescriptor) bool {
	if t.Kind != o.Kind || t.Name != o.Name {
		return false
	}

	if t.Elem == nil || o.Elem == nil {
		return t.Elem == o.Elem
	}

	return t.Elem.Equal(*o.Elem)
}
