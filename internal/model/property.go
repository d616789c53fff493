package model

import (
	"strings"

	"epigen/internal/common"
	"epigen/internal/hashid"
)

// StorageKind tells where a property value lives.
type StorageKind int

const (
	// DirectField properties own a member field m_<Name>.
	DirectField StorageKind = iota
	// CallbackPair properties are reached through user-implemented callbacks and own no field.
	CallbackPair
)

// String returns a human-readable storage kind.
func (s StorageKind) String() string {
	switch s {
	case DirectField:
		return "field"
	case CallbackPair:
		return "callback"
	default:
		return common.UnknownStr
	}
}

// Access describes how one direction (read or write) of a property is served.
type Access int

const (
	AccessNone     Access = iota // no accessor in this direction
	AccessField                  // served by the member field
	AccessCallback               // served by a user callback
)

// String returns a human-readable access mode.
func (a Access) String() string {
	switch a {
	case AccessNone:
		return "none"
	case AccessField:
		return "field"
	case AccessCallback:
		return "callback"
	default:
		return common.UnknownStr
	}
}

// Bound is one side of a validation policy. Literal is emitted verbatim.
type Bound struct {
	Literal string
	// Clamp silently limits the value instead of asserting.
	Clamp bool
}

// ValidationPolicy holds the optional bounds applied by a field setter.
type ValidationPolicy struct {
	Min *Bound
	Max *Bound
}

// ValidationPattern names the observable setter behavior of a policy.
type ValidationPattern int

const (
	PatternNone           ValidationPattern = iota
	PatternAssertMin                        // epiExpected(value >= MIN)
	PatternAssertMax                        // epiExpected(value <= MAX)
	PatternAssertRange                      // both bounds asserted
	PatternAssertMinClampMax                // floor asserted, ceiling clamped
	PatternClampRange                       // both bounds clamped
	PatternClampMin                         // floor clamped only
	PatternClampMax                         // ceiling clamped only
	PatternClampMinAssertMax                // floor clamped, ceiling asserted
)

var patternNames = [...]string{
	PatternNone:              "none",
	PatternAssertMin:         "assert_min",
	PatternAssertMax:         "assert_max",
	PatternAssertRange:       "assert_range",
	PatternAssertMinClampMax: "assert_min_clamp_max",
	PatternClampRange:        "clamp_range",
	PatternClampMin:          "clamp_min",
	PatternClampMax:          "clamp_max",
	PatternClampMinAssertMax: "clamp_min_assert_max",
}

// String returns the snake_case name of the pattern.
func (p ValidationPattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return common.UnknownStr
	}

	return patternNames[p]
}

// Pattern classifies the policy.
func (v ValidationPolicy) Pattern() ValidationPattern {
	switch {
	case v.Min == nil && v.Max == nil:
		return PatternNone
	case v.Max == nil:
		if v.Min.Clamp {
			return PatternClampMin
		}

		return PatternAssertMin
	case v.Min == nil:
		if v.Max.Clamp {
			return PatternClampMax
		}

		return PatternAssertMax
	case v.Min.Clamp && v.Max.Clamp:
		return PatternClampRange
	case v.Min.Clamp:
		return PatternClampMinAssertMax
	case v.Max.Clamp:
		return PatternAssertMinClampMax
	default:
		return PatternAssertRange
	}
}

// IsZero reports whether the policy has no bounds.
func (v ValidationPolicy) IsZero() bool {
	return v.Min == nil && v.Max == nil
}

// Locator is how the metadata table reaches a property value.
// It is either a FieldOffset or an AccessorAddress.
type Locator interface {
	isLocator()
}

// FieldOffset locates a value by the byte offset of a member field.
type FieldOffset struct {
	Member string // e.g. m_PName
}

// AccessorAddress locates a value through a function-pointer slot bound to an accessor.
type AccessorAddress struct {
	Slot string // e.g. GetVirtualFloat_FuncPtr
}

func (FieldOffset) isLocator()     {}
func (AccessorAddress) isLocator() {}

// PropertyFlags is the metadata flag set of a property.
type PropertyFlags uint8

const (
	FlagReadCallback PropertyFlags = 1 << iota
	FlagWriteCallback
	FlagReadOnly
)

// Names returns the set flags in canonical order.
func (f PropertyFlags) Names() []string {
	var names []string

	if f&FlagReadCallback != 0 {
		names = append(names, "ReadCallback")
	}

	if f&FlagWriteCallback != 0 {
		names = append(names, "WriteCallback")
	}

	if f&FlagReadOnly != 0 {
		names = append(names, "ReadOnly")
	}

	return names
}

// String joins the flag names with "|".
func (f PropertyFlags) String() string {
	return strings.Join(f.Names(), "|")
}

// RefSuppression selects the callback directions that pass by value.
type RefSuppression uint8

const (
	SuppressNone  RefSuppression = 0
	SuppressRead  RefSuppression = 1 << 0
	SuppressWrite RefSuppression = 1 << 1
	SuppressBoth                 = SuppressRead | SuppressWrite
)

// Read reports whether the getter returns by value.
func (r RefSuppression) Read() bool { return r&SuppressRead != 0 }

// Write reports whether the setter takes its argument by value.
func (r RefSuppression) Write() bool { return r&SuppressWrite != 0 }

// Property is one reflected property of a class.
type Property struct {
	Name string
	// DisplayName is the name recorded in the metadata table. Defaults to Name.
	DisplayName string
	Type        TypeDescriptor
	Storage     StorageKind
	Read        Access
	Write       Access
	// Default is the DirectField initializer literal. Empty means the type default.
	Default    string
	Validation ValidationPolicy
	// Transient properties are skipped by serialization.
	Transient bool
	// SuppressRef passes non-fundamental values through callbacks by value,
	// per direction.
	SuppressRef RefSuppression
	// Index is the zero-based position among the owning class's own properties.
	Index int
	// ID is hashid.Of(Name).
	ID hashid.ID
}

// NewField builds a DirectField property. A read-only field has no setter.
func NewField(name string, t TypeDescriptor, readOnly bool) *Property {
	p := &Property{
		Name:    name,
		Type:    t,
		Storage: DirectField,
		Read:    AccessField,
		Write:   AccessField,
		ID:      hashid.Of(name),
	}

	if readOnly {
		p.Write = AccessNone
	}

	return p
}

// NewCallback builds a CallbackPair property. Without a writer it is read-only.
func NewCallback(name string, t TypeDescriptor, writable bool) *Property {
	p := &Property{
		Name:    name,
		Type:    t,
		Storage: CallbackPair,
		Read:    AccessCallback,
		Write:   AccessCallback,
		ID:      hashid.Of(name),
	}

	if !writable {
		p.Write = AccessNone
	}

	return p
}

// Label is the metadata display name.
func (p *Property) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}

	return p.Name
}

// Member is the C++ field name.
func (p *Property) Member() string {
	return "m_" + p.Name
}

// OwnsField reports whether the class declares a member for the property.
func (p *Property) OwnsField() bool {
	return p.Storage == DirectField
}

// ReadOnly reports whether the property has no writer.
func (p *Property) ReadOnly() bool {
	return p.Write == AccessNone
}

// Serialized reports whether (de)serialization visits the property.
// Callback and pointer properties are implicitly transient.
func (p *Property) Serialized() bool {
	return !p.Transient && p.Storage == DirectField && !p.Type.IsPointer()
}

// Flags computes the metadata flag set.
func (p *Property) Flags() PropertyFlags {
	var f PropertyFlags

	if p.Read == AccessCallback {
		f |= FlagReadCallback
	}

	if p.Write == AccessCallback {
		f |= FlagWriteCallback
	}

	if p.Write == AccessNone {
		f |= FlagReadOnly
	}

	return f
}

// ReadLocator is the metadata read locator.
func (p *Property) ReadLocator() Locator {
	if p.Read == AccessCallback {
		return AccessorAddress{Slot: "Get" + p.Name + "_FuncPtr"}
	}

	return FieldOffset{Member: p.Member()}
}

// WriteLocator is the metadata write locator, or nil for read-only properties.
func (p *Property) WriteLocator() Locator {
	switch p.Write {
	case AccessCallback:
		return AccessorAddress{Slot: "Set" + p.Name + "_FuncPtr"}
	case AccessField:
		return FieldOffset{Member: p.Member()}
	default:
		return nil
	}
}

// DefaultLiteral returns the field initializer, falling back to the type's default.
func (p *Property) DefaultLiteral() string {
	if p.Default != "" {
		return p.Default
	}

	switch p.Type.Kind {
	case TypeKindPointer:
		return "nullptr"
	case TypeKindPrimitive:
		return p.Type.Primitive.DefaultLiteral()
	default:
		return ""
	}
}
