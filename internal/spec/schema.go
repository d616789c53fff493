package spec

import (
	"path"
	"path/filepath"
	"strings"
)

// File represents one spec file. One file is one generation unit.
type File struct {
	// Version is the schema version (currently "1").
	Version string `yaml:"version,omitempty" toml:"version" json:"version,omitempty"`
	// Unit overrides the unit path derived from the file location.
	Unit string `yaml:"unit,omitempty" toml:"unit" json:"unit,omitempty"`
	// Module is the include prefix used for the bundle include.
	Module string `yaml:"module,omitempty" toml:"module" json:"module,omitempty"`
	// Enums are file-scoped enums.
	Enums []EnumSpec `yaml:"enums,omitempty" toml:"enums" json:"enums,omitempty"`
	// Classes are the top-level classes in declaration order.
	Classes []ClassSpec `yaml:"classes,omitempty" toml:"classes" json:"classes,omitempty"`

	// Path is where the file was loaded from. Set by the loader.
	Path string `yaml:"-" toml:"-" json:"-"`
}

// EnumSpec declares an enum. Values only seed its preserved region.
type EnumSpec struct {
	Name   string          `yaml:"name" toml:"name" json:"name"`
	Base   string          `yaml:"base,omitempty" toml:"base" json:"base,omitempty"`
	Mask   bool            `yaml:"mask,omitempty" toml:"mask" json:"mask,omitempty"`
	Values []EnumValueSpec `yaml:"values,omitempty" toml:"values" json:"values,omitempty"`
}

// EnumValueSpec is one enum entry. Shorthand forms:
//   - "Value1"                  name only
//   - {Value0: "1 << 0"}        single-key map of name to value
//   - {name: Value0, value: 1}  explicit
type EnumValueSpec struct {
	Name  string `yaml:"name" toml:"name" json:"name"`
	Value string `yaml:"value,omitempty" toml:"value" json:"value,omitempty"`
}

// ClassSpec declares a class.
type ClassSpec struct {
	Name string `yaml:"name" toml:"name" json:"name"`
	// Parent is the parent class name; empty means the root class.
	Parent string `yaml:"parent,omitempty" toml:"parent" json:"parent,omitempty"`
	// Size is the declared instance size in bytes.
	Size int `yaml:"size,omitempty" toml:"size" json:"size,omitempty"`
	// Regions names hand-editable regions placed at the end of the class body.
	Regions    []string       `yaml:"regions,omitempty" toml:"regions" json:"regions,omitempty"`
	Enums      []EnumSpec     `yaml:"enums,omitempty" toml:"enums" json:"enums,omitempty"`
	Classes    []ClassSpec    `yaml:"classes,omitempty" toml:"classes" json:"classes,omitempty"`
	Properties []PropertySpec `yaml:"properties,omitempty" toml:"properties" json:"properties,omitempty"`
}

// Storage values.
const (
	StorageField    = "field"
	StorageCallback = "callback"
)

// Write values for callback storage.
const (
	WriteCallback = "callback"
	WriteNone     = "none"
)

// PropertySpec declares a property.
type PropertySpec struct {
	Name string `yaml:"name" toml:"name" json:"name"`
	// Type is a type expression: T, T*, epiArray<T> or epiPtrArray<T>.
	Type string `yaml:"type" toml:"type" json:"type"`
	// Storage is "field" (default) or "callback".
	Storage string `yaml:"storage,omitempty" toml:"storage" json:"storage,omitempty"`
	// Write is "callback" (default) or "none" for callback storage.
	Write string `yaml:"write,omitempty" toml:"write" json:"write,omitempty"`
	// Default is the field initializer literal, emitted verbatim.
	Default string `yaml:"default,omitempty" toml:"default" json:"default,omitempty"`

	Min *BoundSpec `yaml:"min,omitempty" toml:"min" json:"min,omitempty"`
	Max *BoundSpec `yaml:"max,omitempty" toml:"max" json:"max,omitempty"`

	ReadOnly    bool    `yaml:"readonly,omitempty" toml:"readonly" json:"readonly,omitempty"`
	Transient   bool    `yaml:"transient,omitempty" toml:"transient" json:"transient,omitempty"`
	SuppressRef RefMode `yaml:"suppress_ref,omitempty" toml:"suppress_ref" json:"suppress_ref,omitempty"`
	DisplayName string  `yaml:"display_name,omitempty" toml:"display_name" json:"display_name,omitempty"`
}

// IsCallback reports whether the property is callback-backed.
func (p *PropertySpec) IsCallback() bool {
	return p.Storage == StorageCallback
}

// BoundSpec is a validation bound. A bare scalar is an asserted bound;
// {value: X, clamp: true} clamps instead.
type BoundSpec struct {
	Value string `yaml:"value" toml:"value" json:"value"`
	Clamp bool   `yaml:"clamp,omitempty" toml:"clamp" json:"clamp,omitempty"`
}

// RefMode selects which callback directions pass by value:
// "read", "write", "both" or "none". A boolean true means "both".
type RefMode string

// RefMode values.
const (
	RefNone  RefMode = ""
	RefRead  RefMode = "read"
	RefWrite RefMode = "write"
	RefBoth  RefMode = "both"
)

// Valid reports whether m is a known mode.
func (m RefMode) Valid() bool {
	switch m {
	case RefNone, RefRead, RefWrite, RefBoth:
		return true
	default:
		return false
	}
}

// specExts are the recognised spec file suffixes, keyed by format.
var specExts = map[string]Format{
	".epi.yaml": FormatYAML,
	".epi.yml":  FormatYAML,
	".epi.toml": FormatTOML,
	".epi.hcl":  FormatHCL,
	".epi.json": FormatJSON,
}

// specExt returns the spec suffix of name, or "".
func specExt(name string) string {
	lower := strings.ToLower(name)

	for ext := range specExts {
		if strings.HasSuffix(lower, ext) {
			return name[len(name)-len(ext):]
		}
	}

	return ""
}

// UnitName returns the unit path: the explicit Unit, or the file path
// relative to inputDir with the spec suffix removed, slash separated.
func (f *File) UnitName(inputDir string) string {
	if f.Unit != "" {
		return path.Clean(f.Unit)
	}

	rel := f.Path
	if inputDir != "" {
		if r, err := filepath.Rel(inputDir, f.Path); err == nil {
			rel = r
		}
	}

	rel = filepath.ToSlash(rel)

	return strings.TrimSuffix(rel, specExt(rel))
}
