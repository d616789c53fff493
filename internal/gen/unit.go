package gen

import (
	"path"

	"epigen/internal/common"
	"epigen/internal/model"
)

// ArtifactKind identifies one of the three artifacts of a unit.
type ArtifactKind int

//go:generate go tool stringer -type=ArtifactKind -trimprefix=Artifact

const (
	// ArtifactDeclaration is the .h file, written under the output directory.
	ArtifactDeclaration ArtifactKind = iota
	// ArtifactBundle is the .hxx macro bundle, written under the build directory.
	ArtifactBundle
	// ArtifactDefinition is the .cxx definition, written under the build directory.
	ArtifactDefinition
)

// ArtifactKinds lists every kind in emission order.
var ArtifactKinds = []ArtifactKind{ArtifactDeclaration, ArtifactBundle, ArtifactDefinition}

// Ext returns the file extension, dot included.
func (k ArtifactKind) Ext() string {
	switch k {
	case ArtifactDeclaration:
		return ".h"
	case ArtifactBundle:
		return ".hxx"
	case ArtifactDefinition:
		return ".cxx"
	default:
		return "." + common.UnknownStr
	}
}

// Unit is one spec file and everything it declares.
type Unit struct {
	// Name is the slash-separated unit path without extension, e.g. "codegen/A".
	Name string
	// Module overrides the include prefix of the bundle include.
	Module string
	// Source is the spec file path.
	Source string
	// Classes are the top-level classes in declaration order.
	Classes []*model.Class
	// Enums are the file-scoped enums in declaration order.
	Enums []*model.Enum
}

// Base is the last element of the unit name.
func (u *Unit) Base() string {
	return path.Base(u.Name)
}

// RelPath is the artifact path relative to its root directory.
func (u *Unit) RelPath(kind ArtifactKind) string {
	return u.Name + kind.Ext()
}

// IncludePath is the path the declaration uses to include its bundle.
func (u *Unit) IncludePath() string {
	if u.Module != "" {
		return path.Join(u.Module, u.Base()+ArtifactBundle.Ext())
	}

	return u.RelPath(ArtifactBundle)
}

// AllClasses returns every class of the unit, nested ones included,
// depth first in declaration order.
func (u *Unit) AllClasses() []*model.Class {
	var out []*model.Class

	for _, c := range u.Classes {
		c.Walk(func(k *model.Class) {
			out = append(out, k)
		})
	}

	return out
}
