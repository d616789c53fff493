// Package errors provides error handling for epigen.
//
// It re-exports github.com/cockroachdb/errors so every package builds
// errors with stack traces, wrapping context and user-facing hints, and
// it defines the sentinel errors of the fatal generation taxonomy.
//
// Usage:
//
//	if err := region.Parse(src); err != nil {
//	    return errors.Wrapf(err, "parse %s", path)
//	}
//
//	return errors.WithHint(err, "fix the region markers or delete the artifact")
//
//	if errors.Is(err, errors.ErrMalformedArtifact) {
//	    // abort this unit
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
	Join         = crdb.Join
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Fatal generation errors. Each aborts the affected unit; nothing is written
// for it. Wrap them with errors.Wrap or errors.Mark to add the file and the
// structural reason while keeping errors.Is working.
var (
	// ErrMalformedArtifact: a prior artifact has unterminated, stray or
	// mismatched region markers.
	ErrMalformedArtifact = New("malformed artifact")

	// ErrUnresolvedParent: a class names a parent that is not registered.
	ErrUnresolvedParent = New("unresolved parent class")

	// ErrAmbiguousRegion: two sibling regions share a qualified path.
	ErrAmbiguousRegion = New("ambiguous region path")

	// ErrInheritanceCycle: a class is its own ancestor.
	ErrInheritanceCycle = New("inheritance cycle")

	// ErrInvalidSpec: a spec file failed loading or validation.
	ErrInvalidSpec = New("invalid spec")
)

// IsFatal reports whether err belongs to the generation error taxonomy.
func IsFatal(err error) bool {
	return err != nil && IsAny(err,
		ErrMalformedArtifact,
		ErrUnresolvedParent,
		ErrAmbiguousRegion,
		ErrInheritanceCycle,
		ErrInvalidSpec,
	)
}
