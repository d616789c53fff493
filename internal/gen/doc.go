// Package gen emits the three reflection artifacts of a unit and merges them
// with whatever was generated before.
//
// Generation approach uses text/template for the per-class bodies and
// region.Node trees for the document skeleton, so the merge engine can tell
// owned text from hand-edited text.
//
// Artifacts per unit:
//   - <unit>.h   declaration: class bodies, PID enums, fields, enum value regions
//   - <unit>.hxx macro bundle: EPI_GENHIDDEN_<Class>() accessor macros
//   - <unit>.cxx definition: serialization and the metadata table factory
package gen
