// Package spec loads the declarative class spec files epigen generates
// from.
//
// One spec file is one generation unit. Files may be written in YAML
// (*.epi.yaml), TOML (*.epi.toml), HCL (*.epi.hcl) or JSON (*.epi.json);
// all four decode into the same File. Validate checks a file structurally
// and reports located diagnostics. Build then turns every file of a run
// into gen.Unit values and a single linked model.Registry, resolving type
// names across units.
package spec
