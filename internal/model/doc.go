// Package model holds the descriptors epigen generates from: type,
// property, class and enum descriptors plus the registry that links classes
// to their parents.
//
// Descriptors are rebuilt from the spec files on every run and never
// mutated after Registry.Link, which lets emitters read them concurrently.
//
// Key types:
//   - TypeDescriptor: primitive, array-of, pointer-to, enum or class reference
//   - Property: storage kind, read/write access, validation policy and locators
//   - Class / Enum: ordered own properties, nested scopes, stable type IDs
//   - Registry: parent resolution, parent-first ordering and Is(typeID) walks
package model
