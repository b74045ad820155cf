// Package analyze discovers the fields of an owner that are tagged for
// automatic assignment.
//
// A field is tagged with the `auto` struct tag; its value is an optional
// scope hint (a child path for hierarchy lookups, a folder for asset
// lookups). Discovery happens once per owner type and is cached in a
// Registry, so resolution passes only walk a precomputed table.
//
// Key types:
//   - Declaration: field identity, declared type, cardinality, scope hint, kind
//   - Kind: which search strategy resolves the field
//   - Cardinality: Single for scalar fields, Many for slices
package analyze
