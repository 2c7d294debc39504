// Package catalog holds the value types shared by every aliasdex layer.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import catalog; catalog imports nothing internal.
//
// The catalog has three record kinds keyed by a numeric entity identifier:
//   - Entity: a named species record (reference data, read-only)
//   - Form: a variant of an entity; FormID 0 is the base form (reference data)
//   - Alias: free text attached to one (entity, form) pair (user-editable)
package catalog
