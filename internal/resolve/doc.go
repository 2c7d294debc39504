// Package resolve turns a chosen entity name and form label into alias rows.
//
// FormResolver builds the selectable form labels of an entity. AliasResolver
// maps a label back to a form identifier and lists or mutates the aliases
// stored under the resulting (entity, form) key.
//
// Lookup misses are data, not errors: an unknown entity yields an empty
// FormSet and a Selection with Found=false, and every alias operation on
// such a selection returns empty results.
//
// Both resolvers take an explicitly owned Store at construction. Nothing in
// this package holds global state.
package resolve
