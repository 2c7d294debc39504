// Package store provides the SQLite accessor for the alias catalog.
//
// The database holds three tables keyed by NDEX_NUMBER:
//   - POKEMON_NAME: entity names (reference data)
//   - POKEMON_NAME_FORM: entity forms; FORM_ID 0 is the base form (reference data)
//   - POKEMON_NAME_ALIAS: free-text aliases per (entity, form)
//
// # Critical Patterns
//
// Reference data is never written by the resolvers. Only InsertEntity,
// InsertForm and LoadFixture touch it, for out-of-band provisioning.
//
// Alias mutations are set-based: UpdateAlias and DeleteAlias act on every row
// whose text matches under the key, since the table has no row identity and
// duplicates are legal.
//
// Read order follows rowid. The schema declares no ordering, so rowid is the
// insertion order SQLite would return anyway.
//
// # Database Configuration
//
//   - journal_mode=DELETE: the database stays one self-contained file for upload
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=OFF: alias keys are not referentially enforced
//   - one open connection: the handle is exclusively owned
package store
