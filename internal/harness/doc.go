// Package harness runs alias scenarios against a fresh store and records a
// deterministic trace for golden comparison.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	seed:
//	  entities:
//	    - { name: ポッポ, entity_id: 16 }
//	  forms:
//	    - { entity_id: 16, form_id: 0 }
//	steps:
//	  - op: add
//	    args: { name: ポッポ, label: 基本, alias: トリッピー }
//	  - op: list
//	    args: { name: ポッポ, label: 基本 }
//	    expect:
//	      aliases: [トリッピー]
//	assertions:
//	  - type: trace_order
//	    ops: [add, list]
//	  - type: row_count
//	    table: POKEMON_NAME_ALIAS
//	    where: { NDEX_NUMBER: 16 }
//	    count: 1
//
// A fixture file may be referenced with "fixture:" instead of, or in
// addition to, an inline seed. Its path is relative to the scenario file.
//
// # Operations
//
//   - names: args typed; result names
//   - forms: args name; result found, default, labels
//   - list: args name, label; result found, form_id, aliases
//   - add: args name, label, alias; result found, form_id, rows
//   - edit: args name, label, alias, new_alias; result found, form_id, rows
//   - delete: args name, label, alias; result found, form_id, rows
//
// An omitted label selects the entity's default label. Expectations are
// subset matches against the result.
//
// # Assertion Types
//
//   - trace_contains: an op appears in the trace with matching args
//   - trace_order: ops appear in the given order
//   - trace_count: an op appears exactly N times
//   - final_state: exactly one row matches where and has the expected columns
//   - row_count: exactly N rows match where
//
// # Deterministic Testing
//
// Every scenario runs on its own in-memory SQLite database with a logical
// sequence counter, so the same scenario always produces a byte-identical
// trace.
package harness
