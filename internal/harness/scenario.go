package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/aliasdex/internal/store"
)

// Scenario defines an alias test scenario: reference data to load, a list
// of operations to run, and assertions on the resulting trace and tables.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is a fixture YAML file loaded before Seed.
	// Relative paths are resolved against the scenario file's directory.
	Fixture string `yaml:"fixture,omitempty"`

	// Seed holds inline reference rows.
	Seed *store.Fixture `yaml:"seed,omitempty"`

	// Steps are run in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and tables.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation with optional expected result fields.
type Step struct {
	// Op names the operation (names, forms, list, add, edit, delete).
	Op string `yaml:"op"`

	// Args holds the operation arguments.
	Args map[string]any `yaml:"args"`

	// Expect is a subset of the result to match. Nil skips validation.
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Operation names.
const (
	OpNames  = "names"
	OpForms  = "forms"
	OpList   = "list"
	OpAdd    = "add"
	OpEdit   = "edit"
	OpDelete = "delete"
)

// requiredArgs lists the arguments each operation cannot run without.
var requiredArgs = map[string][]string{
	OpNames:  {},
	OpForms:  {"name"},
	OpList:   {"name"},
	OpAdd:    {"name", "alias"},
	OpEdit:   {"name", "alias", "new_alias"},
	OpDelete: {"name", "alias"},
}

// Assertion validates trace or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": op appears in trace with args
	// - "trace_order": ops appear in order
	// - "trace_count": op appears exactly Count times
	// - "final_state": one row of Table matches Where and Expect
	// - "row_count": exactly Count rows of Table match Where
	Type string `yaml:"type"`

	// Op is the operation name (used by trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Args are the expected operation arguments (used by trace_contains).
	// Subset match - only specified fields are validated.
	Args map[string]any `yaml:"args,omitempty"`

	// Table is the table name (used by final_state, row_count).
	Table string `yaml:"table,omitempty"`

	// Where specifies query filters (used by final_state, row_count).
	Where map[string]any `yaml:"where,omitempty"`

	// Expect contains expected column values (used by final_state).
	Expect map[string]any `yaml:"expect,omitempty"`

	// Count is the expected number of occurrences or rows.
	Count int `yaml:"count,omitempty"`

	// Ops is the expected op order (used by trace_order).
	Ops []string `yaml:"ops,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
	AssertRowCount      = "row_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	// Resolve the fixture path relative to the scenario file BEFORE validation
	if scenario.Fixture != "" && !filepath.IsAbs(scenario.Fixture) {
		scenario.Fixture = filepath.Join(filepath.Dir(path), scenario.Fixture)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// ParseScenario decodes scenario YAML without validating it.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Fixture != "" {
		if _, err := os.Stat(s.Fixture); os.IsNotExist(err) {
			return fmt.Errorf("fixture file not found: %s", s.Fixture)
		}
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		required, ok := requiredArgs[step.Op]
		if !ok {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		for _, key := range required {
			v, ok := step.Args[key].(string)
			if !ok || v == "" {
				return fmt.Errorf("steps[%d]: %s requires string arg %q", i, step.Op, key)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	case AssertRowCount:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for row_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for row_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
