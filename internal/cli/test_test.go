package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: pidgey_add
description: add one alias
seed:
  entities:
    - { name: ポッポ, entity_id: 16 }
  forms:
    - { entity_id: 16, form_id: 0 }
steps:
  - op: add
    args: { name: ポッポ, alias: トリッピー }
  - op: list
    args: { name: ポッポ }
    expect:
      aliases: [トリッピー]
assertions:
  - type: row_count
    table: POKEMON_NAME_ALIAS
    count: 1
`

const failingScenario = `
name: pidgey_wrong
description: expects an alias that was never added
seed:
  entities:
    - { name: ポッポ, entity_id: 16 }
steps:
  - op: list
    args: { name: ポッポ }
    expect:
      aliases: [ことり]
`

func scenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestTestCommand_MissingArgs(t *testing.T) {
	res := execute(t, &RootOptions{}, "", "test")
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "accepts 1 arg")
}

func TestTestCommand_MissingDir(t *testing.T) {
	res := execute(t, &RootOptions{}, "", "test", filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, "scenarios directory not found")
}

func TestTestCommand_Empty(t *testing.T) {
	res := execute(t, &RootOptions{}, "", "test", t.TempDir())
	assert.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "No scenarios found.")

	res = execute(t, &RootOptions{}, "", "--format", "json", "test", t.TempDir())
	assert.Equal(t, ExitSuccess, res.code)
	var result TestResult
	decodeData(t, res.stdout, &result)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Scenarios)
}

func TestTestCommand_Passing(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"pidgey_add.yaml": passingScenario})

	res := execute(t, &RootOptions{}, "", "test", dir)
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "✓ pidgey_add")
	assert.Contains(t, res.stdout, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, res.stdout, "All scenarios passed")
}

func TestTestCommand_FailingJSON(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"pidgey_add.yaml":   passingScenario,
		"pidgey_wrong.yaml": failingScenario,
	})

	res := execute(t, &RootOptions{}, "", "--format", "json", "test", dir)
	assert.Equal(t, ExitFailure, res.code)

	cliErr := decodeError(t, res.stdout)
	assert.Equal(t, ErrCodeTestFailed, cliErr.Code)
	assert.Equal(t, "1 scenario(s) failed", cliErr.Message)

	details, ok := cliErr.Details.(map[string]any)
	require.True(t, ok, "details: %#v", cliErr.Details)
	assert.Equal(t, float64(1), details["passed"])
	assert.Equal(t, float64(1), details["failed"])
}

func TestTestCommand_FailingText(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"pidgey_wrong.yaml": failingScenario})

	res := execute(t, &RootOptions{}, "", "test", dir)
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stdout, "✗ pidgey_wrong")
	assert.Contains(t, res.stdout, "steps[0] list: aliases")
	assert.Contains(t, res.stderr, "Error [E006]: 1 scenario(s) failed")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"pidgey_add.yaml":   passingScenario,
		"pidgey_wrong.yaml": failingScenario,
	})

	res := execute(t, &RootOptions{}, "", "--format", "json", "test", dir, "--filter", "*_add")
	assert.Equal(t, ExitSuccess, res.code, res.stdout)
	var result TestResult
	decodeData(t, res.stdout, &result)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, "pidgey_add", result.Scenarios[0].Name)
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"broken.yaml": "name: broken\n"})

	res := execute(t, &RootOptions{}, "", "test", dir)
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stdout, "✗ broken")
	assert.Contains(t, res.stdout, "failed to load scenario")
}

func TestTestCommand_GoldenLifecycle(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"pidgey_add.yaml": passingScenario})
	goldenPath := filepath.Join(dir, "golden", "pidgey_add.golden")

	// No golden file yet: assertions only
	res := execute(t, &RootOptions{}, "", "--format", "json", "test", dir)
	require.Equal(t, ExitSuccess, res.code, res.stdout)
	var result TestResult
	decodeData(t, res.stdout, &result)
	assert.Equal(t, "missing", result.Scenarios[0].Golden)

	res = execute(t, &RootOptions{}, "", "test", dir, "--update")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "(golden updated)")

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name":"pidgey_add"`)
	assert.Contains(t, string(data), `"aliases":["トリッピー"]`)

	res = execute(t, &RootOptions{}, "", "--format", "json", "test", dir)
	require.Equal(t, ExitSuccess, res.code, res.stdout)
	result = TestResult{}
	decodeData(t, res.stdout, &result)
	assert.Equal(t, "match", result.Scenarios[0].Golden)

	// Tampered golden file fails the run
	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"scenario_name":"pidgey_add","trace":[]}`), 0o644))
	res = execute(t, &RootOptions{}, "", "test", dir)
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stdout, "trace does not match golden file")
}

func TestTestCommand_RepoScenarios(t *testing.T) {
	dir := filepath.Join("..", "harness", "testdata", "scenarios")
	golden := filepath.Join("..", "harness", "testdata", "golden")

	res := execute(t, &RootOptions{}, "", "test", dir, "--golden", golden)
	assert.Equal(t, ExitSuccess, res.code, res.stdout+res.stderr)
	assert.Contains(t, res.stdout, "✓ pidgey_alias_lifecycle")
	assert.Contains(t, res.stdout, "✓ meowth_regional_forms")
}
