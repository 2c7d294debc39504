package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/aliasdex/internal/testutil"
)

const catalogFixture = `
entities:
  - { name: ポッポ, entity_id: 16 }
  - { name: ピジョン, entity_id: 17 }
  - { name: ニャース, entity_id: 52 }
forms:
  - { entity_id: 16, form_id: 0 }
  - { entity_id: 52, form_id: 0 }
  - { entity_id: 52, form_id: 1, form_name: アローラのすがた }
  - { entity_id: 52, form_id: 2, form_name: ガラルのすがた }
`

const shareURL = "https://drive.google.com/file/d/abc/view?usp=sharing"

// cliResult captures one CLI invocation.
type cliResult struct {
	code   int
	stdout string
	stderr string
}

// execute runs the root command with args and stdin, returning exit code and output.
func execute(t *testing.T, opts *RootOptions, stdin string, args ...string) cliResult {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := newRootCommand(opts)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	code := run(opts, cmd)
	return cliResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

// localDB writes the catalog fixture to a database file and returns its path.
func localDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokemons.db")
	require.NoError(t, os.WriteFile(path, testutil.BuildDatabase(t, catalogFixture), 0o600))
	return path
}

// remoteOpts returns options wired to an in-memory remote holding the catalog.
func remoteOpts(t *testing.T) (*RootOptions, *testutil.MemRemote) {
	t.Helper()
	remote := testutil.NewMemRemote("abc", testutil.BuildDatabase(t, catalogFixture))
	return &RootOptions{
		Transport: remote,
		Now:       testutil.NewStepClock().Now,
		TempDir:   t.TempDir(),
	}, remote
}

// decodeData unmarshals the data payload of a JSON success response.
func decodeData(t *testing.T, stdout string, v any) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
	require.Equal(t, "ok", resp.Status)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

// decodeError returns the error code of a JSON error response.
func decodeError(t *testing.T, stdout string) CLIError {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
	require.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	return *resp.Error
}
