package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/aliasdex/internal/catalog"
)

func TestAlias_AddListDeleteLocal(t *testing.T) {
	db := localDB(t)

	res := execute(t, &RootOptions{}, "", "alias", "add", "ポッポ", "トリッピー", "--db", db)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "added トリッピー to ポッポ (基本)\n", res.stdout)

	res = execute(t, &RootOptions{}, "", "alias", "list", "ポッポ", "--db", db)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "トリッピー\n", res.stdout)

	res = execute(t, &RootOptions{}, "", "alias", "delete", "ポッポ", "トリッピー", "--db", db, "--yes")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "deleted トリッピー from ポッポ (基本): 1 row(s)\n", res.stdout)

	res = execute(t, &RootOptions{}, "", "alias", "list", "ポッポ", "--db", db, "--format", "json")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	var got AliasListResult
	decodeData(t, res.stdout, &got)
	assert.Empty(t, got.Aliases)
	assert.Equal(t, catalog.Key{EntityID: 16, FormID: 0}, got.Selection.Key)
}

func TestAlias_FormFlagSelectsForm(t *testing.T) {
	db := localDB(t)

	res := execute(t, &RootOptions{}, "", "alias", "add", "ニャース", "アロニャ", "--form", "アローラのすがた", "--db", db)
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	res = execute(t, &RootOptions{}, "", "alias", "list", "ニャース", "--form", "アローラのすがた", "--db", db, "--format", "json")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	var alola AliasListResult
	decodeData(t, res.stdout, &alola)
	assert.Equal(t, int64(1), alola.Selection.Key.FormID)
	assert.Equal(t, []string{"アロニャ"}, alola.Aliases)

	// Default label is the base form, which has no aliases
	res = execute(t, &RootOptions{}, "", "alias", "list", "ニャース", "--db", db, "--format", "json")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	var base AliasListResult
	decodeData(t, res.stdout, &base)
	assert.Equal(t, catalog.BaseLabel, base.Selection.Label)
	assert.Empty(t, base.Aliases)
}

func TestAlias_UnofferedLabelFallsBackToBase(t *testing.T) {
	db := localDB(t)

	res := execute(t, &RootOptions{}, "", "alias", "list", "ニャース", "--form", "パルデアのすがた", "--db", db, "--format", "json")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	var got AliasListResult
	decodeData(t, res.stdout, &got)
	assert.True(t, got.Selection.Found)
	assert.Equal(t, int64(0), got.Selection.Key.FormID)
	assert.Contains(t, res.stderr, "label is not offered")
}

func TestAlias_EditRenamesAllRows(t *testing.T) {
	db := localDB(t)
	for i := 0; i < 2; i++ {
		res := execute(t, &RootOptions{}, "", "alias", "add", "ポッポ", "ぽっぽ", "--db", db)
		require.Equal(t, ExitSuccess, res.code, res.stderr)
	}

	res := execute(t, &RootOptions{}, "", "alias", "edit", "ポッポ", "ぽっぽ", "トリッピー", "--db", db, "--format", "json")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	var change AliasChangeResult
	decodeData(t, res.stdout, &change)
	assert.Equal(t, int64(2), change.Rows)

	res = execute(t, &RootOptions{}, "", "alias", "list", "ポッポ", "--db", db)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "トリッピー\nトリッピー\n", res.stdout)
}

func TestAlias_DeleteConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		cancelled bool
		remaining []string
	}{
		{"declined", "n\n", true, []string{"トリッピー"}},
		{"no input", "", true, []string{"トリッピー"}},
		{"accepted", "y\n", false, []string{}},
		{"accepted long form", "YES\n", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := localDB(t)
			res := execute(t, &RootOptions{}, "", "alias", "add", "ポッポ", "トリッピー", "--db", db)
			require.Equal(t, ExitSuccess, res.code, res.stderr)

			res = execute(t, &RootOptions{}, tt.answer, "alias", "delete", "ポッポ", "トリッピー", "--db", db, "--format", "json")
			require.Equal(t, ExitSuccess, res.code, res.stderr)
			assert.Contains(t, res.stderr, "本当に 'トリッピー' を削除しますか？ [y/N]: ")

			var change AliasChangeResult
			decodeData(t, res.stdout, &change)
			assert.Equal(t, tt.cancelled, change.Cancelled)

			res = execute(t, &RootOptions{}, "", "alias", "list", "ポッポ", "--db", db, "--format", "json")
			require.Equal(t, ExitSuccess, res.code, res.stderr)
			var got AliasListResult
			decodeData(t, res.stdout, &got)
			assert.Equal(t, tt.remaining, got.Aliases)
		})
	}
}

func TestAlias_UnknownEntity(t *testing.T) {
	db := localDB(t)

	res := execute(t, &RootOptions{}, "", "alias", "list", "ミュウツー", "--db", db, "--format", "json")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	var got AliasListResult
	decodeData(t, res.stdout, &got)
	assert.False(t, got.Selection.Found)
	assert.Empty(t, got.Aliases)

	res = execute(t, &RootOptions{}, "", "alias", "add", "ミュウツー", "x", "--db", db, "--format", "json")
	assert.Equal(t, ExitFailure, res.code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, res.stdout).Code)
}

func TestAlias_PushRequiresRemote(t *testing.T) {
	db := localDB(t)

	res := execute(t, &RootOptions{}, "", "alias", "add", "ポッポ", "トリッピー", "--db", db, "--push", "--format", "json")
	assert.Equal(t, ExitCommandError, res.code)
	assert.Equal(t, ErrCodeConfig, decodeError(t, res.stdout).Code)

	// Nothing was written
	res = execute(t, &RootOptions{}, "", "alias", "list", "ポッポ", "--db", db)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Empty(t, strings.TrimSpace(res.stdout))
}

func TestConfirm(t *testing.T) {
	var prompt strings.Builder
	ok, err := confirm(strings.NewReader(" y \n"), &prompt, "delete?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "delete? [y/N]: ", prompt.String())

	ok, err = confirm(strings.NewReader("maybe\n"), &prompt, "delete?")
	require.NoError(t, err)
	assert.False(t, ok)
}
