package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames_Text(t *testing.T) {
	res := execute(t, &RootOptions{}, "", "names", "ポッ", "--db", localDB(t))
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "ポッポ\n", res.stdout)
}

func TestNames_AllInEntityOrder(t *testing.T) {
	res := execute(t, &RootOptions{}, "", "names", "--db", localDB(t), "--format", "json")
	assert.Equal(t, ExitSuccess, res.code, res.stderr)

	var got NamesResult
	decodeData(t, res.stdout, &got)
	assert.Equal(t, []string{"ポッポ", "ピジョン", "ニャース"}, got.Names)
}

func TestNames_NoMatch(t *testing.T) {
	res := execute(t, &RootOptions{}, "", "names", "ズバット", "--db", localDB(t), "--format", "json")
	assert.Equal(t, ExitSuccess, res.code, res.stderr)

	var got NamesResult
	decodeData(t, res.stdout, &got)
	assert.Empty(t, got.Names)
}
