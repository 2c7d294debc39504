package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/aliasdex/internal/catalog"
)

func newAliasFixture(t *testing.T) *AliasResolver {
	t.Helper()
	st := openStore(t)
	seed(t, st,
		[]catalog.Entity{{Name: "ポッポ", ID: 16}, {Name: "ニャース", ID: 52}, {Name: "ニャオニクス", ID: 678}},
		[]catalog.Form{
			{EntityID: 16, FormID: 0},
			{EntityID: 52, FormID: 1, Name: s("アローラのすがた")},
			{EntityID: 678, FormID: 0, Gender: s("オス")},
			{EntityID: 678, FormID: 1, Gender: s("メス")},
		})
	return NewAliasResolver(st, discard)
}

func TestAliasResolver_FormID(t *testing.T) {
	r := newAliasFixture(t)
	ctx := context.Background()

	id, err := r.FormID(ctx, 16, catalog.BaseLabel)
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)

	id, err = r.FormID(ctx, 52, "アローラのすがた")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = r.FormID(ctx, 678, "メス")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = r.FormID(ctx, 52, "ガラルのすがた")
	require.NoError(t, err)
	assert.Equal(t, int64(0), id, "unmatched label defaults to the base form")
}

func TestAliasResolver_AddThenList(t *testing.T) {
	r := newAliasFixture(t)
	ctx := context.Background()

	sel, err := r.Select(ctx, "ニャース", "アローラのすがた")
	require.NoError(t, err)
	require.True(t, sel.Found)
	assert.Equal(t, catalog.Key{EntityID: 52, FormID: 1}, sel.Key)

	require.NoError(t, r.Add(ctx, sel, "アローラニャース"))
	require.NoError(t, r.Add(ctx, sel, "アローラニャース"))

	aliases, err := r.List(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"アローラニャース", "アローラニャース"}, aliases)

	base, err := r.Select(ctx, "ニャース", catalog.BaseLabel)
	require.NoError(t, err)
	other, err := r.List(ctx, base)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAliasResolver_DeleteLeavesOtherKeys(t *testing.T) {
	r := newAliasFixture(t)
	ctx := context.Background()

	male, err := r.Select(ctx, "ニャオニクス", "オス")
	require.NoError(t, err)
	female, err := r.Select(ctx, "ニャオニクス", "メス")
	require.NoError(t, err)

	require.NoError(t, r.Add(ctx, male, "ニャオ"))
	require.NoError(t, r.Add(ctx, female, "ニャオ"))

	n, err := r.Delete(ctx, male, "ニャオ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	aliases, err := r.List(ctx, male)
	require.NoError(t, err)
	assert.NotContains(t, aliases, "ニャオ")

	aliases, err = r.List(ctx, female)
	require.NoError(t, err)
	assert.Equal(t, []string{"ニャオ"}, aliases)
}

func TestAliasResolver_EditUpdatesDuplicates(t *testing.T) {
	r := newAliasFixture(t)
	ctx := context.Background()

	sel, err := r.Select(ctx, "ポッポ", catalog.BaseLabel)
	require.NoError(t, err)
	require.NoError(t, r.Add(ctx, sel, "ハト"))
	require.NoError(t, r.Add(ctx, sel, "ハト"))

	n, err := r.Edit(ctx, sel, "ハト", "トリッピー")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	aliases, err := r.List(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"トリッピー", "トリッピー"}, aliases)
}

func TestAliasResolver_EmptyTextIsNoOp(t *testing.T) {
	r := newAliasFixture(t)
	ctx := context.Background()

	sel, err := r.Select(ctx, "ポッポ", catalog.BaseLabel)
	require.NoError(t, err)
	require.NoError(t, r.Add(ctx, sel, "ハト"))

	require.NoError(t, r.Add(ctx, sel, ""))
	n, err := r.Edit(ctx, sel, "ハト", "")
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = r.Edit(ctx, sel, "", "トリ")
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = r.Delete(ctx, sel, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	aliases, err := r.List(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"ハト"}, aliases)
}

func TestAliasResolver_UnknownEntity(t *testing.T) {
	r := newAliasFixture(t)
	ctx := context.Background()

	sel, err := r.Select(ctx, "けつばん", catalog.BaseLabel)
	require.NoError(t, err)
	assert.False(t, sel.Found)

	aliases, err := r.List(ctx, sel)
	require.NoError(t, err)
	assert.NotNil(t, aliases)
	assert.Empty(t, aliases)

	require.NoError(t, r.Add(ctx, sel, "ダミー"))
	n, err := r.Delete(ctx, sel, "ダミー")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSelectLabel_UsesLabelFormID(t *testing.T) {
	st := openStore(t)
	// Both forms carry gender Z, so the text "Z" cannot tell them apart.
	seed(t, st,
		[]catalog.Entity{{Name: "テスト", ID: 9}},
		[]catalog.Form{
			{EntityID: 9, FormID: 1, Gender: s("Z")},
			{EntityID: 9, FormID: 2, Name: s("W"), Gender: s("Z")},
		})
	ctx := context.Background()
	forms := NewFormResolver(st, discard)
	aliases := NewAliasResolver(st, discard)

	fs, err := forms.Resolve(ctx, "テスト")
	require.NoError(t, err)
	w, ok := fs.Lookup("W")
	require.True(t, ok)

	sel := SelectLabel(fs, w)
	assert.Equal(t, catalog.Key{EntityID: 9, FormID: 2}, sel.Key)

	byText, err := aliases.Select(ctx, "テスト", "W")
	require.NoError(t, err)
	assert.Equal(t, int64(2), byText.Key.FormID)

	z, ok := fs.Lookup("Z")
	require.True(t, ok)
	assert.True(t, z.Ambiguous)
}

func TestSelectLabel_NotFound(t *testing.T) {
	sel := SelectLabel(FormSet{}, catalog.Label{Text: catalog.BaseLabel})
	assert.False(t, sel.Found)
}

func TestAliasResolver_StoreErrorsPropagate(t *testing.T) {
	r := NewAliasResolver(failingStore{}, nil)
	ctx := context.Background()
	sel := Selection{Key: catalog.Key{EntityID: 1}, Found: true}

	_, err := r.Select(ctx, "ポッポ", catalog.BaseLabel)
	assert.ErrorIs(t, err, errBoom)
	_, err = r.FormID(ctx, 1, "X")
	assert.ErrorIs(t, err, errBoom)
	_, err = r.List(ctx, sel)
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, r.Add(ctx, sel, "x"), errBoom)
	_, err = r.Edit(ctx, sel, "x", "y")
	assert.ErrorIs(t, err, errBoom)
	_, err = r.Delete(ctx, sel, "x")
	assert.ErrorIs(t, err, errBoom)
}

func TestAliasResolver_SelectForm(t *testing.T) {
	st := openStore(t)
	seed(t, st,
		[]catalog.Entity{{Name: "ニャース", ID: 52}},
		[]catalog.Form{{EntityID: 52, FormID: 1, Name: s("アローラのすがた")}})
	ctx := context.Background()
	aliases := NewAliasResolver(st, discard)

	fs, err := NewFormResolver(st, discard).Resolve(ctx, "ニャース")
	require.NoError(t, err)

	tests := []struct {
		name      string
		label     string
		wantLabel string
		wantForm  int64
	}{
		{"default label", "", "アローラのすがた", 1},
		{"offered label", catalog.BaseLabel, catalog.BaseLabel, 0},
		{"unoffered label falls back to base", "ガラルのすがた", "ガラルのすがた", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := aliases.SelectForm(ctx, fs, tt.label)
			require.NoError(t, err)
			assert.True(t, sel.Found)
			assert.Equal(t, tt.wantLabel, sel.Label)
			assert.Equal(t, catalog.Key{EntityID: 52, FormID: tt.wantForm}, sel.Key)
		})
	}

	sel, err := aliases.SelectForm(ctx, FormSet{}, "")
	require.NoError(t, err)
	assert.False(t, sel.Found)
}
