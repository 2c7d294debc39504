package resolve

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/aliasdex/internal/catalog"
	"github.com/roach88/aliasdex/internal/store"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func seed(t *testing.T, st *store.Store, entities []catalog.Entity, forms []catalog.Form) {
	t.Helper()
	require.NoError(t, st.LoadFixture(context.Background(), &store.Fixture{
		Entities: entities,
		Forms:    forms,
	}))
}

var errBoom = errors.New("disk I/O error")

// failingStore fails every call.
type failingStore struct{}

func (failingStore) EntityByName(context.Context, string) (catalog.Entity, bool, error) {
	return catalog.Entity{}, false, errBoom
}
func (failingStore) Forms(context.Context, int64) ([]catalog.Form, error) { return nil, errBoom }
func (failingStore) FormIDForLabel(context.Context, int64, string) (int64, bool, error) {
	return 0, false, errBoom
}
func (failingStore) Aliases(context.Context, catalog.Key) ([]string, error) { return nil, errBoom }
func (failingStore) InsertAlias(context.Context, catalog.Alias) error       { return errBoom }
func (failingStore) UpdateAlias(context.Context, catalog.Key, string, string) (int64, error) {
	return 0, errBoom
}
func (failingStore) DeleteAlias(context.Context, catalog.Key, string) (int64, error) {
	return 0, errBoom
}
