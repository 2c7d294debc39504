package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/aliasdex/internal/catalog"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedPidgey provisions ポッポ (16) with only a canonical base form.
func seedPidgey(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.InsertEntity(ctx, catalog.Entity{Name: "ポッポ", ID: 16}))
	require.NoError(t, s.InsertForm(ctx, catalog.Form{EntityID: 16, FormID: 0}))
}
