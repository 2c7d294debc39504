package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/aliasdex/internal/store"
	"github.com/roach88/aliasdex/internal/transport"
)

// PidgeyFixture is the smallest useful catalog: ポッポ (16) with only its
// canonical base form and no aliases.
const PidgeyFixture = `
entities:
  - name: ポッポ
    entity_id: 16
forms:
  - entity_id: 16
    form_id: 0
`

// BuildDatabase creates a database file from fixture YAML and returns its
// bytes, ready to be served by a MemRemote.
func BuildDatabase(t *testing.T, fixture string) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.db")

	st, err := store.Open(path)
	require.NoError(t, err)
	fx, err := store.ParseFixture([]byte(fixture))
	require.NoError(t, err)
	require.NoError(t, st.LoadFixture(context.Background(), fx))
	require.NoError(t, st.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// OpenBytes writes data to a temp file and opens it as a store, so tests can
// inspect what a MemRemote received.
func OpenBytes(t *testing.T, data []byte) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inspect.db")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	st, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// MemRemote is an in-memory transport.Transport holding objects by ID.
//
// New objects get IDs "v1", "v2", ... in creation order.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type MemRemote struct {
	mu       sync.Mutex
	objects  map[string][]byte
	names    map[string]string
	next     int
	ReadOnly bool

	// Err, when set, fails every Download and Upload.
	Err error
}

// NewMemRemote returns a remote holding data under id.
func NewMemRemote(id string, data []byte) *MemRemote {
	return &MemRemote{
		objects: map[string][]byte{id: data},
		names:   map[string]string{},
	}
}

// Download implements transport.Transport.
func (m *MemRemote) Download(_ context.Context, fileID string, w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	data, ok := m.objects[fileID]
	if !ok {
		return fmt.Errorf("download %s: not found", fileID)
	}
	_, err := io.Copy(w, bytes.NewReader(data))
	return err
}

// Upload implements transport.Transport.
func (m *MemRemote) Upload(_ context.Context, r io.Reader, fileID string, opts transport.UploadOptions) (string, error) {
	if !m.CanUpload() {
		return "", transport.ErrUploadUnsupported
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if opts.Overwrite {
		if _, ok := m.objects[fileID]; !ok {
			return "", fmt.Errorf("update %s: not found", fileID)
		}
		m.objects[fileID] = data
		return fileID, nil
	}
	m.next++
	id := fmt.Sprintf("v%d", m.next)
	m.objects[id] = data
	m.names[id] = opts.Name
	return id, nil
}

// CanUpload implements transport.Transport.
func (m *MemRemote) CanUpload() bool { return !m.ReadOnly }

// Object returns the stored content of id.
func (m *MemRemote) Object(id string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[id]
	return data, ok
}

// Name returns the name a created object was published under.
func (m *MemRemote) Name(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.names[id]
}

// Len returns the number of stored objects.
func (m *MemRemote) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
