package transport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Fetch downloads fileID into a new temporary file under dir (os.TempDir()
// when empty) and returns its path. On failure the file is removed and no
// path is returned. The caller owns the returned file and must delete it.
func Fetch(ctx context.Context, t Transport, fileID, dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("aliasdex-%s.db", uuid.New().String()))

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("fetch: create temp file: %w", err)
	}

	if err := t.Download(ctx, fileID, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("fetch: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("fetch: close temp file: %w", err)
	}
	return path, nil
}

// Push uploads the file at path.
func Push(ctx context.Context, t Transport, path, fileID string, opts UploadOptions) (string, error) {
	if !t.CanUpload() {
		return "", ErrUploadUnsupported
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("push: %w", err)
	}
	defer f.Close()

	id, err := t.Upload(ctx, f, fileID, opts)
	if err != nil {
		return "", fmt.Errorf("push: %w", err)
	}
	return id, nil
}
