package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backup writes a consistent copy of the database to dst, replacing any
// existing file there. The copy is built next to dst and renamed into place,
// so dst is never left half-written.
func (s *Store) Backup(ctx context.Context, dst string) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".aliasdex-backup-*.db")
	if err != nil {
		return fmt.Errorf("backup: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	// VACUUM INTO refuses to overwrite an existing file
	if err := os.Remove(tmpPath); err != nil {
		return fmt.Errorf("backup: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("backup: vacuum into: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("backup: rename: %w", err)
	}
	return nil
}
