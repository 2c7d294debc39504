// Package workspace owns the open alias database for one running instance.
//
// A Workspace holds the store handle and, in remote mode, the temporary
// local copy fetched from Drive. Close releases both and is safe to defer
// on every exit path.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/roach88/aliasdex/internal/store"
	"github.com/roach88/aliasdex/internal/transport"
)

// ErrNotRemote is returned by remote-only operations on a local workspace.
var ErrNotRemote = errors.New("workspace is not backed by a remote store")

// DefaultVersionPrefix names newly published versions: pokemons_YYYYMMDD_HHMMSS.db.
const DefaultVersionPrefix = "pokemons"

// Options configures a remote workspace.
type Options struct {
	// TempDir holds the downloaded copy. Empty means os.TempDir().
	TempDir string

	// VersionPrefix names new versions published by Push(overwrite=false).
	VersionPrefix string

	// Now is the clock used for version names. Nil means time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// Workspace is an open alias database, local or fetched from a remote store.
type Workspace struct {
	st        *store.Store
	path      string
	temp      bool
	transport transport.Transport
	fileID    string
	opts      Options
	logger    *slog.Logger
}

// OpenLocal opens the database file at path. Close leaves the file in place.
func OpenLocal(path string, logger *slog.Logger) (*Workspace, error) {
	if logger == nil {
		logger = slog.Default()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened local database", "path", path)
	return &Workspace{st: st, path: path, logger: logger}, nil
}

// OpenRemote fetches fileID through t into a temporary file and opens it.
// When the fetch fails nothing is opened and no file is left behind.
func OpenRemote(ctx context.Context, t transport.Transport, fileID string, opts Options) (*Workspace, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.VersionPrefix == "" {
		opts.VersionPrefix = DefaultVersionPrefix
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	path, err := transport.Fetch(ctx, t, fileID, opts.TempDir)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(path)
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	opts.Logger.Info("database downloaded", "file_id", fileID, "path", path)

	return &Workspace{
		st:        st,
		path:      path,
		temp:      true,
		transport: t,
		fileID:    fileID,
		opts:      opts,
		logger:    opts.Logger,
	}, nil
}

// Store returns the open store. It is invalid after Close or a Refresh.
func (w *Workspace) Store() *store.Store { return w.st }

// Path returns the database file in use.
func (w *Workspace) Path() string { return w.path }

// FileID returns the remote object ID, or "" for a local workspace.
func (w *Workspace) FileID() string { return w.fileID }

// Remote reports whether the workspace was fetched from a remote store.
func (w *Workspace) Remote() bool { return w.transport != nil }

// CanPush reports whether Push can succeed.
func (w *Workspace) CanPush() bool {
	return w.transport != nil && w.transport.CanUpload()
}

// Close closes the store and, for a remote workspace, deletes the temporary
// copy. Calling Close again is a no-op.
func (w *Workspace) Close() error {
	var errs []error
	if w.st != nil {
		if err := w.st.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
		w.st = nil
	}
	if w.temp && w.path != "" {
		if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("remove temp copy: %w", err))
		}
		w.path = ""
	}
	return errors.Join(errs...)
}

// Refresh replaces the local copy with a fresh download. The new copy is
// fetched before the current one is released, so a failed download leaves
// the workspace exactly as it was. Local changes not pushed are discarded.
func (w *Workspace) Refresh(ctx context.Context) error {
	if w.transport == nil {
		return ErrNotRemote
	}

	path, err := transport.Fetch(ctx, w.transport, w.fileID, w.opts.TempDir)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("refresh: %w", err)
	}

	oldStore, oldPath := w.st, w.path
	w.st, w.path = st, path

	if oldStore != nil {
		if err := oldStore.Close(); err != nil {
			w.logger.Warn("closing previous copy failed", "error", err)
		}
	}
	if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
		w.logger.Warn("removing previous copy failed", "path", oldPath, "error", err)
	}
	w.logger.Info("database refreshed", "file_id", w.fileID)
	return nil
}

// SaveLocal writes a consistent copy of the database to dst.
func (w *Workspace) SaveLocal(ctx context.Context, dst string) error {
	if err := w.st.Backup(ctx, dst); err != nil {
		return fmt.Errorf("save local: %w", err)
	}
	w.logger.Info("database saved", "path", dst)
	return nil
}

// Push uploads the current database. With overwrite the remote object is
// replaced in place; otherwise a new versioned object is published and the
// workspace follows it from then on. Returns the remote ID now in use.
//
// A failed push changes nothing locally.
func (w *Workspace) Push(ctx context.Context, overwrite bool) (string, error) {
	if w.transport == nil {
		return "", ErrNotRemote
	}
	if !w.transport.CanUpload() {
		return "", transport.ErrUploadUnsupported
	}

	// Upload a snapshot rather than the live file
	snap, err := os.CreateTemp(w.opts.TempDir, "aliasdex-push-*.db")
	if err != nil {
		return "", fmt.Errorf("push: %w", err)
	}
	snapPath := snap.Name()
	snap.Close()
	defer os.Remove(snapPath)

	if err := w.st.Backup(ctx, snapPath); err != nil {
		return "", fmt.Errorf("push: %w", err)
	}

	opts := transport.UploadOptions{Overwrite: overwrite}
	if !overwrite {
		opts.Name = transport.VersionedName(w.opts.VersionPrefix, w.opts.Now())
	}

	id, err := transport.Push(ctx, w.transport, snapPath, w.fileID, opts)
	if err != nil {
		return "", err
	}
	if !overwrite {
		w.fileID = id
	}
	w.logger.Info("database uploaded", "file_id", id, "overwrite", overwrite, "name", opts.Name)
	return id, nil
}
