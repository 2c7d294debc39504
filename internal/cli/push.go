package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/aliasdex/internal/transport"
)

// PushOptions holds flags for the push command.
type PushOptions struct {
	*RootOptions
	New bool
}

// PushResult reports the remote object that received the upload.
type PushResult struct {
	Path   string `json:"path"`
	FileID string `json:"file_id"`
	Name   string `json:"name,omitempty"`
}

// Text renders a one-line summary.
func (r PushResult) Text() string {
	if r.Name != "" {
		return fmt.Sprintf("uploaded %s as %s (%s)", r.Path, r.Name, r.FileID)
	}
	return fmt.Sprintf("uploaded %s over %s", r.Path, r.FileID)
}

// NewPushCommand creates the push command.
func NewPushCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PushOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Upload a local database file to the remote",
		Long: `Upload a local database file to the remote. By default the remote file is
replaced in place; with --new a timestamped copy is created next to it.
Uploading requires a service account credentials file.

Example:
  aliasdex push ./pokemons.db --remote <share-link> --credentials credentials.json
  aliasdex push ./pokemons.db --new`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pushDatabase(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.New, "new", false, "create a new timestamped version instead of replacing")

	return cmd
}

func pushDatabase(opts *PushOptions, path string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if !cfg.IsRemote() {
		return CommandError(ErrCodeConfig, "push requires --remote", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return CommandError(ErrCodeNotFound, fmt.Sprintf("file not found: %s", path), err)
	}
	fileID, err := transport.ParseFileID(cfg.Remote.URL)
	if err != nil {
		return CommandError(ErrCodeConfig, "invalid remote URL", err)
	}

	ctx := commandContext(cmd)
	logger := opts.Logger(cmd)
	t, err := opts.transport(ctx, cfg, logger)
	if err != nil {
		return err
	}

	uploadOpts := transport.UploadOptions{Overwrite: !opts.New}
	if opts.New {
		now := opts.Now
		if now == nil {
			now = time.Now
		}
		uploadOpts.Name = transport.VersionedName(cfg.Remote.VersionPrefix, now())
	}

	id, err := transport.Push(ctx, t, path, fileID, uploadOpts)
	if err != nil {
		if errors.Is(err, transport.ErrUploadUnsupported) {
			return CommandError(ErrCodeConfig, "cannot upload without Drive credentials", err)
		}
		return CommandError(ErrCodeTransport, "failed to upload database", err)
	}
	logger.Info("database uploaded", "path", path, "file_id", id, "name", uploadOpts.Name)
	return opts.formatter(cmd).Success(PushResult{Path: path, FileID: id, Name: uploadOpts.Name})
}
