package cli

import (
	"github.com/spf13/cobra"
)

// PullOptions holds flags for the pull command.
type PullOptions struct {
	*RootOptions
	Out string
}

// PullResult reports where the remote database was saved.
type PullResult struct {
	FileID string `json:"file_id"`
	Path   string `json:"path"`
}

// Text renders a one-line summary.
func (r PullResult) Text() string {
	return "saved " + r.FileID + " to " + r.Path
}

// NewPullCommand creates the pull command.
func NewPullCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PullOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download the remote database to a local file",
		Long: `Download the remote database and save a copy to a local file.
An existing file at the destination is replaced.

Example:
  aliasdex pull --remote https://drive.google.com/file/d/<id>/view --out ./pokemons.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pullDatabase(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "destination file (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func pullDatabase(opts *PullOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if !cfg.IsRemote() {
		return CommandError(ErrCodeConfig, "pull requires --remote", nil)
	}

	ctx := commandContext(cmd)
	ws, _, err := opts.openWorkspace(ctx, cmd, openExisting)
	if err != nil {
		return err
	}
	defer closeWorkspace(ws, opts.Logger(cmd))

	if err := ws.SaveLocal(ctx, opts.Out); err != nil {
		return CommandError(ErrCodeWriteFailed, "failed to save database", err)
	}
	return opts.formatter(cmd).Success(PullResult{FileID: ws.FileID(), Path: opts.Out})
}
