package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/aliasdex/internal/transport"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	ConfigPath  string
	Database    string
	Remote      string
	Credentials string

	// Transport overrides the remote transport (for testing).
	// If nil, one is built from the credentials file.
	Transport transport.Transport

	// Now overrides the clock used to name pushed versions (for testing).
	Now func() time.Time

	// TempDir overrides where remote copies are downloaded (for testing).
	TempDir string

	logger    *slog.Logger
	sessionID string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the aliasdex CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliasdex",
		Short: "aliasdex - species alias manager",
		Long: `Manage user-defined aliases for species names and their forms.

The alias database is a single SQLite file, either local (--db) or shared
through a Google Drive link (--remote). Remote edits are made on a temporary
copy and published with --push or --push-new.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return CommandError(ErrCodeConfig, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./aliasdex.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to a local alias database")
	cmd.PersistentFlags().StringVar(&opts.Remote, "remote", "", "Google Drive share link of the alias database")
	cmd.PersistentFlags().StringVar(&opts.Credentials, "credentials", "", "service account JSON for Drive uploads")

	// Add subcommands
	cmd.AddCommand(NewNamesCommand(opts))
	cmd.AddCommand(NewFormsCommand(opts))
	cmd.AddCommand(NewAliasCommand(opts))
	cmd.AddCommand(NewPullCommand(opts))
	cmd.AddCommand(NewPushCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Execute runs the CLI with os.Args and returns the process exit code.
// Errors are reported once, in the selected output format.
func Execute() int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	return run(opts, cmd)
}

func run(opts *RootOptions, cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	formatter := opts.formatter(cmd)
	if !isValidFormat(formatter.Format) {
		formatter.Format = "text"
	}
	formatter.Error(GetErrCode(err), err.Error(), GetDetails(err))
	return GetExitCode(err)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
