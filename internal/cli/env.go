package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/aliasdex/internal/config"
	"github.com/roach88/aliasdex/internal/transport"
	"github.com/roach88/aliasdex/internal/workspace"
)

// Logger returns the invocation logger: a text handler on stderr, Debug
// level with --verbose, tagged with this invocation's session ID.
func (o *RootOptions) Logger(cmd *cobra.Command) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	logLevel := slog.LevelInfo
	if o.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	o.logger = slog.New(handler).With("session", o.session())
	return o.logger
}

func (o *RootOptions) session() string {
	if o.sessionID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		o.sessionID = id.String()
	}
	return o.sessionID
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		SessionID: o.session(),
	}
}

// loadConfig reads the config file, then applies environment and flag
// overrides in that order.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, CommandError(ErrCodeConfig, "failed to load config", err)
	}
	if err := config.LoadEnv(""); err != nil {
		return nil, CommandError(ErrCodeConfig, "failed to load .env file", err)
	}
	cfg.Apply(config.FromEnv())
	cfg.Apply(config.Overrides{
		Database:    o.Database,
		RemoteURL:   o.Remote,
		Credentials: o.Credentials,
	})
	if err := cfg.Validate(); err != nil {
		return nil, CommandError(ErrCodeConfig, "invalid configuration", err)
	}
	return cfg, nil
}

// openMode controls whether a missing local database file may be created.
type openMode int

const (
	openExisting openMode = iota
	openOrCreate
)

// openWorkspace opens the configured database, downloading it first in
// remote mode. The caller must Close the workspace.
func (o *RootOptions) openWorkspace(ctx context.Context, cmd *cobra.Command, mode openMode) (*workspace.Workspace, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := o.Logger(cmd)

	if !cfg.IsRemote() {
		if mode == openExisting {
			if _, err := os.Stat(cfg.Database); errors.Is(err, os.ErrNotExist) {
				return nil, nil, CommandError(ErrCodeNotFound, fmt.Sprintf("database not found: %s", cfg.Database), nil)
			}
		}
		ws, err := workspace.OpenLocal(cfg.Database, logger)
		if err != nil {
			return nil, nil, CommandError(ErrCodeDatabase, "failed to open database", err)
		}
		return ws, cfg, nil
	}

	fileID, err := transport.ParseFileID(cfg.Remote.URL)
	if err != nil {
		return nil, nil, CommandError(ErrCodeConfig, "invalid remote URL", err)
	}
	t, err := o.transport(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	ws, err := workspace.OpenRemote(ctx, t, fileID, workspace.Options{
		TempDir:       o.TempDir,
		VersionPrefix: cfg.Remote.VersionPrefix,
		Now:           o.Now,
		Logger:        logger,
	})
	if err != nil {
		return nil, nil, CommandError(ErrCodeTransport, "failed to download database", err)
	}
	return ws, cfg, nil
}

func (o *RootOptions) transport(ctx context.Context, cfg *config.Config, logger *slog.Logger) (transport.Transport, error) {
	if o.Transport != nil {
		return o.Transport, nil
	}
	t, err := transport.New(ctx, cfg.Remote.Credentials, logger)
	if err != nil {
		return nil, CommandError(ErrCodeTransport, "failed to set up Drive access", err)
	}
	return t, nil
}

// closeWorkspace closes ws, logging rather than returning any error.
func closeWorkspace(ws *workspace.Workspace, logger *slog.Logger) {
	if err := ws.Close(); err != nil {
		logger.Error("error closing database", "error", err)
	}
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// pushFlags are shared by every command that changes the database.
type pushFlags struct {
	Push    bool
	PushNew bool
}

func (p *pushFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.Push, "push", false, "upload the result over the remote database")
	cmd.Flags().BoolVar(&p.PushNew, "push-new", false, "upload the result as a new timestamped version")
	cmd.MarkFlagsMutuallyExclusive("push", "push-new")
}

// publish uploads ws when requested and returns the remote ID written, if any.
func (p *pushFlags) publish(ctx context.Context, ws *workspace.Workspace, logger *slog.Logger) (string, error) {
	if !p.Push && !p.PushNew {
		if ws.Remote() {
			logger.Warn("changes were made to a temporary copy and will be discarded; use --push or --push-new")
		}
		return "", nil
	}
	id, err := ws.Push(ctx, p.Push)
	if err != nil {
		if errors.Is(err, workspace.ErrNotRemote) {
			return "", CommandError(ErrCodeConfig, "--push requires --remote", err)
		}
		return "", CommandError(ErrCodeTransport, "failed to upload database", err)
	}
	return id, nil
}

// check rejects push flags before anything is changed in local mode.
func (p *pushFlags) check(cfg *config.Config) error {
	if (p.Push || p.PushNew) && !cfg.IsRemote() {
		return CommandError(ErrCodeConfig, "--push and --push-new require --remote", workspace.ErrNotRemote)
	}
	return nil
}
