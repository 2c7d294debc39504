package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/aliasdex/internal/resolve"
)

// AliasOptions holds flags shared by the alias subcommands.
type AliasOptions struct {
	*RootOptions
	Form string
	Yes  bool
	pushFlags
}

// AliasListResult is the alias list of one (entity, form) selection.
type AliasListResult struct {
	Name      string            `json:"name"`
	Selection resolve.Selection `json:"selection"`
	Aliases   []string          `json:"aliases"`
}

// Text renders one alias per line.
func (r AliasListResult) Text() string {
	if !r.Selection.Found {
		return fmt.Sprintf("no entity named %q", r.Name)
	}
	return strings.Join(r.Aliases, "\n")
}

// AliasChangeResult reports the outcome of add, edit or delete.
type AliasChangeResult struct {
	Action    string            `json:"action"`
	Selection resolve.Selection `json:"selection"`
	Alias     string            `json:"alias"`
	NewAlias  string            `json:"new_alias,omitempty"`
	Rows      int64             `json:"rows"`
	Cancelled bool              `json:"cancelled,omitempty"`
	PushedTo  string            `json:"pushed_to,omitempty"`
}

// Text renders a one-line summary.
func (r AliasChangeResult) Text() string {
	target := fmt.Sprintf("%s (%s)", r.Selection.Entity.Name, r.Selection.Label)
	var line string
	switch {
	case r.Cancelled:
		line = "cancelled; nothing changed"
	case r.Action == "add":
		line = fmt.Sprintf("added %s to %s", r.Alias, target)
	case r.Action == "edit":
		line = fmt.Sprintf("renamed %s to %s in %s: %d row(s)", r.Alias, r.NewAlias, target, r.Rows)
	default:
		line = fmt.Sprintf("deleted %s from %s: %d row(s)", r.Alias, target, r.Rows)
	}
	if r.PushedTo != "" {
		line += fmt.Sprintf("\npushed to %s", r.PushedTo)
	}
	return line
}

// NewAliasCommand creates the alias command group.
func NewAliasCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "List and edit the aliases of an entity form",
		Long: `List and edit the aliases of an entity form.

The form is chosen with --form using a label shown by 'aliasdex forms';
without --form the entity's default label is used.

Example:
  aliasdex alias add ポッポ トリッピー --db ./pokemons.db
  aliasdex alias list ニャース --form アローラのすがた --remote <share-link>`,
	}

	cmd.AddCommand(newAliasListCommand(rootOpts))
	cmd.AddCommand(newAliasAddCommand(rootOpts))
	cmd.AddCommand(newAliasEditCommand(rootOpts))
	cmd.AddCommand(newAliasDeleteCommand(rootOpts))

	return cmd
}

func newAliasListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AliasOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:           "list <name>",
		Short:         "List the aliases of an entity form",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAliases(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Form, "form", "", "form label (default: the entity's first label)")
	return cmd
}

func newAliasAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AliasOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:           "add <name> <alias>",
		Short:         "Add an alias to an entity form",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeAlias(opts, "add", args[0], args[1], "", cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Form, "form", "", "form label (default: the entity's first label)")
	opts.pushFlags.register(cmd)
	return cmd
}

func newAliasEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AliasOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:           "edit <name> <old-alias> <new-alias>",
		Short:         "Rename an alias of an entity form",
		Long:          "Rename an alias of an entity form. Every row with the old text is renamed.",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeAlias(opts, "edit", args[0], args[1], args[2], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Form, "form", "", "form label (default: the entity's first label)")
	opts.pushFlags.register(cmd)
	return cmd
}

func newAliasDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AliasOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:           "delete <name> <alias>",
		Short:         "Delete an alias of an entity form",
		Long:          "Delete an alias of an entity form after confirmation. Every row with the text is removed.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeAlias(opts, "delete", args[0], args[1], "", cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Form, "form", "", "form label (default: the entity's first label)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask for confirmation")
	opts.pushFlags.register(cmd)
	return cmd
}

// selectForm resolves name and the --form label into a Selection.
func selectForm(ctx context.Context, st resolve.Store, name, form string, logger *slog.Logger) (resolve.Selection, error) {
	fs, err := resolve.NewFormResolver(st, logger).Resolve(ctx, name)
	if err != nil {
		return resolve.Selection{}, CommandError(ErrCodeDatabase, "failed to resolve forms", err)
	}
	sel, err := resolve.NewAliasResolver(st, logger).SelectForm(ctx, fs, form)
	if err != nil {
		return resolve.Selection{}, CommandError(ErrCodeDatabase, "failed to resolve form", err)
	}
	return sel, nil
}

func listAliases(opts *AliasOptions, name string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	ws, _, err := opts.openWorkspace(ctx, cmd, openExisting)
	if err != nil {
		return err
	}
	logger := opts.Logger(cmd)
	defer closeWorkspace(ws, logger)

	sel, err := selectForm(ctx, ws.Store(), name, opts.Form, logger)
	if err != nil {
		return err
	}
	aliases, err := resolve.NewAliasResolver(ws.Store(), logger).List(ctx, sel)
	if err != nil {
		return CommandError(ErrCodeDatabase, "failed to list aliases", err)
	}
	return opts.formatter(cmd).Success(AliasListResult{Name: name, Selection: sel, Aliases: aliases})
}

func changeAlias(opts *AliasOptions, action, name, text, newText string, cmd *cobra.Command) error {
	if text == "" || (action == "edit" && newText == "") {
		return NewExitError(ExitFailure, "alias text must not be empty")
	}

	ctx := commandContext(cmd)
	ws, cfg, err := opts.openWorkspace(ctx, cmd, openExisting)
	if err != nil {
		return err
	}
	logger := opts.Logger(cmd)
	defer closeWorkspace(ws, logger)

	if err := opts.pushFlags.check(cfg); err != nil {
		return err
	}

	sel, err := selectForm(ctx, ws.Store(), name, opts.Form, logger)
	if err != nil {
		return err
	}
	if !sel.Found {
		return &ExitError{Code: ExitFailure, ErrCode: ErrCodeNotFound, Message: fmt.Sprintf("no entity named %q", name)}
	}

	result := AliasChangeResult{Action: action, Selection: sel, Alias: text, NewAlias: newText}
	aliases := resolve.NewAliasResolver(ws.Store(), logger)

	switch action {
	case "add":
		err = aliases.Add(ctx, sel, text)
		result.Rows = 1
	case "edit":
		result.Rows, err = aliases.Edit(ctx, sel, text, newText)
	case "delete":
		if !opts.Yes {
			prompt := fmt.Sprintf("本当に '%s' を削除しますか？", text)
			ok, cerr := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt)
			if cerr != nil {
				return WrapExitError(ExitFailure, "failed to read confirmation", cerr)
			}
			if !ok {
				logger.Info("delete cancelled", "alias", text)
				result.Cancelled = true
				return opts.formatter(cmd).Success(result)
			}
		}
		result.Rows, err = aliases.Delete(ctx, sel, text)
	}
	if err != nil {
		return CommandError(ErrCodeDatabase, fmt.Sprintf("failed to %s alias", action), err)
	}

	if result.PushedTo, err = opts.pushFlags.publish(ctx, ws, logger); err != nil {
		return err
	}
	return opts.formatter(cmd).Success(result)
}

// confirm writes prompt to w and reads a yes/no answer from r.
// Anything but y or yes, including end of input, is a no.
func confirm(r io.Reader, w io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
