package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/aliasdex/internal/resolve"
)

// FormsResult is the selectable form labels of one entity.
type FormsResult struct {
	Name string `json:"name"`
	resolve.FormSet
}

// Text renders one label per line, marking the default and ambiguous labels.
func (r FormsResult) Text() string {
	if !r.Found {
		return fmt.Sprintf("no entity named %q", r.Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (#%d)", r.Entity.Name, r.Entity.ID)
	for _, l := range r.Labels {
		b.WriteString("\n  ")
		b.WriteString(l.Text)
		if l.Text == r.Default {
			b.WriteString(" (default)")
		}
		if l.Ambiguous {
			b.WriteString(" [ambiguous]")
		}
	}
	return b.String()
}

// NewFormsCommand creates the forms command.
func NewFormsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms <name>",
		Short: "List the form labels of an entity",
		Long: `List the selectable form labels of an entity. The first label is the
default used by the alias commands when --form is not given.

Example:
  aliasdex forms ニャース --db ./pokemons.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listForms(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func listForms(opts *RootOptions, name string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	ws, _, err := opts.openWorkspace(ctx, cmd, openExisting)
	if err != nil {
		return err
	}
	logger := opts.Logger(cmd)
	defer closeWorkspace(ws, logger)

	fs, err := resolve.NewFormResolver(ws.Store(), logger).Resolve(ctx, name)
	if err != nil {
		return CommandError(ErrCodeDatabase, "failed to resolve forms", err)
	}
	return opts.formatter(cmd).Success(FormsResult{Name: name, FormSet: fs})
}
