package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NamesResult lists entity names matching a typed fragment.
type NamesResult struct {
	Typed string   `json:"typed"`
	Names []string `json:"names"`
}

// Text renders one name per line.
func (r NamesResult) Text() string {
	return strings.Join(r.Names, "\n")
}

// NewNamesCommand creates the names command.
func NewNamesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names [typed]",
		Short: "Suggest entity names containing a fragment",
		Long: `Suggest entity names containing the typed fragment, in entity-number order.
With no argument every name is listed.

Example:
  aliasdex names ポッ --db ./pokemons.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			typed := ""
			if len(args) == 1 {
				typed = args[0]
			}
			return suggestNames(rootOpts, typed, cmd)
		},
	}
	return cmd
}

func suggestNames(opts *RootOptions, typed string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	ws, _, err := opts.openWorkspace(ctx, cmd, openExisting)
	if err != nil {
		return err
	}
	defer closeWorkspace(ws, opts.Logger(cmd))

	names, err := ws.Store().SuggestNames(ctx, typed)
	if err != nil {
		return CommandError(ErrCodeDatabase, "failed to query names", err)
	}
	return opts.formatter(cmd).Success(NamesResult{Typed: typed, Names: names})
}
