package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/aliasdex/internal/store"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	pushFlags
}

// SeedResult counts the rows loaded from a fixture.
type SeedResult struct {
	Fixture  string `json:"fixture"`
	Entities int    `json:"entities"`
	Forms    int    `json:"forms"`
	Aliases  int    `json:"aliases"`
	PushedTo string `json:"pushed_to,omitempty"`
}

// Text renders a one-line summary.
func (r SeedResult) Text() string {
	line := fmt.Sprintf("loaded %d entities, %d forms, %d aliases from %s", r.Entities, r.Forms, r.Aliases, r.Fixture)
	if r.PushedTo != "" {
		line += "\npushed to " + r.PushedTo
	}
	return line
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Load reference rows from a YAML fixture",
		Long: `Load entities, forms and aliases from a YAML fixture in one transaction.
A missing local database file is created.

Fixture format:
  entities:
    - { name: ポッポ, entity_id: 16 }
  forms:
    - { entity_id: 16, form_id: 0 }
  aliases:
    - { entity_id: 16, form_id: 0, alias: トリッピー }

Example:
  aliasdex seed ./testdata/pidgey.yaml --db ./pokemons.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedDatabase(opts, args[0], cmd)
		},
	}

	opts.pushFlags.register(cmd)

	return cmd
}

func seedDatabase(opts *SeedOptions, path string, cmd *cobra.Command) error {
	fx, err := store.LoadFixtureFile(path)
	if err != nil {
		return CommandError(ErrCodeConfig, "failed to load fixture", err)
	}

	ctx := commandContext(cmd)
	ws, cfg, err := opts.openWorkspace(ctx, cmd, openOrCreate)
	if err != nil {
		return err
	}
	logger := opts.Logger(cmd)
	defer closeWorkspace(ws, logger)

	if err := opts.pushFlags.check(cfg); err != nil {
		return err
	}
	if err := ws.Store().LoadFixture(ctx, fx); err != nil {
		return CommandError(ErrCodeDatabase, "failed to load fixture", err)
	}
	logger.Info("fixture loaded", "path", path,
		"entities", len(fx.Entities), "forms", len(fx.Forms), "aliases", len(fx.Aliases))

	result := SeedResult{
		Fixture:  path,
		Entities: len(fx.Entities),
		Forms:    len(fx.Forms),
		Aliases:  len(fx.Aliases),
	}
	if result.PushedTo, err = opts.pushFlags.publish(ctx, ws, logger); err != nil {
		return err
	}
	return opts.formatter(cmd).Success(result)
}
