package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/pokebattle/internal/game/species"
)

// Persistent flag names read by Factory implementations.
const (
	FlagConfig    = "config"
	FlagEphemeral = "ephemeral"
	FlagSeed      = "seed"
)

// NewRootCommand returns the pokebattle command tree. Every subcommand obtains
// its App from f.
func NewRootCommand(f Factory) *cobra.Command {
	root := &cobra.Command{
		Use:           "pokebattle",
		Short:         "Adopt pokemon and battle random opponents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(FlagConfig, "configs/dev.yaml", "path to configuration file")
	root.PersistentFlags().Bool(FlagEphemeral, false, "keep pokemon and wins in memory; they last until the process exits, so pair it with play")
	root.PersistentFlags().Uint64(FlagSeed, 0, "seed for reproducible battles (0 = crypto random)")

	root.AddCommand(
		newSpeciesCommand(f),
		newAdoptCommand(f),
		newListCommand(f),
		newHealCommand(f),
		newReleaseCommand(f),
		newWinsCommand(f),
		newBattleCommand(f),
		newPlayCommand(f),
	)
	return root
}

func newSpeciesCommand(f Factory) *cobra.Command {
	var typeName string
	cmd := &cobra.Command{
		Use:   "species",
		Short: "List adoptable species",
		Args:  cobra.NoArgs,
		RunE: withApp(f, func(_ context.Context, app *App, _ []string) error {
			cat := app.Service.Catalog()
			list := cat.All()
			if typeName != "" {
				t, err := species.ParseType(typeName)
				if err != nil {
					return err
				}
				list = cat.ByType(t)
			}
			if len(list) == 0 {
				fmt.Fprintln(app.Out, "No species found.")
				return nil
			}
			for _, sp := range list {
				fmt.Fprintf(app.Out, "#%-4d %-12s %-9s HP %d\n", sp.ID, sp.Name, sp.Type, sp.BaseHealth)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&typeName, "type", "", "only list species of this type")
	return cmd
}

func newAdoptCommand(f Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "adopt <species-id> <nickname>",
		Short: "Adopt a pokemon of the given species",
		Args:  cobra.MinimumNArgs(2),
		RunE: withApp(f, func(ctx context.Context, app *App, args []string) error {
			speciesID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid species id %q", args[0])
			}
			p, err := app.Service.Adopt(ctx, strings.Join(args[1:], " "), speciesID)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Adopted #%d %s\n", p.ID, p)
			return nil
		}),
	}
}

func newListCommand(f Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your pokemon",
		Args:  cobra.NoArgs,
		RunE: withApp(f, func(ctx context.Context, app *App, _ []string) error {
			all, err := app.Service.List(ctx)
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Fprintln(app.Out, "No pokemon adopted yet.")
				return nil
			}
			for _, p := range all {
				fmt.Fprintf(app.Out, "#%d %s\n", p.ID, p)
			}
			return nil
		}),
	}
}

func newHealCommand(f Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "heal <id>",
		Short: "Restore a pokemon to full health",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(f, func(ctx context.Context, app *App, args []string) error {
			p, err := app.lookup(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Service.Heal(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "%s is back to %d/%d HP.\n", p.Nickname, p.Health(), p.MaxHealth())
			return nil
		}),
	}
}

func newReleaseCommand(f Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "release <id>",
		Short: "Release a pokemon",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(f, func(ctx context.Context, app *App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rec, err := app.Service.ReleaseByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "%s was released.\n", rec.Nickname)
			return nil
		}),
	}
}

func newWinsCommand(f Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "wins",
		Short: "Show total battle wins",
		Args:  cobra.NoArgs,
		RunE: withApp(f, func(ctx context.Context, app *App, _ []string) error {
			n, err := app.Service.Wins(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Wins: %d\n", n)
			return nil
		}),
	}
}
