package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPlayCommand(f Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Run several commands in one session",
		Long: "Run several commands in one session. Each line is a command such as\n" +
			"\"adopt 7 Shelly\" or \"battle 1\"; \"quit\" ends the session. Storage, randomness,\n" +
			"and input are shared by every command, so --ephemeral rosters last until quit.",
		Args: cobra.NoArgs,
		RunE: withApp(f, func(ctx context.Context, app *App, _ []string) error {
			return app.play(ctx)
		}),
	}
}

// play reads commands from a.In and runs each against a itself until quit or
// end of input. Command errors are reported and the session continues.
//
// Postcondition: Returns nil on quit or end of input, or the context error.
func (a *App) play(ctx context.Context) error {
	session := func(*cobra.Command) (*App, func(), error) { return a, func() {}, nil }
	in := a.scanner()
	for {
		fmt.Fprint(a.Out, "pokebattle> ")
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			fmt.Fprintln(a.Out)
			return nil
		}
		args := strings.Fields(in.Text())
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "quit", "exit":
			return nil
		case "play":
			fmt.Fprintln(a.Out, "Already playing.")
			continue
		}

		root := NewRootCommand(session)
		root.SetArgs(args)
		root.SetOut(a.Out)
		root.SetErr(a.Out)
		if err := root.ExecuteContext(ctx); err != nil {
			fmt.Fprintln(a.Out, "error:", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
