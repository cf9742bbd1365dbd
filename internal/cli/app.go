// Package cli implements the pokebattle command tree on top of roster.Service.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokebattle/internal/game/combat"
	"github.com/cory-johannsen/pokebattle/internal/game/roster"
)

// App bundles what a command needs at run time.
type App struct {
	Service *roster.Service
	// Source drives automatic player choices in --auto battles.
	Source combat.Source
	In     io.Reader
	Out    io.Writer
	Logger *zap.Logger

	lines *bufio.Scanner
}

// Factory builds the App for one command invocation. The returned cleanup
// releases any connections the App holds and must be called exactly once.
type Factory func(cmd *cobra.Command) (*App, func(), error)

type runFunc func(ctx context.Context, app *App, args []string) error

// withApp adapts fn to a cobra RunE, building the App from f first.
func withApp(f Factory, fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := f(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		if app.Out == nil {
			app.Out = cmd.OutOrStdout()
		}
		if app.In == nil {
			app.In = cmd.InOrStdin()
		}
		if app.Logger == nil {
			app.Logger = zap.NewNop()
		}
		return fn(cmd.Context(), app, args)
	}
}

// parseID parses a positional pokemon ID.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid pokemon id %q", arg)
	}
	return id, nil
}

// lookup resolves a positional pokemon ID through the service.
func (a *App) lookup(ctx context.Context, arg string) (*combat.Pokemon, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	return a.Service.Get(ctx, id)
}

// scanner returns the line reader over In, shared by every command run on a.
func (a *App) scanner() *bufio.Scanner {
	if a.lines == nil {
		a.lines = bufio.NewScanner(a.In)
	}
	return a.lines
}
