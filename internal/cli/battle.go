package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokebattle/internal/game/combat"
)

// errInputClosed is returned when stdin ends mid-battle.
var errInputClosed = errors.New("input closed before the battle ended")

func newBattleCommand(f Factory) *cobra.Command {
	var auto bool
	cmd := &cobra.Command{
		Use:   "battle <id>",
		Short: "Battle a random opponent",
		Long: "Battle a random opponent. Each turn pick a move by number or an item by name;\n" +
			"the opponent answers with a random move. With --auto your moves are chosen at random.",
		Args: cobra.ExactArgs(1),
		RunE: withApp(f, func(ctx context.Context, app *App, args []string) error {
			p, err := app.lookup(ctx, args[0])
			if err != nil {
				return err
			}
			b, err := app.Service.StartBattle(ctx, p)
			if err != nil {
				return err
			}
			return app.runBattle(ctx, b, auto)
		}),
	}
	cmd.Flags().BoolVar(&auto, "auto", false, "choose the player's moves at random")
	return cmd
}

// runBattle plays b to completion, reading choices from a.In unless auto.
//
// Postcondition: Returns nil once the battle is terminal and settled.
func (a *App) runBattle(ctx context.Context, b *combat.Battle, auto bool) error {
	fmt.Fprintf(a.Out, "%s\n  vs\n%s\n", b.Player, b.Enemy)

	var scanner *bufio.Scanner
	if !auto {
		scanner = a.scanner()
	}
	for !b.State().IsTerminal() {
		var (
			res combat.TurnResult
			err error
		)
		if auto {
			res, err = a.autoTurn(ctx, b)
		} else {
			printChoices(a.Out, b)
			if !scanner.Scan() {
				if serr := scanner.Err(); serr != nil {
					return fmt.Errorf("reading input: %w", serr)
				}
				return errInputClosed
			}
			res, err = playInput(ctx, b, scanner.Text())
		}
		if err != nil && !b.State().IsTerminal() {
			if auto {
				return err
			}
			fmt.Fprintf(a.Out, "Can't do that: %v\n", err)
			continue
		}
		printTurn(a.Out, res)
		if err != nil {
			a.Logger.Warn("retrying battle settlement", zap.String("battle_id", b.ID), zap.Error(err))
			if serr := b.Settle(ctx); serr != nil {
				return fmt.Errorf("battle finished but results were not saved: %w", serr)
			}
		}
	}
	fmt.Fprintln(a.Out, outcome(b))
	return nil
}

// autoTurn plays a uniformly chosen player move.
func (a *App) autoTurn(ctx context.Context, b *combat.Battle) (combat.TurnResult, error) {
	if len(b.Player.Moves) == 0 {
		return combat.TurnResult{}, fmt.Errorf("%s: %w", b.Player.Nickname, combat.ErrNoMoves)
	}
	return b.UseMove(ctx, a.Source.Intn(len(b.Player.Moves)))
}

// playInput plays the turn named by one input line: a 1-based move number or
// an item name, case-insensitive.
func playInput(ctx context.Context, b *combat.Battle, line string) (combat.TurnResult, error) {
	choice := strings.TrimSpace(line)
	if n, err := strconv.Atoi(choice); err == nil {
		return b.UseMove(ctx, n-1)
	}
	for _, it := range b.Inventory.Items() {
		if strings.EqualFold(it.Name(), choice) {
			return b.PlayTurn(ctx, it)
		}
	}
	return combat.TurnResult{}, fmt.Errorf("unknown choice %q", choice)
}

func printChoices(w io.Writer, b *combat.Battle) {
	fmt.Fprintf(w, "\n%s %d/%d HP | %s %d/%d HP\n",
		b.Player.Nickname, b.Player.Health(), b.Player.MaxHealth(),
		b.Enemy.Nickname, b.Enemy.Health(), b.Enemy.MaxHealth())
	for i, name := range b.Player.MoveNames() {
		fmt.Fprintf(w, "  %d) %s\n", i+1, name)
	}
	for _, it := range b.Inventory.Items() {
		fmt.Fprintf(w, "  %s x%d\n", it.Name(), it.Quantity())
	}
	fmt.Fprint(w, "> ")
}

func printTurn(w io.Writer, res combat.TurnResult) {
	for _, msg := range res.Messages {
		fmt.Fprintln(w, msg)
	}
}

func outcome(b *combat.Battle) string {
	switch b.State() {
	case combat.EnemyDefeated:
		return fmt.Sprintf("%s won the battle!", b.Player.Nickname)
	case combat.PlayerDefeated:
		return fmt.Sprintf("%s fainted. %s won the battle.", b.Player.Nickname, b.Enemy.Nickname)
	case combat.BothDefeated:
		return "Both pokemon fainted. It's a draw."
	default:
		return b.State().String()
	}
}
