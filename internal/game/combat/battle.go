package combat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the battle's position in its lifecycle.
type State int

const (
	InProgress State = iota
	BothDefeated
	PlayerDefeated
	EnemyDefeated
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case BothDefeated:
		return "both defeated"
	case PlayerDefeated:
		return "player defeated"
	case EnemyDefeated:
		return "enemy defeated"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the battle has ended.
func (s State) IsTerminal() bool { return s != InProgress }

// ResultSink receives the effects of a finished battle.
type ResultSink interface {
	// SavePlayer persists the player's post-battle health.
	SavePlayer(ctx context.Context, player *Pokemon) error
	// RecordWin increments the player's win count.
	RecordWin(ctx context.Context) error
}

type nopSink struct{}

func (nopSink) SavePlayer(context.Context, *Pokemon) error { return nil }
func (nopSink) RecordWin(context.Context) error            { return nil }

// TurnResult is what one resolved turn produced.
type TurnResult struct {
	// Messages holds the outcome messages of this turn in order.
	Messages     []string
	State        State
	PlayerHealth int
	EnemyHealth  int
}

// Battle is a single player-versus-enemy session. It is not safe for concurrent use.
type Battle struct {
	// ID identifies the session in logs.
	ID        string
	Player    *Pokemon
	Enemy     *Pokemon
	Inventory *Inventory

	log    []string
	state  State
	src    Source
	sink   ResultSink
	logger *zap.Logger

	winRecorded bool
	playerSaved bool
}

// NewBattle starts a battle between player and enemy.
// A nil inventory is treated as empty; a nil sink discards results.
//
// Precondition: player, enemy, src, and logger must be non-nil.
// Postcondition: Returns an InProgress battle, or ErrNoMoves if enemy knows no moves.
func NewBattle(player, enemy *Pokemon, inv *Inventory, src Source, sink ResultSink, logger *zap.Logger) (*Battle, error) {
	if len(enemy.Moves) == 0 {
		return nil, fmt.Errorf("enemy %s: %w", enemy.Nickname, ErrNoMoves)
	}
	if inv == nil {
		inv = NewInventory()
	}
	if sink == nil {
		sink = nopSink{}
	}
	b := &Battle{
		ID:        uuid.New().String(),
		Player:    player,
		Enemy:     enemy,
		Inventory: inv,
		src:       src,
		sink:      sink,
		logger:    logger,
	}
	b.logger.Info("battle started",
		zap.String("battle_id", b.ID),
		zap.String("player", player.Nickname),
		zap.Int("player_hp", player.Health()),
		zap.String("enemy", enemy.Nickname),
		zap.String("enemy_species", enemy.Species.Name),
		zap.Int("enemy_hp", enemy.Health()),
		zap.Int("items", len(inv.items)),
	)
	return b, nil
}

// State returns the current battle state.
func (b *Battle) State() State { return b.state }

// Log returns every message produced so far, oldest first.
func (b *Battle) Log() []string {
	out := make([]string, len(b.log))
	copy(out, b.log)
	return out
}

// PlayTurn resolves one turn: the player's action, then, if the battle is still
// in progress, a uniformly chosen enemy move against the player.
//
// When the battle ends the result sink is invoked: RecordWin once on
// EnemyDefeated, then SavePlayer in every terminal state. A sink failure is
// returned wrapped, with the turn itself already applied; call Settle to retry.
//
// Precondition: action must be non-nil.
// Postcondition: Returns ErrBattleOver if the battle had already ended, and
// ErrExhaustedItem if action is an item with no uses left; in both cases no
// health changes. Otherwise returns the turn's messages and resulting state.
func (b *Battle) PlayTurn(ctx context.Context, action Usable) (TurnResult, error) {
	if b.state.IsTerminal() {
		return TurnResult{}, ErrBattleOver
	}
	if it, ok := action.(Item); ok && it.Quantity() < 1 {
		return TurnResult{}, fmt.Errorf("using %s: %w", it.Name(), ErrExhaustedItem)
	}

	var messages []string
	msg, err := action.Use(b.Player, b.Enemy)
	if err != nil {
		return TurnResult{}, err
	}
	messages = b.record(messages, b.Player, action.Name(), msg)

	if !b.evaluate() {
		idx := b.src.Intn(len(b.Enemy.Moves))
		move := b.Enemy.Moves[idx]
		msg, err := move.Use(b.Enemy, b.Player)
		if err != nil {
			return b.result(messages), fmt.Errorf("enemy %s using %s: %w", b.Enemy.Nickname, move.Name(), err)
		}
		messages = b.record(messages, b.Enemy, move.Name(), msg)
		b.evaluate()
	}

	res := b.result(messages)
	if b.state.IsTerminal() {
		b.logger.Info("battle ended",
			zap.String("battle_id", b.ID),
			zap.Stringer("state", b.state),
			zap.Int("player_hp", b.Player.Health()),
			zap.Int("enemy_hp", b.Enemy.Health()),
		)
		if err := b.Settle(ctx); err != nil {
			return res, err
		}
	}
	return res, nil
}

// UseMove plays a turn with the player's move at index.
//
// Postcondition: Returns an error without changing state if index is out of range.
func (b *Battle) UseMove(ctx context.Context, index int) (TurnResult, error) {
	if index < 0 || index >= len(b.Player.Moves) {
		return TurnResult{}, fmt.Errorf("%s has no move at index %d", b.Player.Nickname, index)
	}
	return b.PlayTurn(ctx, b.Player.Moves[index])
}

// UseItem plays a turn with the named inventory item.
//
// Postcondition: Returns an error without changing state if the item is not held.
func (b *Battle) UseItem(ctx context.Context, name string) (TurnResult, error) {
	it, err := b.Inventory.Item(name)
	if err != nil {
		return TurnResult{}, err
	}
	return b.PlayTurn(ctx, it)
}

// Settle delivers any pending battle results to the sink. It is a no-op while
// the battle is in progress and once every result has been delivered, so a win
// is never counted twice.
//
// Postcondition: Returns nil once the win (if any) and the player's health are persisted.
func (b *Battle) Settle(ctx context.Context) error {
	if !b.state.IsTerminal() {
		return nil
	}
	var errs []error
	if b.state == EnemyDefeated && !b.winRecorded {
		if err := b.sink.RecordWin(ctx); err != nil {
			errs = append(errs, fmt.Errorf("recording win: %w", err))
		} else {
			b.winRecorded = true
		}
	}
	if !b.playerSaved {
		if err := b.sink.SavePlayer(ctx, b.Player); err != nil {
			errs = append(errs, fmt.Errorf("saving %s: %w", b.Player.Nickname, err))
		} else {
			b.playerSaved = true
		}
	}
	if len(errs) > 0 {
		b.logger.Warn("battle settlement incomplete",
			zap.String("battle_id", b.ID),
			zap.Error(errors.Join(errs...)),
		)
		return fmt.Errorf("settling battle %s: %w", b.ID, errors.Join(errs...))
	}
	return nil
}

// Settled reports whether the battle has ended and all results were delivered.
func (b *Battle) Settled() bool {
	if !b.state.IsTerminal() || !b.playerSaved {
		return false
	}
	return b.state != EnemyDefeated || b.winRecorded
}

// evaluate updates the state from current health.
//
// Postcondition: Returns true iff the battle is now terminal.
func (b *Battle) evaluate() bool {
	switch {
	case b.Player.IsDefeated() && b.Enemy.IsDefeated():
		b.state = BothDefeated
	case b.Player.IsDefeated():
		b.state = PlayerDefeated
	case b.Enemy.IsDefeated():
		b.state = EnemyDefeated
	}
	return b.state.IsTerminal()
}

func (b *Battle) record(messages []string, actor *Pokemon, usable, msg string) []string {
	b.log = append(b.log, msg)
	b.logger.Debug("action resolved",
		zap.String("battle_id", b.ID),
		zap.String("actor", actor.Nickname),
		zap.String("usable", usable),
		zap.Int("player_hp", b.Player.Health()),
		zap.Int("enemy_hp", b.Enemy.Health()),
	)
	return append(messages, msg)
}

func (b *Battle) result(messages []string) TurnResult {
	return TurnResult{
		Messages:     messages,
		State:        b.state,
		PlayerHealth: b.Player.Health(),
		EnemyHealth:  b.Enemy.Health(),
	}
}
