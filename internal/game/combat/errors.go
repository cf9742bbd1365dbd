package combat

import "errors"

var (
	// ErrInvalidNickname is returned when a nickname is shorter than 3 or longer than 64 characters.
	ErrInvalidNickname = errors.New("invalid nickname")
	// ErrInvalidHealth is returned when health values violate 0 <= health <= maxHealth, maxHealth >= 1.
	ErrInvalidHealth = errors.New("invalid health")
	// ErrExhaustedItem is returned when an item with no remaining uses is used.
	ErrExhaustedItem = errors.New("exhausted item")
	// ErrUnknownMove is returned when a move name is not in the move registry.
	ErrUnknownMove = errors.New("unknown move")
	// ErrNoMoves is returned when a combatant that must act knows no moves.
	ErrNoMoves = errors.New("combatant knows no moves")
	// ErrBattleOver is returned when a turn is requested on a finished battle.
	ErrBattleOver = errors.New("battle is over")
)
