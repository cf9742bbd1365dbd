// Package roster converts between stored combatant records and battle
// combatants, and implements the adopt, heal, release, and battle flows on
// top of the storage contracts.
package roster

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/cory-johannsen/pokebattle/internal/game/combat"
)

// MaxMoveNameLength is the longest move name the store accepts.
const MaxMoveNameLength = 20

// ErrPokemonNotFound is returned when no stored combatant has the requested ID.
var ErrPokemonNotFound = errors.New("pokemon not found")

// MoveRecord is the stored form of one known move.
type MoveRecord struct {
	ID        int64
	PokemonID int64
	Move      string
}

// Validate checks the move name length.
//
// Postcondition: Returns nil iff Move is non-empty and at most MaxMoveNameLength characters.
func (m MoveRecord) Validate() error {
	if m.Move == "" {
		return errors.New("move name must not be empty")
	}
	if utf8.RuneCountInString(m.Move) > MaxMoveNameLength {
		return fmt.Errorf("move name %q shouldn't exceed %d characters", m.Move, MaxMoveNameLength)
	}
	return nil
}

// PokemonRecord is the stored form of a combatant.
//
// ID is set by the store; zero indicates an unsaved record.
type PokemonRecord struct {
	ID            int64
	Nickname      string
	Health        int
	MaxHealth     int
	SpeciesNumber int
	// Moves is populated only when the record carries its owned moves.
	Moves []MoveRecord
}

// Validate checks the nickname and every carried move.
//
// Postcondition: Returns nil, or an error wrapping combat.ErrInvalidNickname or a move error.
func (r *PokemonRecord) Validate() error {
	if _, err := combat.NormalizeNickname(r.Nickname); err != nil {
		return err
	}
	for _, m := range r.Moves {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Store persists combatant records.
type Store interface {
	// Add inserts rec and its carried moves and returns the assigned ID.
	Add(ctx context.Context, rec *PokemonRecord) (int64, error)
	// Update overwrites nickname, health, max health, and species of rec.ID.
	Update(ctx context.Context, rec *PokemonRecord) error
	// Delete removes rec.ID together with its moves.
	Delete(ctx context.Context, rec *PokemonRecord) error
	// Heal sets health to max health for id.
	Heal(ctx context.Context, id int64) error
	// List returns every stored record with its moves.
	List(ctx context.Context) ([]*PokemonRecord, error)
}

// WinCounter persists the player's total battle wins.
type WinCounter interface {
	Get(ctx context.Context) (int, error)
	Increment(ctx context.Context) error
}
