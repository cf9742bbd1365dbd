// Package combat implements the creature battle core: combatants, moves,
// items, and turn resolution.
package combat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/cory-johannsen/pokebattle/internal/game/species"
)

const (
	// MinNicknameLength is the shortest allowed nickname, in characters.
	MinNicknameLength = 3
	// MaxNicknameLength is the longest allowed nickname, in characters.
	MaxNicknameLength = 64
	// MaxMoves is the most moves a combatant may know.
	MaxMoves = 4
)

// Pokemon is one battle participant: an individual built from a species.
//
// Invariant: 0 <= Health() <= MaxHealth(); Type() always equals Species.Type.
type Pokemon struct {
	// ID is assigned by storage; zero means not yet persisted.
	ID       int64
	Nickname string
	Species  *species.Species
	// Moves holds up to MaxMoves known moves in display order.
	Moves []Move

	health    int
	maxHealth int
}

// NormalizeNickname returns the NFC form of nickname and validates its length.
//
// Postcondition: Returns the normalized nickname, or an error wrapping ErrInvalidNickname
// when it has fewer than MinNicknameLength or more than MaxNicknameLength characters.
func NormalizeNickname(nickname string) (string, error) {
	n := norm.NFC.String(nickname)
	length := utf8.RuneCountInString(n)
	if length < MinNicknameLength {
		return "", fmt.Errorf("%w: %q should have at least %d characters", ErrInvalidNickname, nickname, MinNicknameLength)
	}
	if length > MaxNicknameLength {
		return "", fmt.Errorf("%w: %q shouldn't exceed %d characters", ErrInvalidNickname, nickname, MaxNicknameLength)
	}
	return n, nil
}

// NewPokemon creates a fresh, unsaved combatant at full health.
//
// Precondition: sp must be non-nil and valid.
// Postcondition: Health() == MaxHealth() == sp.BaseHealth and ID == 0, or an error
// wrapping ErrInvalidNickname.
func NewPokemon(nickname string, sp *species.Species, moves []Move) (*Pokemon, error) {
	return RestorePokemon(0, nickname, sp.BaseHealth, sp.BaseHealth, sp, moves)
}

// RestorePokemon reconstitutes a combatant from stored values.
//
// Precondition: sp must be non-nil.
// Postcondition: Returns the combatant, or an error wrapping ErrInvalidNickname or
// ErrInvalidHealth, or an error when more than MaxMoves moves are given.
func RestorePokemon(id int64, nickname string, health, maxHealth int, sp *species.Species, moves []Move) (*Pokemon, error) {
	nick, err := NormalizeNickname(nickname)
	if err != nil {
		return nil, err
	}
	if maxHealth < 1 {
		return nil, fmt.Errorf("%w: max health must be >= 1, got %d", ErrInvalidHealth, maxHealth)
	}
	if health < 0 || health > maxHealth {
		return nil, fmt.Errorf("%w: health %d outside [0, %d]", ErrInvalidHealth, health, maxHealth)
	}
	if len(moves) > MaxMoves {
		return nil, fmt.Errorf("combatant %q knows %d moves, at most %d allowed", nick, len(moves), MaxMoves)
	}
	known := make([]Move, len(moves))
	copy(known, moves)
	return &Pokemon{
		ID:        id,
		Nickname:  nick,
		Species:   sp,
		Moves:     known,
		health:    health,
		maxHealth: maxHealth,
	}, nil
}

// Health returns current health.
func (p *Pokemon) Health() int { return p.health }

// MaxHealth returns maximum health.
func (p *Pokemon) MaxHealth() int { return p.maxHealth }

// Type returns the combatant's type, which is always its species' type.
func (p *Pokemon) Type() species.Type { return p.Species.Type }

// ImageURL returns the species art reference.
func (p *Pokemon) ImageURL() string { return p.Species.ImageURL }

// IsDefeated reports whether health has reached zero.
func (p *Pokemon) IsDefeated() bool { return p.health <= 0 }

// SetHealth sets health, clamped to [0, MaxHealth()].
//
// Postcondition: 0 <= Health() <= MaxHealth().
func (p *Pokemon) SetHealth(health int) {
	p.health = min(max(health, 0), p.maxHealth)
}

// ApplyDamage reduces health by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: Health() >= 0.
func (p *Pokemon) ApplyDamage(amount int) {
	p.SetHealth(p.health - amount)
}

// Heal raises health by amount, capped at MaxHealth().
//
// Precondition: amount >= 0.
// Postcondition: Health() <= MaxHealth().
func (p *Pokemon) Heal(amount int) {
	p.SetHealth(p.health + amount)
}

// UseMove uses the move at index against target.
//
// Postcondition: Returns the move's outcome message, or an error if index is out of range.
func (p *Pokemon) UseMove(index int, target *Pokemon) (string, error) {
	if index < 0 || index >= len(p.Moves) {
		return "", fmt.Errorf("%s has no move at index %d", p.Nickname, index)
	}
	return p.Moves[index].Use(p, target)
}

// MoveNames returns the names of the known moves in order.
func (p *Pokemon) MoveNames() []string {
	names := make([]string, len(p.Moves))
	for i, m := range p.Moves {
		names[i] = m.Name()
	}
	return names
}

// String returns a short description, e.g. "Sparky (Pikachu, Electric) 35/35 HP [Tackle, Splash]".
func (p *Pokemon) String() string {
	return fmt.Sprintf("%s (%s, %s) %d/%d HP [%s]",
		p.Nickname, p.Species.Name, p.Type(), p.health, p.maxHealth, strings.Join(p.MoveNames(), ", "))
}
