package combat

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/cory-johannsen/pokebattle/internal/game/species"
)

// GenerateMoves draws MaxMoves independent uniform picks from reg's pool and
// drops repeats, keeping the first occurrence of each move.
//
// Precondition: reg and src must be non-nil.
// Postcondition: 1 <= len(result) <= MaxMoves; all moves have distinct names.
func GenerateMoves(reg *MoveRegistry, src Source) []Move {
	pool := reg.Pool()
	seen := make(map[string]bool, MaxMoves)
	moves := make([]Move, 0, MaxMoves)
	for i := 0; i < MaxMoves; i++ {
		m := pool[src.Intn(len(pool))]
		if seen[m.Name()] {
			continue
		}
		seen[m.Name()] = true
		moves = append(moves, m)
	}
	return moves
}

// SetUpEnemy builds a random opponent: a uniformly chosen species at full
// health, nicknamed after its species, with a generated move set. The
// species name is used as is; player nickname rules do not apply to it.
//
// Precondition: cat must hold at least one species; reg and src must be non-nil.
// Postcondition: Returns an unsaved combatant with Health() == MaxHealth(), or an error
// when cat is empty.
func SetUpEnemy(cat *species.Catalog, reg *MoveRegistry, src Source) (*Pokemon, error) {
	all := cat.All()
	if len(all) == 0 {
		return nil, fmt.Errorf("setting up enemy: species catalog is empty")
	}
	sp := all[src.Intn(len(all))]
	return &Pokemon{
		Nickname:  norm.NFC.String(sp.Name),
		Species:   sp,
		Moves:     GenerateMoves(reg, src),
		health:    sp.BaseHealth,
		maxHealth: sp.BaseHealth,
	}, nil
}
