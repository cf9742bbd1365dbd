package roster

import (
	"fmt"

	"github.com/cory-johannsen/pokebattle/internal/game/combat"
	"github.com/cory-johannsen/pokebattle/internal/game/species"
)

// Transformer converts between PokemonRecord and combat.Pokemon. It holds no
// mutable state.
type Transformer struct {
	catalog *species.Catalog
	moves   *combat.MoveRegistry
}

// NewTransformer creates a Transformer resolving species from catalog and move
// names from moves.
//
// Precondition: catalog and moves must be non-nil.
func NewTransformer(catalog *species.Catalog, moves *combat.MoveRegistry) *Transformer {
	return &Transformer{catalog: catalog, moves: moves}
}

// ToPokemon reconstitutes a combatant from rec.
//
// Precondition: rec must be non-nil.
// Postcondition: Returns the combatant, or an error wrapping species.ErrUnknownSpecies,
// combat.ErrUnknownMove, combat.ErrInvalidNickname, or combat.ErrInvalidHealth.
func (t *Transformer) ToPokemon(rec *PokemonRecord) (*combat.Pokemon, error) {
	sp, err := t.catalog.Get(rec.SpeciesNumber)
	if err != nil {
		return nil, fmt.Errorf("converting pokemon %d: %w", rec.ID, err)
	}
	moves := make([]combat.Move, 0, len(rec.Moves))
	for _, mr := range rec.Moves {
		m, err := t.moves.Lookup(mr.Move)
		if err != nil {
			return nil, fmt.Errorf("converting pokemon %d: %w", rec.ID, err)
		}
		moves = append(moves, m)
	}
	p, err := combat.RestorePokemon(rec.ID, rec.Nickname, rec.Health, rec.MaxHealth, sp, moves)
	if err != nil {
		return nil, fmt.Errorf("converting pokemon %d: %w", rec.ID, err)
	}
	return p, nil
}

// ToRecord converts p to its stored form. Moves are included only when
// withMoves is true.
//
// Precondition: p must be non-nil.
// Postcondition: The returned record's Moves is nil when withMoves is false.
func (t *Transformer) ToRecord(p *combat.Pokemon, withMoves bool) *PokemonRecord {
	rec := &PokemonRecord{
		ID:            p.ID,
		Nickname:      p.Nickname,
		Health:        p.Health(),
		MaxHealth:     p.MaxHealth(),
		SpeciesNumber: p.Species.ID,
	}
	if withMoves {
		rec.Moves = make([]MoveRecord, 0, len(p.Moves))
		for _, m := range p.Moves {
			rec.Moves = append(rec.Moves, t.MoveRecord(p.ID, m))
		}
	}
	return rec
}

// MoveRecord converts one move owned by pokemonID to its stored form.
func (t *Transformer) MoveRecord(pokemonID int64, m combat.Move) MoveRecord {
	return MoveRecord{PokemonID: pokemonID, Move: m.Name()}
}
