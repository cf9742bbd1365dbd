package roster_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/pokebattle/internal/game/combat"
	"github.com/cory-johannsen/pokebattle/internal/game/roster"
	"github.com/cory-johannsen/pokebattle/internal/game/species"
)

func TestTransformer_ToRecordWithoutMoves(t *testing.T) {
	cat := testCatalog(t)
	tr := roster.NewTransformer(cat, combat.DefaultMoves())
	sp, err := cat.Get(4)
	require.NoError(t, err)
	p, err := combat.RestorePokemon(9, "Sparky", 100, 390, sp, []combat.Move{combat.Ember()})
	require.NoError(t, err)

	rec := tr.ToRecord(p, false)
	assert.Equal(t, int64(9), rec.ID)
	assert.Equal(t, "Sparky", rec.Nickname)
	assert.Equal(t, 100, rec.Health)
	assert.Equal(t, 390, rec.MaxHealth)
	assert.Equal(t, 4, rec.SpeciesNumber)
	assert.Nil(t, rec.Moves)

	withMoves := tr.ToRecord(p, true)
	require.Len(t, withMoves.Moves, 1)
	assert.Equal(t, roster.MoveRecord{PokemonID: 9, Move: combat.MoveEmber}, withMoves.Moves[0])
}

func TestTransformer_ToPokemonUnknownSpecies(t *testing.T) {
	tr := roster.NewTransformer(testCatalog(t), combat.DefaultMoves())
	_, err := tr.ToPokemon(&roster.PokemonRecord{ID: 1, Nickname: "Ghost", Health: 1, MaxHealth: 1, SpeciesNumber: 999})
	assert.ErrorIs(t, err, species.ErrUnknownSpecies)
}

func TestTransformer_ToPokemonUnknownMove(t *testing.T) {
	tr := roster.NewTransformer(testCatalog(t), combat.DefaultMoves())
	_, err := tr.ToPokemon(&roster.PokemonRecord{
		ID: 1, Nickname: "Sparky", Health: 1, MaxHealth: 1, SpeciesNumber: 4,
		Moves: []roster.MoveRecord{{Move: "Hyper Beam"}},
	})
	assert.ErrorIs(t, err, combat.ErrUnknownMove)
}

func TestTransformer_ToPokemonRejectsHealthAboveMax(t *testing.T) {
	tr := roster.NewTransformer(testCatalog(t), combat.DefaultMoves())
	_, err := tr.ToPokemon(&roster.PokemonRecord{ID: 1, Nickname: "Sparky", Health: 500, MaxHealth: 390, SpeciesNumber: 4})
	assert.ErrorIs(t, err, combat.ErrInvalidHealth)
}

func TestProperty_TransformerRoundTrip(t *testing.T) {
	cat := testCatalog(t)
	reg := combat.DefaultMoves()
	tr := roster.NewTransformer(cat, reg)
	all := cat.All()
	pool := reg.Pool()

	rapid.Check(t, func(rt *rapid.T) {
		sp := all[rapid.IntRange(0, len(all)-1).Draw(rt, "species")]
		nickname := rapid.StringMatching(`[A-Za-z]{3,64}`).Draw(rt, "nickname")
		health := rapid.IntRange(0, sp.BaseHealth).Draw(rt, "health")
		idx := rapid.SliceOfNDistinct(rapid.IntRange(0, len(pool)-1), 0, combat.MaxMoves, rapid.ID[int]).Draw(rt, "moves")
		moves := make([]combat.Move, 0, len(idx))
		for _, i := range idx {
			moves = append(moves, pool[i])
		}
		id := rapid.Int64Range(1, 1<<40).Draw(rt, "id")

		p, err := combat.RestorePokemon(id, nickname, health, sp.BaseHealth, sp, moves)
		if err != nil {
			rt.Fatalf("restore: %v", err)
		}
		back, err := tr.ToPokemon(tr.ToRecord(p, true))
		if err != nil {
			rt.Fatalf("round trip: %v", err)
		}
		if back.ID != p.ID || back.Nickname != p.Nickname || back.Health() != p.Health() ||
			back.MaxHealth() != p.MaxHealth() || back.Species.ID != p.Species.ID {
			rt.Fatalf("round trip mismatch: %v vs %v", back, p)
		}
		want, got := p.MoveNames(), back.MoveNames()
		sort.Strings(want)
		sort.Strings(got)
		if len(want) != len(got) {
			rt.Fatalf("moves: got %v want %v", got, want)
		}
		for i := range want {
			if want[i] != got[i] {
				rt.Fatalf("moves: got %v want %v", got, want)
			}
		}
	})
}
