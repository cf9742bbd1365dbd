package combat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/pokebattle/internal/game/combat"
	"github.com/cory-johannsen/pokebattle/internal/game/species"
)

var (
	normalSpecies = &species.Species{ID: 19, Name: "Rattata", Type: species.Normal, BaseHealth: 400}
	fireSpecies   = &species.Species{ID: 4, Name: "Charmander", Type: species.Fire, BaseHealth: 390}
	grassSpecies  = &species.Species{ID: 1, Name: "Bulbasaur", Type: species.Grass, BaseHealth: 450}
	waterSpecies  = &species.Species{ID: 7, Name: "Squirtle", Type: species.Water, BaseHealth: 440}
)

// fixedSrc is a deterministic Source for testing.
// It returns f.val for every Intn call with no bounds clamping.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

// seqSrc returns its values in order, wrapping modulo n, and repeats the last one when exhausted.
type seqSrc struct {
	vals []int
	i    int
}

func (s *seqSrc) Intn(n int) int {
	v := s.vals[len(s.vals)-1]
	if s.i < len(s.vals) {
		v = s.vals[s.i]
		s.i++
	}
	return v % n
}

func makePokemon(t *testing.T, nickname string, sp *species.Species, health int, moves ...combat.Move) *combat.Pokemon {
	t.Helper()
	p, err := combat.RestorePokemon(0, nickname, health, sp.BaseHealth, sp, moves)
	require.NoError(t, err)
	return p
}
