package roster_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokebattle/internal/game/combat"
	"github.com/cory-johannsen/pokebattle/internal/game/roster"
	"github.com/cory-johannsen/pokebattle/internal/game/species"
)

// fixedSrc is a deterministic Source for testing.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

// memStore is an in-memory roster.Store.
type memStore struct {
	nextID     int64
	recs       map[int64]*roster.PokemonRecord
	order      []int64
	failUpdate error
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[int64]*roster.PokemonRecord)}
}

func copyRecord(rec *roster.PokemonRecord) *roster.PokemonRecord {
	cp := *rec
	cp.Moves = append([]roster.MoveRecord(nil), rec.Moves...)
	return &cp
}

func (m *memStore) Add(_ context.Context, rec *roster.PokemonRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	m.nextID++
	cp := copyRecord(rec)
	cp.ID = m.nextID
	for i := range cp.Moves {
		cp.Moves[i].ID = int64(i + 1)
		cp.Moves[i].PokemonID = cp.ID
	}
	m.recs[cp.ID] = cp
	m.order = append(m.order, cp.ID)
	return cp.ID, nil
}

func (m *memStore) Update(_ context.Context, rec *roster.PokemonRecord) error {
	if m.failUpdate != nil {
		return m.failUpdate
	}
	cur, ok := m.recs[rec.ID]
	if !ok {
		return fmt.Errorf("update %d: %w", rec.ID, roster.ErrPokemonNotFound)
	}
	cur.Nickname = rec.Nickname
	cur.Health = rec.Health
	cur.MaxHealth = rec.MaxHealth
	cur.SpeciesNumber = rec.SpeciesNumber
	return nil
}

func (m *memStore) Delete(_ context.Context, rec *roster.PokemonRecord) error {
	if _, ok := m.recs[rec.ID]; !ok {
		return fmt.Errorf("delete %d: %w", rec.ID, roster.ErrPokemonNotFound)
	}
	delete(m.recs, rec.ID)
	for i, id := range m.order {
		if id == rec.ID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memStore) Heal(_ context.Context, id int64) error {
	cur, ok := m.recs[id]
	if !ok {
		return fmt.Errorf("heal %d: %w", id, roster.ErrPokemonNotFound)
	}
	cur.Health = cur.MaxHealth
	return nil
}

func (m *memStore) List(_ context.Context) ([]*roster.PokemonRecord, error) {
	out := make([]*roster.PokemonRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, copyRecord(m.recs[id]))
	}
	return out, nil
}

// memWins is an in-memory roster.WinCounter.
type memWins struct {
	n       int
	failInc error
}

func (w *memWins) Get(_ context.Context) (int, error) { return w.n, nil }

func (w *memWins) Increment(_ context.Context) error {
	if w.failInc != nil {
		return w.failInc
	}
	w.n++
	return nil
}

// testCatalog holds a weak Bulbasaur so enemy fights can end in one hit.
func testCatalog(t *testing.T) *species.Catalog {
	t.Helper()
	cat, err := species.NewCatalog([]*species.Species{
		{ID: 7, Name: "Squirtle", Type: species.Water, BaseHealth: 440},
		{ID: 1, Name: "Bulbasaur", Type: species.Grass, BaseHealth: 20},
		{ID: 4, Name: "Charmander", Type: species.Fire, BaseHealth: 390},
	})
	require.NoError(t, err)
	return cat
}

func newService(t *testing.T, src combat.Source) (*roster.Service, *memStore, *memWins) {
	t.Helper()
	store := newMemStore()
	wins := &memWins{}
	svc := roster.NewService(store, wins, testCatalog(t), combat.DefaultMoves(), src, zap.NewNop())
	return svc, store, wins
}
