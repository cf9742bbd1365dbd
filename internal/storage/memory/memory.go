// Package memory provides process-local implementations of the roster
// storage contracts for ephemeral play.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/cory-johannsen/pokebattle/internal/game/roster"
)

// Store is a roster.Store held in memory. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	nextID int64
	nextMv int64
	recs   map[int64]*roster.PokemonRecord
	order  []int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{recs: make(map[int64]*roster.PokemonRecord)}
}

func clone(rec *roster.PokemonRecord) *roster.PokemonRecord {
	cp := *rec
	cp.Moves = append([]roster.MoveRecord(nil), rec.Moves...)
	return &cp
}

// Add stores a copy of rec and its moves under a new ID.
//
// Postcondition: Returns an error without storing anything if rec is invalid.
func (s *Store) Add(_ context.Context, rec *roster.PokemonRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, fmt.Errorf("adding pokemon: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	cp := clone(rec)
	cp.ID = s.nextID
	for i := range cp.Moves {
		s.nextMv++
		cp.Moves[i].ID = s.nextMv
		cp.Moves[i].PokemonID = cp.ID
	}
	s.recs[cp.ID] = cp
	s.order = append(s.order, cp.ID)
	return cp.ID, nil
}

// Update overwrites everything but the moves of rec.ID.
func (s *Store) Update(_ context.Context, rec *roster.PokemonRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("updating pokemon: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.recs[rec.ID]
	if !ok {
		return fmt.Errorf("updating pokemon %d: %w", rec.ID, roster.ErrPokemonNotFound)
	}
	cur.Nickname = rec.Nickname
	cur.Health = rec.Health
	cur.MaxHealth = rec.MaxHealth
	cur.SpeciesNumber = rec.SpeciesNumber
	return nil
}

// Delete removes rec.ID and its moves.
func (s *Store) Delete(_ context.Context, rec *roster.PokemonRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recs[rec.ID]; !ok {
		return fmt.Errorf("deleting pokemon %d: %w", rec.ID, roster.ErrPokemonNotFound)
	}
	delete(s.recs, rec.ID)
	for i, id := range s.order {
		if id == rec.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Heal sets the health of id to its max health.
func (s *Store) Heal(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.recs[id]
	if !ok {
		return fmt.Errorf("healing pokemon %d: %w", id, roster.ErrPokemonNotFound)
	}
	cur.Health = cur.MaxHealth
	return nil
}

// List returns copies of every record in insertion order.
func (s *Store) List(_ context.Context) ([]*roster.PokemonRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*roster.PokemonRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.recs[id]))
	}
	return out, nil
}

// WinCounter is a roster.WinCounter held in memory.
type WinCounter struct {
	mu   sync.Mutex
	wins int
}

// NewWinCounter creates a WinCounter starting at zero.
func NewWinCounter() *WinCounter { return &WinCounter{} }

// Get returns the current count.
func (w *WinCounter) Get(_ context.Context) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wins, nil
}

// Increment adds one win.
func (w *WinCounter) Increment(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.wins++
	return nil
}
