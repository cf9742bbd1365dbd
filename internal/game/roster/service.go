package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pokebattle/internal/game/combat"
	"github.com/cory-johannsen/pokebattle/internal/game/species"
)

// ErrFainted is returned when a combatant with zero health is sent into battle.
var ErrFainted = errors.New("pokemon has fainted")

// Service implements the player's roster operations over a Store and a
// WinCounter. It also serves as the combat.ResultSink of the battles it starts.
type Service struct {
	store       Store
	wins        WinCounter
	catalog     *species.Catalog
	moves       *combat.MoveRegistry
	transformer *Transformer
	src         combat.Source
	logger      *zap.Logger
}

// NewService creates a Service.
//
// Precondition: all arguments must be non-nil.
func NewService(store Store, wins WinCounter, catalog *species.Catalog, moves *combat.MoveRegistry, src combat.Source, logger *zap.Logger) *Service {
	return &Service{
		store:       store,
		wins:        wins,
		catalog:     catalog,
		moves:       moves,
		transformer: NewTransformer(catalog, moves),
		src:         src,
		logger:      logger,
	}
}

// Catalog returns the species catalog the service adopts from.
func (s *Service) Catalog() *species.Catalog { return s.catalog }

// Adopt creates a new combatant of the given species with a random move set
// and stores it.
//
// Precondition: nickname is trimmed before validation.
// Postcondition: Returns the stored combatant with its assigned ID, or an error
// wrapping combat.ErrInvalidNickname or species.ErrUnknownSpecies.
func (s *Service) Adopt(ctx context.Context, nickname string, speciesID int) (*combat.Pokemon, error) {
	sp, err := s.catalog.Get(speciesID)
	if err != nil {
		return nil, fmt.Errorf("adopting: %w", err)
	}
	p, err := combat.NewPokemon(strings.TrimSpace(nickname), sp, combat.GenerateMoves(s.moves, s.src))
	if err != nil {
		return nil, fmt.Errorf("adopting: %w", err)
	}
	rec := s.transformer.ToRecord(p, true)
	id, err := s.store.Add(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("adopting %s: %w", p.Nickname, err)
	}
	p.ID = id
	s.logger.Info("pokemon adopted",
		zap.Int64("id", id),
		zap.String("nickname", p.Nickname),
		zap.String("species", sp.Name),
		zap.Strings("moves", p.MoveNames()),
	)
	return p, nil
}

// List returns every stored combatant in store order. Records that no longer
// resolve against the catalog or move registry are skipped with a warning so
// the rest of the roster stays usable.
//
// Postcondition: Returns an error only when the store itself fails.
func (s *Service) List(ctx context.Context) ([]*combat.Pokemon, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pokemon: %w", err)
	}
	out := make([]*combat.Pokemon, 0, len(recs))
	for _, rec := range recs {
		p, err := s.transformer.ToPokemon(rec)
		if err != nil {
			s.logger.Warn("skipping unreadable pokemon",
				zap.Int64("id", rec.ID),
				zap.String("nickname", rec.Nickname),
				zap.Error(err),
			)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Get returns the stored combatant with the given ID. Only that record is
// converted; other records never affect the result.
//
// Postcondition: Returns ErrPokemonNotFound if no stored combatant matches, or the
// conversion error of the matching record.
func (s *Service) Get(ctx context.Context, id int64) (*combat.Pokemon, error) {
	rec, err := s.record(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.transformer.ToPokemon(rec)
	if err != nil {
		return nil, fmt.Errorf("loading pokemon %d: %w", id, err)
	}
	return p, nil
}

// record returns the stored record with the given ID.
func (s *Service) record(ctx context.Context, id int64) (*PokemonRecord, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pokemon %d: %w", id, err)
	}
	for _, rec := range recs {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("pokemon %d: %w", id, ErrPokemonNotFound)
}

// Heal restores p to full health in the store and in memory.
//
// Postcondition: On success p.Health() == p.MaxHealth().
func (s *Service) Heal(ctx context.Context, p *combat.Pokemon) error {
	if err := s.store.Heal(ctx, p.ID); err != nil {
		return fmt.Errorf("healing %s: %w", p.Nickname, err)
	}
	p.SetHealth(p.MaxHealth())
	s.logger.Info("pokemon healed", zap.Int64("id", p.ID), zap.String("nickname", p.Nickname))
	return nil
}

// Release removes p and its moves from the store.
func (s *Service) Release(ctx context.Context, p *combat.Pokemon) error {
	if err := s.store.Delete(ctx, s.transformer.ToRecord(p, true)); err != nil {
		return fmt.Errorf("releasing %s: %w", p.Nickname, err)
	}
	s.logger.Info("pokemon released", zap.Int64("id", p.ID), zap.String("nickname", p.Nickname))
	return nil
}

// ReleaseByID removes the stored record with the given ID and its moves. The
// record is not resolved against the catalog, so entries whose species or
// moves are gone can still be released.
//
// Postcondition: Returns the released record, or an error wrapping ErrPokemonNotFound.
func (s *Service) ReleaseByID(ctx context.Context, id int64) (*PokemonRecord, error) {
	rec, err := s.record(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("releasing: %w", err)
	}
	if err := s.store.Delete(ctx, rec); err != nil {
		return nil, fmt.Errorf("releasing %s: %w", rec.Nickname, err)
	}
	s.logger.Info("pokemon released", zap.Int64("id", rec.ID), zap.String("nickname", rec.Nickname))
	return rec, nil
}

// Wins returns the player's total battle wins.
func (s *Service) Wins(ctx context.Context) (int, error) {
	n, err := s.wins.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading wins: %w", err)
	}
	return n, nil
}

// StartBattle pits player against a random enemy with a random inventory.
// The returned battle reports its outcome back to this service.
//
// Postcondition: Returns ErrFainted if player has no health left.
func (s *Service) StartBattle(ctx context.Context, player *combat.Pokemon) (*combat.Battle, error) {
	if player.IsDefeated() {
		return nil, fmt.Errorf("%s cannot battle: %w", player.Nickname, ErrFainted)
	}
	enemy, err := combat.SetUpEnemy(s.catalog, s.moves, s.src)
	if err != nil {
		return nil, fmt.Errorf("starting battle: %w", err)
	}
	inv := combat.GenerateInventory(s.src)
	return combat.NewBattle(player, enemy, inv, s.src, s, s.logger)
}

// SavePlayer persists the player's post-battle state.
func (s *Service) SavePlayer(ctx context.Context, player *combat.Pokemon) error {
	return s.store.Update(ctx, s.transformer.ToRecord(player, false))
}

// RecordWin increments the player's win count.
func (s *Service) RecordWin(ctx context.Context) error {
	return s.wins.Increment(ctx)
}
