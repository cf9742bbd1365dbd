package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/pokebattle/internal/game/roster"
)

// PokemonRepository stores combatants and their moves. It implements roster.Store.
type PokemonRepository struct {
	db *pgxpool.Pool
}

// NewPokemonRepository creates a PokemonRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPokemonRepository(db *pgxpool.Pool) *PokemonRepository {
	return &PokemonRepository{db: db}
}

// Add inserts rec and every move it carries in one transaction.
//
// Precondition: rec must pass Validate.
// Postcondition: Returns the new row ID; on error nothing is stored.
func (r *PokemonRepository) Add(ctx context.Context, rec *roster.PokemonRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, fmt.Errorf("adding pokemon: %w", err)
	}
	var id int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO pokemon (nickname, health, max_health, species_number)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			rec.Nickname, rec.Health, rec.MaxHealth, rec.SpeciesNumber,
		).Scan(&id); err != nil {
			return fmt.Errorf("inserting pokemon: %w", err)
		}
		for _, m := range rec.Moves {
			if _, err := tx.Exec(ctx,
				`INSERT INTO pokemon_move (pokemon_id, move) VALUES ($1, $2)`,
				id, m.Move,
			); err != nil {
				return fmt.Errorf("inserting move %q: %w", m.Move, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update overwrites the stored nickname, health, max health, and species of rec.ID.
// Moves are not touched.
//
// Postcondition: Returns roster.ErrPokemonNotFound if no row matches.
func (r *PokemonRepository) Update(ctx context.Context, rec *roster.PokemonRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("updating pokemon: %w", err)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE pokemon
		SET nickname = $2, health = $3, max_health = $4, species_number = $5, updated_at = NOW()
		WHERE id = $1`,
		rec.ID, rec.Nickname, rec.Health, rec.MaxHealth, rec.SpeciesNumber,
	)
	if err != nil {
		return fmt.Errorf("updating pokemon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating pokemon %d: %w", rec.ID, roster.ErrPokemonNotFound)
	}
	return nil
}

// Delete removes rec.ID and its moves in one transaction, moves first.
//
// Postcondition: Returns roster.ErrPokemonNotFound if no row matches.
func (r *PokemonRepository) Delete(ctx context.Context, rec *roster.PokemonRecord) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM pokemon_move WHERE pokemon_id = $1`, rec.ID); err != nil {
			return fmt.Errorf("deleting moves: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM pokemon WHERE id = $1`, rec.ID)
		if err != nil {
			return fmt.Errorf("deleting pokemon: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("deleting pokemon %d: %w", rec.ID, roster.ErrPokemonNotFound)
		}
		return nil
	})
}

// Heal sets the stored health of id to its max health.
//
// Postcondition: Returns roster.ErrPokemonNotFound if no row matches.
func (r *PokemonRepository) Heal(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE pokemon SET health = max_health, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("healing pokemon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("healing pokemon %d: %w", id, roster.ErrPokemonNotFound)
	}
	return nil
}

// List returns every stored combatant with its moves, ordered by ID.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *PokemonRepository) List(ctx context.Context) ([]*roster.PokemonRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, nickname, health, max_health, species_number
		FROM pokemon ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing pokemon: %w", err)
	}
	defer rows.Close()

	var recs []*roster.PokemonRecord
	byID := make(map[int64]*roster.PokemonRecord)
	for rows.Next() {
		var rec roster.PokemonRecord
		if err := rows.Scan(&rec.ID, &rec.Nickname, &rec.Health, &rec.MaxHealth, &rec.SpeciesNumber); err != nil {
			return nil, fmt.Errorf("scanning pokemon: %w", err)
		}
		recs = append(recs, &rec)
		byID[rec.ID] = &rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pokemon: %w", err)
	}

	moveRows, err := r.db.Query(ctx, `SELECT id, pokemon_id, move FROM pokemon_move ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing moves: %w", err)
	}
	defer moveRows.Close()
	for moveRows.Next() {
		var m roster.MoveRecord
		if err := moveRows.Scan(&m.ID, &m.PokemonID, &m.Move); err != nil {
			return nil, fmt.Errorf("scanning move: %w", err)
		}
		if rec, ok := byID[m.PokemonID]; ok {
			rec.Moves = append(rec.Moves, m)
		}
	}
	if err := moveRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating moves: %w", err)
	}
	return recs, nil
}
