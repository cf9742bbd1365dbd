package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository keeps the player's win count in the single-row stats table.
// It implements roster.WinCounter.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a StatsRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Get returns the stored win count, or 0 if the stats row does not exist yet.
func (r *StatsRepository) Get(ctx context.Context) (int, error) {
	var wins int
	err := r.db.QueryRow(ctx, `SELECT player_wins FROM stats WHERE id = 1`).Scan(&wins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("querying wins: %w", err)
	}
	return wins, nil
}

// Increment adds one win atomically, creating the stats row if needed.
func (r *StatsRepository) Increment(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO stats (id, player_wins) VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET player_wins = stats.player_wins + 1`)
	if err != nil {
		return fmt.Errorf("incrementing wins: %w", err)
	}
	return nil
}
