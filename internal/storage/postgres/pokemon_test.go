package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/pokebattle/internal/game/roster"
	"github.com/cory-johannsen/pokebattle/internal/storage/postgres"
	"github.com/cory-johannsen/pokebattle/internal/testutil"
)

func setupPokemonRepo(t *testing.T) (*postgres.PokemonRepository, *pgxpool.Pool) {
	t.Helper()
	db := testutil.NewPool(t)
	return postgres.NewPokemonRepository(db), db
}

func makeRecord(nickname string, moves ...string) *roster.PokemonRecord {
	rec := &roster.PokemonRecord{
		Nickname:      nickname,
		Health:        390,
		MaxHealth:     390,
		SpeciesNumber: 4,
	}
	for _, m := range moves {
		rec.Moves = append(rec.Moves, roster.MoveRecord{Move: m})
	}
	return rec
}

func TestPokemonRepository(t *testing.T) {
	repo, db := setupPokemonRepo(t)
	ctx := context.Background()

	t.Run("AddAndList", func(t *testing.T) {
		testutil.Reset(t, db)
		id, err := repo.Add(ctx, makeRecord("Sparky", "Ember", "Tackle"))
		require.NoError(t, err)
		assert.Greater(t, id, int64(0))

		recs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		got := recs[0]
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Sparky", got.Nickname)
		assert.Equal(t, 390, got.Health)
		assert.Equal(t, 390, got.MaxHealth)
		assert.Equal(t, 4, got.SpeciesNumber)
		require.Len(t, got.Moves, 2)
		assert.Equal(t, "Ember", got.Moves[0].Move)
		assert.Equal(t, "Tackle", got.Moves[1].Move)
		assert.Equal(t, id, got.Moves[0].PokemonID)
	})

	t.Run("AddRejectsInvalidRecord", func(t *testing.T) {
		testutil.Reset(t, db)
		_, err := repo.Add(ctx, makeRecord("Al"))
		assert.Error(t, err)
		_, err = repo.Add(ctx, makeRecord("Sparky", "A Move Name Far Too Long"))
		assert.Error(t, err)

		recs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("ListOrdersByID", func(t *testing.T) {
		testutil.Reset(t, db)
		for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
			_, err := repo.Add(ctx, makeRecord(name))
			require.NoError(t, err)
		}
		recs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "Alpha", recs[0].Nickname)
		assert.Equal(t, "Charlie", recs[2].Nickname)
		assert.Empty(t, recs[0].Moves)
	})

	t.Run("Update", func(t *testing.T) {
		testutil.Reset(t, db)
		id, err := repo.Add(ctx, makeRecord("Sparky", "Ember"))
		require.NoError(t, err)

		rec := makeRecord("Blaze")
		rec.ID = id
		rec.Health = 12
		require.NoError(t, repo.Update(ctx, rec))

		recs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Blaze", recs[0].Nickname)
		assert.Equal(t, 12, recs[0].Health)
		assert.Len(t, recs[0].Moves, 1, "update leaves moves untouched")
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		testutil.Reset(t, db)
		rec := makeRecord("Ghost")
		rec.ID = 999
		assert.ErrorIs(t, repo.Update(ctx, rec), roster.ErrPokemonNotFound)
	})

	t.Run("Heal", func(t *testing.T) {
		testutil.Reset(t, db)
		rec := makeRecord("Sparky")
		rec.Health = 1
		id, err := repo.Add(ctx, rec)
		require.NoError(t, err)

		require.NoError(t, repo.Heal(ctx, id))
		recs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, 390, recs[0].Health)

		assert.ErrorIs(t, repo.Heal(ctx, id+100), roster.ErrPokemonNotFound)
	})

	t.Run("DeleteRemovesMoves", func(t *testing.T) {
		testutil.Reset(t, db)
		id, err := repo.Add(ctx, makeRecord("Sparky", "Ember", "Splash"))
		require.NoError(t, err)
		keep, err := repo.Add(ctx, makeRecord("Shelly", "Bubble"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, &roster.PokemonRecord{ID: id}))

		var moves int
		require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM pokemon_move WHERE pokemon_id = $1`, id).Scan(&moves))
		assert.Zero(t, moves)

		recs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, keep, recs[0].ID)

		assert.ErrorIs(t, repo.Delete(ctx, &roster.PokemonRecord{ID: id}), roster.ErrPokemonNotFound)
	})
}
