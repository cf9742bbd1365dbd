// Package main provides the pokebattle command-line game.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokebattle/internal/cli"
	"github.com/cory-johannsen/pokebattle/internal/config"
	"github.com/cory-johannsen/pokebattle/internal/game/combat"
	"github.com/cory-johannsen/pokebattle/internal/game/dice"
	"github.com/cory-johannsen/pokebattle/internal/game/roster"
	"github.com/cory-johannsen/pokebattle/internal/game/species"
	"github.com/cory-johannsen/pokebattle/internal/observability"
	"github.com/cory-johannsen/pokebattle/internal/storage/memory"
	"github.com/cory-johannsen/pokebattle/internal/storage/postgres"
	"github.com/cory-johannsen/pokebattle/internal/storage/redis"
)

const healthTimeout = 5 * time.Second

// ephemeralSession is the in-memory roster shared by every --ephemeral App
// built in this process.
var ephemeralSession = sync.OnceValues(func() (*memory.Store, *memory.WinCounter) {
	return memory.NewStore(), memory.NewWinCounter()
})

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(buildApp).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// buildApp loads configuration and wires storage, randomness, and logging for
// one command invocation.
func buildApp(cmd *cobra.Command) (*cli.App, func(), error) {
	ctx := cmd.Context()
	start := time.Now()

	path, _ := cmd.Flags().GetString(cli.FlagConfig)
	v, err := config.New(path)
	if err != nil {
		return nil, nil, err
	}
	if f := cmd.Flags().Lookup(cli.FlagSeed); f != nil && f.Changed {
		if err := v.BindPFlag("battle.seed", f); err != nil {
			return nil, nil, fmt.Errorf("binding seed flag: %w", err)
		}
	}
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return nil, nil, err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger = observability.ForInvocation(logger, cmd.Name())
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = logger.Sync()
	}
	fail := func(err error) (*cli.App, func(), error) {
		cleanup()
		return nil, nil, err
	}

	catalog, err := species.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return fail(err)
	}

	var src dice.Source = dice.NewCryptoSource()
	if cfg.Battle.Seed != 0 {
		src = dice.NewSeededSource(cfg.Battle.Seed)
	}
	src = dice.NewLoggedSource(src, logger)

	var (
		store roster.Store
		wins  roster.WinCounter
	)
	ephemeral, _ := cmd.Flags().GetBool(cli.FlagEphemeral)
	if ephemeral {
		store, wins = ephemeralSession()
	} else {
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, pool.Close)
		if err := pool.Health(ctx, healthTimeout); err != nil {
			return fail(err)
		}
		store = pool.Pokemon()

		switch cfg.Stats.Backend {
		case config.StatsBackendRedis:
			client, err := redis.NewClient(cfg.Redis)
			if err != nil {
				return fail(err)
			}
			closers = append(closers, func() { _ = client.Close() })
			if err := client.Ping(ctx).Err(); err != nil {
				return fail(fmt.Errorf("pinging redis %s: %w", cfg.Redis.Addr, err))
			}
			wins = redis.NewWinCounter(client, cfg.Redis.Key)
		default:
			wins = pool.Stats()
		}
	}

	svc := roster.NewService(store, wins, catalog, combat.DefaultMoves(), src, logger)
	logger.Debug("pokebattle ready",
		zap.Int("species", catalog.Len()),
		zap.Bool("ephemeral", ephemeral),
		zap.String("stats_backend", cfg.Stats.Backend),
		zap.Uint64("seed", cfg.Battle.Seed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &cli.App{Service: svc, Source: src, Logger: logger}, cleanup, nil
}
