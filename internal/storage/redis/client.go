// Package redis keeps the player's win count in Redis.
package redis

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/pokebattle/internal/config"
)

// Client is the subset of go-redis used by this package. Both single-node and
// cluster clients satisfy it.
type Client interface {
	redis.UniversalClient
}

// NewClient creates a single-instance client from cfg. go-redis connects
// lazily, so no network traffic happens here.
//
// Precondition: cfg.Addr must be non-empty.
// Postcondition: Returns an unconnected client or a non-nil error.
func NewClient(cfg config.RedisConfig) (Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis: addr is required")
	}
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	}), nil
}
