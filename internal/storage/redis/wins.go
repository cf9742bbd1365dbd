package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// WinCounter stores the win count under a single integer key. It implements
// roster.WinCounter.
type WinCounter struct {
	client Client
	key    string
}

// NewWinCounter creates a WinCounter on client using key.
//
// Precondition: client must be non-nil; key must be non-empty.
func NewWinCounter(client Client, key string) *WinCounter {
	return &WinCounter{client: client, key: key}
}

// Get returns the stored count, or 0 if the key does not exist.
func (w *WinCounter) Get(ctx context.Context) (int, error) {
	n, err := w.client.Get(ctx, w.key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading %s: %w", w.key, err)
	}
	return n, nil
}

// Increment adds one win atomically via INCR.
func (w *WinCounter) Increment(ctx context.Context) error {
	if err := w.client.Incr(ctx, w.key).Err(); err != nil {
		return fmt.Errorf("incrementing %s: %w", w.key, err)
	}
	return nil
}
