package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/pokebattle/internal/config"
	"github.com/cory-johannsen/pokebattle/internal/storage/redis"
)

// NewRedis starts an in-process Redis server and returns it with a connected
// client. Both are closed when the test ends.
func NewRedis(t *testing.T) (*miniredis.Miniredis, redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := redis.NewClient(config.RedisConfig{Addr: mr.Addr(), PoolSize: 2})
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}
