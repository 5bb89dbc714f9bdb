package redis_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/streamkit/integration/redis"
)

// reservePort grabs an ephemeral port and releases it, leaving an address
// that refuses connections.
func reservePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())
	return port
}

func TestConnect_Validation(t *testing.T) {
	t.Parallel()

	t.Run("empty connection URL", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(context.Background(), redis.Config{})
		require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("malformed connection URL", func(t *testing.T) {
		t.Parallel()

		cfg := redis.Config{ConnectionURL: "http://localhost:6379"}
		_, err := redis.Connect(context.Background(), cfg)
		require.ErrorIs(t, err, redis.ErrFailedToParseConnString)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		cfg := redis.Config{
			ConnectionURL:  fmt.Sprintf("redis://127.0.0.1:%d/0", reservePort(t)),
			RetryAttempts:  1,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: 2 * time.Second,
		}
		_, err := redis.Connect(context.Background(), cfg)
		require.ErrorIs(t, err, redis.ErrNotReady)
	})
}

func TestHealthcheck_Unreachable(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{
		Addr:        fmt.Sprintf("127.0.0.1:%d", reservePort(t)),
		DialTimeout: time.Second,
	})
	t.Cleanup(func() { _ = client.Close() })

	err := redis.Healthcheck(client)(context.Background())
	require.ErrorIs(t, err, redis.ErrHealthcheckFailed)
}

func TestPublisherAndSink_Construction(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:6379"})
	t.Cleanup(func() { _ = client.Close() })

	assert.NotNil(t, redis.Publisher(client, "events"))
	assert.NotNil(t, redis.Sink(context.Background(), client, "events"))
}
