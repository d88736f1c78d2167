package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestCredentialRedisRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}
	ctx := context.Background()

	// Start Redis container
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	defer func() { _ = redisC.Terminate(ctx) }()

	// Get container host and port
	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	require.NoError(t, rdb.Ping(ctx).Err())

	t.Run("empty store", func(t *testing.T) {
		repo := NewCredentialRedisRepository(rdb, "empty", 0)

		got, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("save, load and delete", func(t *testing.T) {
		repo := NewCredentialRedisRepository(rdb, "authToken", 0)

		require.NoError(t, repo.Save(ctx, "tok-1"))
		got, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "tok-1", got)

		require.NoError(t, repo.Save(ctx, "tok-2"))
		got, err = repo.Load(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "tok-2", got)

		ttl, err := rdb.TTL(ctx, credentialKeyPrefix+"authToken").Result()
		assert.NoError(t, err)
		assert.Equal(t, time.Duration(-1), ttl)

		require.NoError(t, repo.Delete(ctx))
		got, err = repo.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, got)

		assert.NoError(t, repo.Delete(ctx))
	})

	t.Run("credential expires", func(t *testing.T) {
		repo := NewCredentialRedisRepository(rdb, "short", 2*time.Second)

		require.NoError(t, repo.Save(ctx, "tok"))

		// Wait for expiration (2s)
		time.Sleep(3 * time.Second)

		got, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}
