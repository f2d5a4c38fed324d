package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type sample struct {
	Total int `json:"total"`
}

func TestNilClient_NoOp(t *testing.T) {
	var c *Client
	ctx := context.Background()

	var dst sample
	hit, err := c.GetStats(ctx, &dst)
	assert.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, c.SetStats(ctx, sample{Total: 3}))
	assert.NoError(t, c.InvalidateStats(ctx))
	assert.NoError(t, c.RevokeToken(ctx, "jti", time.Minute))

	revoked, err := c.IsTokenRevoked(ctx, "jti")
	assert.NoError(t, err)
	assert.False(t, revoked)
	assert.NoError(t, c.Close())
}

func startRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestClient_StatsRoundTripAndInvalidate(t *testing.T) {
	addr := startRedis(t)
	c, err := New(&redis.Options{Addr: addr}, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.SetStats(ctx, sample{Total: 7}))

	var got sample
	hit, err := c.GetStats(ctx, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, got.Total)

	require.NoError(t, c.InvalidateStats(ctx))
	hit, err = c.GetStats(ctx, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestClient_TokenDenylist(t *testing.T) {
	addr := startRedis(t)
	c, err := New(&redis.Options{Addr: addr}, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	revoked, err := c.IsTokenRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, c.RevokeToken(ctx, "abc", time.Minute))
	revoked, err = c.IsTokenRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	// expired tokens are not stored
	require.NoError(t, c.RevokeToken(ctx, "old", -time.Second))
	revoked, err = c.IsTokenRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestNew_UsesDatabaseFromURL(t *testing.T) {
	addr := startRedis(t)
	opts, err := redis.ParseURL("redis://" + addr + "/3")
	require.NoError(t, err)

	c, err := New(opts, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.SetStats(ctx, sample{Total: 1}))

	direct := redis.NewClient(&redis.Options{Addr: addr, DB: 3})
	defer direct.Close()
	n, err := direct.Exists(ctx, statsKey).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNew_UnreachableServer(t *testing.T) {
	_, err := New(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond}, time.Minute)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
