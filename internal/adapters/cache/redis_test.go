package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ledgerkeep/ledgerkeep/internal/adapters/cache"
	"github.com/ledgerkeep/ledgerkeep/internal/core/ports"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (ports.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewRedisCache(client), mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	in := payload{Name: "trial_balance", Count: 3}
	require.NoError(t, c.SetJSON(ctx, "report:tb:2024-01-31", in, time.Hour))

	var out payload
	require.NoError(t, c.GetJSON(ctx, "report:tb:2024-01-31", &out))
	assert.Equal(t, in, out)
}

func TestRedisCache_MissReturnsSentinel(t *testing.T) {
	c, _ := newTestCache(t)

	var out payload
	err := c.GetJSON(context.Background(), "absent", &out)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "report:pl", payload{Name: "pl"}, time.Minute))

	mr.FastForward(2 * time.Minute)

	var out payload
	err := c.GetJSON(ctx, "report:pl", &out)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "a", payload{}, time.Hour))
	require.NoError(t, c.SetJSON(ctx, "b", payload{}, time.Hour))
	require.NoError(t, c.Delete(ctx, "a", "b", "missing"))

	var out payload
	assert.ErrorIs(t, c.GetJSON(ctx, "a", &out), ports.ErrCacheMiss)
	assert.ErrorIs(t, c.GetJSON(ctx, "b", &out), ports.ErrCacheMiss)
}
