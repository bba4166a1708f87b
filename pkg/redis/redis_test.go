package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcallahan/scoutdeck/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	return client
}

func TestNewClientDisabled(t *testing.T) {
	client := disabledClient(t)
	assert.False(t, client.Enabled())
	assert.NoError(t, client.Close())
}

func TestRateLimiterDisabled(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "scoutdeck")

	// With Redis disabled every request passes.
	allowed, remaining, err := limiter.Allow(context.Background(), EBayRateLimit)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, EBayRateLimit.Limit, remaining)

	assert.NoError(t, limiter.Wait(context.Background(), EBayRateLimit))
}

func TestCacheDisabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "scoutdeck")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, PlayerStatsKey(1003), map[string]float64{"ops": 0.950}, TTLMedium))

	var dest map[string]float64
	found, err := cache.Get(ctx, PlayerStatsKey(1003), &dest)
	require.NoError(t, err)
	assert.False(t, found, "disabled cache must always miss")
}
