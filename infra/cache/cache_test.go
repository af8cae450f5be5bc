package cache

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRate() *domain.ExchangeRate {
	return &domain.ExchangeRate{
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Rate:         decimal.RequireFromString("0.9234"),
		Source:       "stub",
		LastUpdated:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	got, err := c.Get(ctx, "USD:EUR")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "USD:EUR", sampleRate(), time.Minute))
	got, err = c.Get(ctx, "USD:EUR")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Rate.Equal(decimal.RequireFromString("0.9234")))
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "USD:EUR", sampleRate(), time.Minute))
	now = now.Add(2 * time.Minute)

	got, err := c.Get(ctx, "USD:EUR")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisExchangeRateCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisExchangeRateCache(client, "exr:rate:", slog.Default())
}

func TestRedisCache_GetSet(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t)

	got, err := c.Get(ctx, "USD:EUR")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "USD:EUR", sampleRate(), time.Minute))
	assert.True(t, mr.Exists("exr:rate:USD:EUR"))

	got, err = c.Get(ctx, "USD:EUR")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "USD", got.FromCurrency)
	assert.True(t, got.Rate.Equal(decimal.RequireFromString("0.9234")))
}

func TestRedisCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "USD:EUR", sampleRate(), time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "USD:EUR")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t)
	require.NoError(t, mr.Set("exr:rate:USD:EUR", "not-json"))

	_, err := c.Get(ctx, "USD:EUR")
	assert.Error(t, err)
}
