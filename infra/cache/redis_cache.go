package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/redis/go-redis/v9"
)

// RedisExchangeRateCache implements ExchangeRateCache using Redis.
type RedisExchangeRateCache struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// NewRedisExchangeRateCache creates a cache on top of an existing client.
func NewRedisExchangeRateCache(
	client redis.UniversalClient,
	prefix string,
	logger *slog.Logger,
) *RedisExchangeRateCache {
	return &RedisExchangeRateCache{client: client, prefix: prefix, logger: logger}
}

func (r *RedisExchangeRateCache) key(key string) string {
	return r.prefix + key
}

func (r *RedisExchangeRateCache) Get(
	ctx context.Context,
	key string,
) (*domain.ExchangeRate, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key)
		return nil, nil // cache miss
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", key, "error", err)
		return nil, err
	}
	var rate domain.ExchangeRate
	if err := json.Unmarshal(val, &rate); err != nil {
		r.logger.Error("Redis cache unmarshal error", "key", key, "error", err)
		return nil, err
	}
	r.logger.Debug("Redis cache hit", "key", key, "rate", rate.Rate)
	return &rate, nil
}

func (r *RedisExchangeRateCache) Set(
	ctx context.Context,
	key string,
	rate *domain.ExchangeRate,
	ttl time.Duration,
) error {
	data, err := json.Marshal(rate)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "key", key, "error", err)
		return err
	}
	if err = r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", key, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "key", key, "rate", rate.Rate, "ttl", ttl)
	return nil
}
