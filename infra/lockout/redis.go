// Package lockout stores brute-force counters for the login guard.
package lockout

import (
	"context"
	"strconv"
	"time"

	"github.com/amirasaad/payportal/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements cache.LockoutStore with one Redis hash per key.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a lockout store backed by Redis hashes.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix + "lockout:"}
}

func (s *RedisStore) Get(ctx context.Context, key string) (cache.LockoutState, error) {
	data, err := s.client.HGetAll(ctx, s.prefix+key).Result()
	if err != nil {
		return cache.LockoutState{}, err
	}
	return parseState(data), nil
}

func parseState(data map[string]string) cache.LockoutState {
	state := cache.LockoutState{}
	if raw, ok := data["failures"]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			state.Failures = n
		}
	}
	if raw, ok := data["locked_until"]; ok && raw != "" {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && ms > 0 {
			t := time.UnixMilli(ms).UTC()
			state.LockedUntil = &t
		}
	}
	return state
}

func (s *RedisStore) RecordFailure(
	ctx context.Context,
	key string,
	lockUntil func(failures int) time.Time,
	lifetime time.Duration,
) (cache.LockoutState, error) {
	redisKey := s.prefix + key

	count, err := s.client.HIncrBy(ctx, redisKey, "failures", 1).Result()
	if err != nil {
		return cache.LockoutState{}, err
	}
	state := cache.LockoutState{Failures: int(count)}
	until := lockUntil(int(count))

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if !until.IsZero() {
			p.HSet(ctx, redisKey, "locked_until", until.UnixMilli())
		}
		p.Expire(ctx, redisKey, lifetime)
		return nil
	})
	if err != nil {
		return cache.LockoutState{}, err
	}
	if !until.IsZero() {
		u := until.UTC()
		state.LockedUntil = &u
	}
	return state, nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
