package cache

import (
	"context"
	"time"

	"github.com/amirasaad/payportal/pkg/domain"
)

// ExchangeRateCache defines the interface for caching exchange rates.
// Get returns (nil, nil) on a miss.
type ExchangeRateCache interface {
	Get(ctx context.Context, key string) (*domain.ExchangeRate, error)
	Set(ctx context.Context, key string, rate *domain.ExchangeRate, ttl time.Duration) error
}
