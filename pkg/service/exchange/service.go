// Package exchange resolves currency conversion rates for transfers.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/payportal/pkg/cache"
	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/metrics"
	"github.com/amirasaad/payportal/pkg/provider"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is the default time-to-live for cached exchange rates
const DefaultCacheTTL = 15 * time.Minute

// RateSource supplies conversion rates to the transfer service.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (*domain.ExchangeRate, error)
}

// Service looks rates up in the cache first and falls back to the
// provider. Concurrent misses for the same pair share one provider call.
type Service struct {
	provider provider.ExchangeRate
	cache    cache.ExchangeRateCache
	cacheTTL time.Duration
	group    singleflight.Group
	logger   *slog.Logger
}

// New creates a new exchange service. A nil cache disables caching.
func New(
	p provider.ExchangeRate,
	c cache.ExchangeRateCache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Service{
		provider: p,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func cacheKey(from, to string) string {
	return fmt.Sprintf("%s:%s", from, to)
}

func identityRate(currency string) *domain.ExchangeRate {
	return &domain.ExchangeRate{
		FromCurrency: currency,
		ToCurrency:   currency,
		Rate:         decimal.NewFromInt(1),
		Source:       "identity",
		LastUpdated:  time.Now().UTC(),
	}
}

// Rate returns the conversion rate for from -> to.
func (s *Service) Rate(
	ctx context.Context,
	from, to string,
) (*domain.ExchangeRate, error) {
	log := s.logger.With("from", from, "to", to)
	if from == to {
		metrics.ExchangeRateLookupsTotal.WithLabelValues("identity").Inc()
		return identityRate(from), nil
	}

	key := cacheKey(from, to)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			// A broken cache should not block transfers.
			log.Warn("exchange rate cache read failed", "error", err)
		} else if cached != nil {
			metrics.ExchangeRateLookupsTotal.WithLabelValues("cache").Inc()
			log.Debug("exchange rate served from cache", "rate", cached.Rate)
			return cached, nil
		}
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.fetch(ctx, from, to)
	})
	if err != nil {
		metrics.ExchangeRateLookupsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ExchangeRateLookupsTotal.WithLabelValues("provider").Inc()
	log.Debug("exchange rate fetched", "shared", shared)
	return v.(*domain.ExchangeRate), nil
}

func (s *Service) fetch(
	ctx context.Context,
	from, to string,
) (*domain.ExchangeRate, error) {
	log := s.logger.With("from", from, "to", to, "provider", s.provider.Name())
	rate, err := s.provider.GetRate(ctx, from, to)
	if err != nil {
		log.Error("exchange rate provider failed", "error", err)
		if errors.Is(err, domain.ErrUnsupportedCurrencyPair) {
			return nil, err
		}
		if errors.Is(err, domain.ErrExchangeRateUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrExchangeRateUnavailable, err)
	}
	if rate == nil || !rate.Rate.IsPositive() {
		return nil, domain.ErrExchangeRateInvalid
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(from, to), rate, s.cacheTTL); err != nil {
			log.Warn("exchange rate cache write failed", "error", err)
		}
	}
	return rate, nil
}
