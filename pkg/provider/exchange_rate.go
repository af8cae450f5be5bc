package provider

import (
	"context"

	"github.com/amirasaad/payportal/pkg/domain"
)

// ExchangeRate defines the interface for external exchange rate providers.
type ExchangeRate interface {
	// GetRate fetches the current exchange rate for a currency pair.
	GetRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error)

	// Name returns the provider's name for logging and identification.
	Name() string
}
