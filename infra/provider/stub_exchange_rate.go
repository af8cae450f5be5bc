package provider

import (
	"context"
	"time"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/shopspring/decimal"
)

// StubExchangeRateProvider serves a fixed USD-based rate table. It is used
// when no API key is configured and in tests.
type StubExchangeRateProvider struct {
	usdRates map[string]decimal.Decimal
}

// NewStubExchangeRateProvider creates a provider with the default table.
func NewStubExchangeRateProvider() *StubExchangeRateProvider {
	return &StubExchangeRateProvider{usdRates: map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.92"),
		"GBP": decimal.RequireFromString("0.79"),
		"JPY": decimal.RequireFromString("151.20"),
		"AUD": decimal.RequireFromString("1.52"),
		"ZAR": decimal.RequireFromString("18.45"),
		"CAD": decimal.RequireFromString("1.36"),
		"CHF": decimal.RequireFromString("0.88"),
		"CNY": decimal.RequireFromString("7.24"),
	}}
}

// GetRate derives the cross rate through USD.
func (s *StubExchangeRateProvider) GetRate(
	_ context.Context,
	from, to string,
) (*domain.ExchangeRate, error) {
	fromUSD, ok := s.usdRates[from]
	if !ok {
		return nil, domain.ErrUnsupportedCurrencyPair
	}
	toUSD, ok := s.usdRates[to]
	if !ok {
		return nil, domain.ErrUnsupportedCurrencyPair
	}
	return &domain.ExchangeRate{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         toUSD.DivRound(fromUSD, 6),
		Source:       s.Name(),
		LastUpdated:  time.Now().UTC(),
	}, nil
}

func (s *StubExchangeRateProvider) Name() string {
	return "stub"
}
