package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrExchangeRateUnavailable is returned when no rate can be obtained.
	ErrExchangeRateUnavailable = errors.New("exchange rate service unavailable")
	// ErrUnsupportedCurrencyPair is returned when the provider does not
	// quote the requested pair.
	ErrUnsupportedCurrencyPair = errors.New("unsupported currency pair")
	// ErrExchangeRateInvalid is returned when a provider quotes a
	// non-positive or unparsable rate.
	ErrExchangeRateInvalid = errors.New("invalid exchange rate received")
)

// ExchangeRate is a quoted conversion rate between two currencies.
type ExchangeRate struct {
	FromCurrency string          `json:"from"`
	ToCurrency   string          `json:"to"`
	Rate         decimal.Decimal `json:"rate"`
	Source       string          `json:"source"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}
