package provider

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPIProvider(t *testing.T, handler http.HandlerFunc) *ExchangeRateAPIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewExchangeRateAPIProvider(&config.ExchangeRateApi{
		ApiKey:      "test-key",
		ApiUrl:      srv.URL + "/v6/",
		HTTPTimeout: 2 * time.Second,
	}, slog.Default())
}

func TestExchangeRateAPIProvider_GetRate(t *testing.T) {
	p := newTestAPIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/test-key/pair/USD/EUR", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","time_last_update_unix":1700000000,` +
			`"base_code":"USD","target_code":"EUR","conversion_rate":0.9234}`))
	})

	rate, err := p.GetRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.9234", rate.Rate.String())
	assert.Equal(t, "USD", rate.FromCurrency)
	assert.Equal(t, "EUR", rate.ToCurrency)
	assert.Equal(t, "exchangerate-api", rate.Source)
	assert.Equal(t, int64(1700000000), rate.LastUpdated.Unix())
}

func TestExchangeRateAPIProvider_UnsupportedCode(t *testing.T) {
	p := newTestAPIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
	})

	_, err := p.GetRate(context.Background(), "USD", "XXX")
	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrencyPair)
}

func TestExchangeRateAPIProvider_ServerError(t *testing.T) {
	p := newTestAPIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.GetRate(context.Background(), "USD", "EUR")
	assert.ErrorIs(t, err, domain.ErrExchangeRateUnavailable)
}

func TestExchangeRateAPIProvider_ResultError(t *testing.T) {
	p := newTestAPIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","error-type":"invalid-key"}`))
	})

	_, err := p.GetRate(context.Background(), "USD", "EUR")
	assert.ErrorIs(t, err, domain.ErrExchangeRateUnavailable)
}

func TestExchangeRateAPIProvider_NonPositiveRate(t *testing.T) {
	p := newTestAPIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","conversion_rate":0}`))
	})

	_, err := p.GetRate(context.Background(), "USD", "EUR")
	assert.ErrorIs(t, err, domain.ErrExchangeRateInvalid)
}

func TestStubExchangeRateProvider(t *testing.T) {
	p := NewStubExchangeRateProvider()

	rate, err := p.GetRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.92", rate.Rate.String())

	rate, err = p.GetRate(context.Background(), "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "1.086957", rate.Rate.String())

	_, err = p.GetRate(context.Background(), "USD", "XXX")
	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrencyPair)
	assert.Equal(t, "stub", p.Name())
}
