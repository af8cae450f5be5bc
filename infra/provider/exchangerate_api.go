package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/shopspring/decimal"
)

const (
	exchangeRateAPIName       = "exchangerate-api"
	defaultExchangeRateAPIURL = "https://v6.exchangerate-api.com/v6"
)

// ExchangeRateAPIProvider fetches rates from exchangerate-api.com using the
// v6 pair endpoint.
type ExchangeRateAPIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ExchangeRateAPIPairResponse is the v6 pair conversion payload.
// See: https://www.exchangerate-api.com/docs/pair-conversion-requests
type ExchangeRateAPIPairResponse struct {
	Result             string          `json:"result"`
	TimeLastUpdateUnix int64           `json:"time_last_update_unix"`
	BaseCode           string          `json:"base_code"`
	TargetCode         string          `json:"target_code"`
	ConversionRate     decimal.Decimal `json:"conversion_rate"`
	ErrorType          string          `json:"error-type,omitempty"`
}

// NewExchangeRateAPIProvider creates a new ExchangeRate API provider using config
func NewExchangeRateAPIProvider(
	cfg *config.ExchangeRateApi,
	logger *slog.Logger,
) *ExchangeRateAPIProvider {
	baseURL := strings.TrimRight(cfg.ApiUrl, "/")
	if baseURL == "" {
		baseURL = defaultExchangeRateAPIURL
	}
	return &ExchangeRateAPIProvider{
		apiKey:     cfg.ApiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger,
	}
}

// GetRate fetches the current exchange rate for a currency pair
func (p *ExchangeRateAPIProvider) GetRate(
	ctx context.Context,
	from, to string,
) (*domain.ExchangeRate, error) {
	log := p.logger.With("from", from, "to", to)
	url := fmt.Sprintf("%s/%s/pair/%s/%s", p.baseURL, p.apiKey, from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Error("exchange rate request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrExchangeRateUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("exchange rate API error", "status", resp.StatusCode, "body", string(body))
		var apiErr ExchangeRateAPIPairResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.ErrorType == "unsupported-code" {
			return nil, domain.ErrUnsupportedCurrencyPair
		}
		return nil, fmt.Errorf(
			"%w: API returned status %d",
			domain.ErrExchangeRateUnavailable,
			resp.StatusCode,
		)
	}

	var apiResp ExchangeRateAPIPairResponse
	if err = json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", domain.ErrExchangeRateInvalid, err)
	}
	if apiResp.Result != "success" {
		if apiResp.ErrorType == "unsupported-code" {
			return nil, domain.ErrUnsupportedCurrencyPair
		}
		return nil, fmt.Errorf(
			"%w: API returned result=%s error=%s",
			domain.ErrExchangeRateUnavailable,
			apiResp.Result,
			apiResp.ErrorType,
		)
	}
	if !apiResp.ConversionRate.IsPositive() {
		return nil, domain.ErrExchangeRateInvalid
	}

	updated := time.Now().UTC()
	if apiResp.TimeLastUpdateUnix > 0 {
		updated = time.Unix(apiResp.TimeLastUpdateUnix, 0).UTC()
	}
	log.Debug("exchange rate fetched", "rate", apiResp.ConversionRate)
	return &domain.ExchangeRate{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         apiResp.ConversionRate,
		Source:       exchangeRateAPIName,
		LastUpdated:  updated,
	}, nil
}

// Name returns the provider name
func (p *ExchangeRateAPIProvider) Name() string {
	return exchangeRateAPIName
}
