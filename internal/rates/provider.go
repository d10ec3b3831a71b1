// Package rates fetches live currency exchange rates.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valorant-tools/skin-price-tracker/internal/logger"
	"github.com/valorant-tools/skin-price-tracker/internal/models"
)

// BaseCurrency is the reference currency skin prices are converted from.
// The VP baseline is denominated in USD, so the rate table is too.
const BaseCurrency = "USD"

// Provider fetches a current exchange rate table
type Provider interface {
	Name() string
	FetchRates(ctx context.Context) (*models.RateTable, error)
}

// StatusError reports a non-success HTTP status from the rates API
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rates API returned status %d", e.Code)
}

// MissingCurrencyError reports a supported currency absent from the API
// response. It surfaces to the caller instead of silently substituting a
// stale or default rate.
type MissingCurrencyError struct {
	Code string
}

func (e *MissingCurrencyError) Error() string {
	return fmt.Sprintf("rates API response missing currency %s", e.Code)
}

// InvalidRateError reports a supported currency whose rate is zero or
// negative. A non-positive rate can only mean a broken response.
type InvalidRateError struct {
	Code string
	Rate float64
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("rates API returned invalid rate %g for %s", e.Rate, e.Code)
}

// HTTPProvider fetches rates from an ExchangeRate-API style endpoint:
// GET <base-url>/<base-currency> returning {"base_code": ..., "rates": {...}}.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewHTTPProvider creates a provider against the given API base URL
func NewHTTPProvider(baseURL string, timeout time.Duration, log *logger.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (p *HTTPProvider) Name() string {
	return "erapi"
}

type erAPIResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Base     string             `json:"base"`
	Rates    map[string]float64 `json:"rates"`
}

// FetchRates retrieves the current table and requires every supported
// currency to be present in it.
func (p *HTTPProvider) FetchRates(ctx context.Context) (*models.RateTable, error) {
	url := fmt.Sprintf("%s/%s", p.baseURL, BaseCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var data erAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if len(data.Rates) == 0 {
		return nil, fmt.Errorf("rates response contained no rates")
	}

	table := &models.RateTable{
		Base:      BaseCurrency,
		Rates:     data.Rates,
		FetchedAt: time.Now(),
	}

	for _, c := range models.SupportedCurrencies() {
		rate, ok := table.Rate(c.Code)
		if !ok {
			return nil, &MissingCurrencyError{Code: c.Code}
		}
		if rate <= 0 {
			return nil, &InvalidRateError{Code: c.Code, Rate: rate}
		}
	}

	p.log.Infof("fetched %d exchange rates (base %s)", len(table.Rates), table.Base)
	return table, nil
}
