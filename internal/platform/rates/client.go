package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/helvita/ledger-backend/internal/apperrors"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Client fetches live conversion rates from an exchangerate-api compatible
// endpoint: GET {baseURL}/{CUR} returns {"base": "CUR", "rates": {...}}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure Client implements the RateProvider port
var _ portssvc.RateProvider = (*Client)(nil)

// NewClient creates a live-rate client. timeout bounds each request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ratesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// GetRates returns the conversion rates from baseCurrency to every quoted
// currency. Failures wrap apperrors.ErrExternalService so callers can fall
// back to static tables.
func (c *Client) GetRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.ToUpper(baseCurrency))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: rate provider request failed: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: rate provider returned status %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode rate provider response: %v", apperrors.ErrExternalService, err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("%w: rate provider returned no rates for %s", apperrors.ErrExternalService, baseCurrency)
	}
	return body.Rates, nil
}
