package exchangerateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsproviders "github.com/temidayo/currency-exchange-service/internal/core/ports/providers"
)

const defaultTimeout = 10 * time.Second

// Client fetches quotes from an exchangeratesapi.io style JSON endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	name       string
	httpClient *http.Client
}

// NewClient creates a provider client for the given endpoint. The name is
// recorded on every snapshot the ingestor stores from this source.
func NewClient(baseURL, apiKey, name string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		name:    name,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Ensure implementation matches interface
var _ portsproviders.RateSource = (*Client)(nil)

type latestResponse struct {
	Base  string                 `json:"base"`
	Date  string                 `json:"date"`
	Rates map[string]json.Number `json:"rates"`
	Error json.RawMessage        `json:"error"`
}

// FetchLatest returns the provider's latest quotes against the pivot currency.
func (c *Client) FetchLatest(ctx context.Context, pivot domain.CurrencyCode) (map[domain.CurrencyCode]decimal.Decimal, error) {
	query := url.Values{}
	query.Set("base", string(pivot))

	payload, err := c.getLatest(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("%w: response missing rates data", apperrors.ErrProvider)
	}

	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(payload.Rates))
	for rawCode, rawRate := range payload.Rates {
		code, err := domain.ParseCurrencyCode(rawCode)
		if err != nil {
			// Keys that are not three letter codes can never be supported quotes.
			continue
		}
		rate, err := decimal.NewFromString(rawRate.String())
		if err != nil {
			return nil, fmt.Errorf("%w: unparseable rate %q for %s", apperrors.ErrProvider, rawRate.String(), code)
		}
		rates[code] = rate
	}

	return rates, nil
}

// Name identifies this source in snapshot source tags.
func (c *Client) Name() string {
	return c.name
}

// CheckHealth verifies connectivity and the API key with a plain latest request.
func (c *Client) CheckHealth(ctx context.Context) error {
	_, err := c.getLatest(ctx, url.Values{})
	return err
}

func (c *Client) getLatest(ctx context.Context, query url.Values) (*latestResponse, error) {
	query.Set("apiKey", c.apiKey)
	endpoint := fmt.Sprintf("%s/latest?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request to %s failed: %w", apperrors.ErrProvider, c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", apperrors.ErrProvider, resp.StatusCode, c.name)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var payload latestResponse
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", apperrors.ErrProvider, err)
	}

	if len(payload.Error) > 0 && string(payload.Error) != "null" {
		return nil, fmt.Errorf("%w: provider returned error: %s", apperrors.ErrProvider, payload.Error)
	}

	return &payload, nil
}
