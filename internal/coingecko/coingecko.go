// Package coingecko wraps the public CoinGecko price API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// Client is the interface consumed by the price service. It exists so tests
// can substitute a mock without making real API calls.
type Client interface {
	SimplePrice(ctx context.Context, ids []string) (map[string]model.Quote, error)
}

// PriceClient fetches USD prices and 24-hour changes from the CoinGecko
// /simple/price endpoint.
type PriceClient struct {
	client *resty.Client
}

// NewPriceClient creates a CoinGecko client for the given base URL
// (normally https://api.coingecko.com).
func NewPriceClient(baseURL string, timeout time.Duration) *PriceClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &PriceClient{client: client}
}

// SimplePrice fetches current USD price and 24h percent change for the given
// coin ids. Ids absent from the response (unknown coins) are simply missing
// from the returned map; callers keep their last-known prices for those.
func (c *PriceClient) SimplePrice(ctx context.Context, ids []string) (map[string]model.Quote, error) {
	if len(ids) == 0 {
		return map[string]model.Quote{}, nil
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                 strings.Join(ids, ","),
			"vs_currencies":       "usd",
			"include_24hr_change": "true",
		}).
		Get("/api/v3/simple/price")
	if err != nil {
		return nil, fmt.Errorf("failed to query price API: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("price API returned status %d", resp.StatusCode())
	}

	var raw SimplePriceResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode price API response: %w", err)
	}

	quotes := make(map[string]model.Quote, len(raw))
	for id, entry := range raw {
		quotes[id] = model.Quote{
			Price:     entry.USD,
			Change24h: entry.USD24hChange,
		}
	}

	return quotes, nil
}
