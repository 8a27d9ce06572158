package testutil

import (
	"context"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// MockPriceClient is a mock implementation of coingecko.Client for testing.
// It returns predefined quotes instead of making actual API calls.
type MockPriceClient struct {
	// MockQuotes maps coin ids to the quotes to return
	MockQuotes map[string]model.Quote
	// MockError is the error to return from SimplePrice
	MockError error
	// QueryCount tracks how many times SimplePrice was called
	QueryCount int
	// RequestedIDs records the ids of every call, in order
	RequestedIDs [][]string
}

// NewMockPriceClient creates a new mock price client with default test data.
func NewMockPriceClient() *MockPriceClient {
	return &MockPriceClient{
		MockQuotes: map[string]model.Quote{
			"bitcoin":  {Price: 30000, Change24h: 2.5},
			"ethereum": {Price: 1800, Change24h: -1.2},
		},
	}
}

// SimplePrice returns the configured quotes for the requested ids.
// Ids without a configured quote are omitted, matching the upstream API.
func (m *MockPriceClient) SimplePrice(_ context.Context, ids []string) (map[string]model.Quote, error) {
	m.QueryCount++
	m.RequestedIDs = append(m.RequestedIDs, ids)

	if m.MockError != nil {
		return nil, m.MockError
	}

	quotes := make(map[string]model.Quote, len(ids))
	for _, id := range ids {
		if quote, ok := m.MockQuotes[id]; ok {
			quotes[id] = quote
		}
	}
	return quotes, nil
}

// WithQuote configures the mock to return the given quote for a coin id.
func (m *MockPriceClient) WithQuote(id string, price, change24h float64) *MockPriceClient {
	m.MockQuotes[id] = model.Quote{Price: price, Change24h: change24h}
	return m
}

// WithError configures the mock to return the specified error.
func (m *MockPriceClient) WithError(err error) *MockPriceClient {
	m.MockError = err
	return m
}
