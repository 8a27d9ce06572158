package model

import "time"

// Asset represents a tracked cryptocurrency holding.
//
// Amount and AvgBuy are derived fields: they cache the result of replaying
// the full transaction list and are overwritten on every transaction
// mutation. Price and Change24h are merged in by the price fetcher and are
// never touched by the holdings recalculation.
type Asset struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Symbol         string    `json:"symbol"`
	CoingeckoID    string    `json:"coingeckoId"`
	Color          string    `json:"color"`
	Price          float64   `json:"price"`
	Change24h      float64   `json:"change24h"`
	Amount         float64   `json:"amount"`
	AvgBuy         float64   `json:"avgBuy"`
	PriceUpdatedAt time.Time `json:"priceUpdatedAt,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// AssetResponse represents an asset with computed valuation fields for API
// responses. Value and ProfitLoss are recomputed on every read, never stored.
type AssetResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Symbol         string    `json:"symbol"`
	CoingeckoID    string    `json:"coingeckoId"`
	Color          string    `json:"color"`
	Price          float64   `json:"price"`
	Change24h      float64   `json:"change24h"`
	Amount         float64   `json:"amount"`
	AvgBuy         float64   `json:"avgBuy"`
	Value          float64   `json:"value"`
	ProfitLoss     float64   `json:"profitLoss"`
	PriceUpdatedAt time.Time `json:"priceUpdatedAt,omitempty"`
}

// Quote holds a fetched market quote for one asset.
type Quote struct {
	Price     float64
	Change24h float64
}
