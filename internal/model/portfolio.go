package model

import "time"

// PortfolioSummary aggregates the full portfolio state for the overview.
// TotalValue and TotalProfitLoss are recomputed on every read from the
// per-asset amount, average buy price and last known market price.
type PortfolioSummary struct {
	TotalValue      float64         `json:"totalValue"`
	TotalCost       float64         `json:"totalCost"`
	TotalProfitLoss float64         `json:"totalProfitLoss"`
	Assets          []AssetResponse `json:"assets"`
	Prices          PriceStatus     `json:"prices"`
}

// PriceStatus reports the outcome of the most recent price refresh.
// Error is a dismissible banner message; last-known prices are kept when a
// refresh fails.
type PriceStatus struct {
	LastRefresh time.Time `json:"lastRefresh,omitempty"`
	Error       string    `json:"error,omitempty"`
}
