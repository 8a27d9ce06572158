// Package request defines the request body structures for the API endpoints.
package request

// CreateAssetRequest represents the request body for creating a new asset.
// Amount and avgBuy may seed holdings for assets entered without a
// transaction history.
type CreateAssetRequest struct {
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	CoingeckoID string   `json:"coingeckoId"`
	Color       string   `json:"color"`
	Amount      *float64 `json:"amount"`
	AvgBuy      *float64 `json:"avgBuy"`
}

// UpdateAssetRequest represents the request body for updating an existing
// asset. All fields are optional; absent fields are left unchanged.
type UpdateAssetRequest struct {
	Name        *string  `json:"name"`
	Symbol      *string  `json:"symbol"`
	CoingeckoID *string  `json:"coingeckoId"`
	Color       *string  `json:"color"`
	Amount      *float64 `json:"amount"`
	AvgBuy      *float64 `json:"avgBuy"`
}
