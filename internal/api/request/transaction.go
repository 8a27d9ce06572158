package request

// CreateTransactionRequest represents the request body for recording a new
// transaction. Total is derived server-side as amount * price.
type CreateTransactionRequest struct {
	AssetID string  `json:"assetId"`
	Type    string  `json:"type"`
	Amount  float64 `json:"amount"`
	Price   float64 `json:"price"`
	Fee     float64 `json:"fee"`
	Date    string  `json:"date"`
	Note    string  `json:"note"`
}

// UpdateTransactionRequest represents the request body for updating an
// existing transaction. All fields are optional; absent fields are left
// unchanged.
type UpdateTransactionRequest struct {
	AssetID *string  `json:"assetId"`
	Type    *string  `json:"type"`
	Amount  *float64 `json:"amount"`
	Price   *float64 `json:"price"`
	Fee     *float64 `json:"fee"`
	Date    *string  `json:"date"`
	Note    *string  `json:"note"`
}
