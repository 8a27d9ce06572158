package model

import "time"

// Transaction types. Transfers are recorded for history only and have no
// effect on holdings or cost basis.
const (
	TransactionTypeBuy      = "buy"
	TransactionTypeSell     = "sell"
	TransactionTypeTransfer = "transfer"
)

// Transaction represents a single portfolio transaction.
//
// Seq is assigned by the database on insert and fixes the canonical
// processing order for holdings recalculation (oldest-first by insertion).
// Total is stored redundantly as Amount x Price. Fee is informational only
// and is not netted into the cost basis.
type Transaction struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"-"`
	AssetID   string    `json:"assetId"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Price     float64   `json:"price"`
	Total     float64   `json:"total"`
	Fee       float64   `json:"fee"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction enriched with asset data for
// API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	AssetID     string    `json:"assetId"`
	AssetName   string    `json:"assetName,omitempty"`
	AssetSymbol string    `json:"assetSymbol,omitempty"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Price       float64   `json:"price"`
	Total       float64   `json:"total"`
	Fee         float64   `json:"fee"`
	Date        time.Time `json:"date"`
	Note        string    `json:"note,omitempty"`
}

// TransactionSuggestion is a best-effort transaction guess produced by the
// parser. It is never committed directly; the caller must confirm it by
// creating a transaction through the regular API.
type TransactionSuggestion struct {
	Type   string  `json:"type"`
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
	Note   string  `json:"note,omitempty"`
}
