package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithName("Bitcoin").
//	    WithSymbol("BTC").
//	    WithPrice(30000).
//	    Build(t, db)
type AssetBuilder struct {
	ID          string
	Name        string
	Symbol      string
	CoingeckoID string
	Color       string
	Price       float64
	Change24h   float64
	Amount      float64
	AvgBuy      float64
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:          MakeID(),
		Name:        MakeAssetName("Test Coin"),
		Symbol:      MakeSymbol("TST"),
		CoingeckoID: "test-coin",
		Color:       "#627EEA",
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithSymbol sets a custom ticker symbol.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.Symbol = symbol
	return b
}

// WithCoingeckoID sets a custom coin id.
func (b *AssetBuilder) WithCoingeckoID(coingeckoID string) *AssetBuilder {
	b.CoingeckoID = coingeckoID
	return b
}

// WithPrice sets the last known price.
func (b *AssetBuilder) WithPrice(price float64) *AssetBuilder {
	b.Price = price
	return b
}

// WithChange24h sets the 24h change percentage.
func (b *AssetBuilder) WithChange24h(change float64) *AssetBuilder {
	b.Change24h = change
	return b
}

// WithHoldings seeds the cached amount and average buy price.
func (b *AssetBuilder) WithHoldings(amount, avgBuy float64) *AssetBuilder {
	b.Amount = amount
	b.AvgBuy = avgBuy
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO asset (id, name, symbol, coingecko_id, color, price, change_24h, amount, avg_buy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()
	_, err := db.Exec(query,
		b.ID, b.Name, b.Symbol, b.CoingeckoID, b.Color,
		b.Price, b.Change24h, b.Amount, b.AvgBuy,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:          b.ID,
		Name:        b.Name,
		Symbol:      b.Symbol,
		CoingeckoID: b.CoingeckoID,
		Color:       b.Color,
		Price:       b.Price,
		Change24h:   b.Change24h,
		Amount:      b.Amount,
		AvgBuy:      b.AvgBuy,
		CreatedAt:   createdAt,
	}
}

// CreateAsset creates an asset with the given name and symbol and default values.
//
// Example usage:
//
//	asset := testutil.CreateAsset(t, db, "Bitcoin", "BTC")
func CreateAsset(t *testing.T, db *sql.DB, name, symbol string) model.Asset {
	t.Helper()
	return NewAsset().WithName(name).WithSymbol(symbol).Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	transaction := testutil.NewTransaction(asset.ID).
//	    Buy(2, 100).
//	    WithDate("2024-03-01").
//	    Build(t, db)
type TransactionBuilder struct {
	ID      string
	AssetID string
	Type    string
	Amount  float64
	Price   float64
	Fee     float64
	Date    string
	Note    string
}

// NewTransaction creates a TransactionBuilder with sensible defaults
// for the given asset.
func NewTransaction(assetID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:      MakeID(),
		AssetID: assetID,
		Type:    model.TransactionTypeBuy,
		Amount:  1,
		Price:   100,
		Date:    "2024-01-01",
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// Buy marks the transaction as a buy with the given amount and unit price.
func (b *TransactionBuilder) Buy(amount, price float64) *TransactionBuilder {
	b.Type = model.TransactionTypeBuy
	b.Amount = amount
	b.Price = price
	return b
}

// Sell marks the transaction as a sell with the given amount and unit price.
func (b *TransactionBuilder) Sell(amount, price float64) *TransactionBuilder {
	b.Type = model.TransactionTypeSell
	b.Amount = amount
	b.Price = price
	return b
}

// Transfer marks the transaction as a transfer of the given amount.
func (b *TransactionBuilder) Transfer(amount float64) *TransactionBuilder {
	b.Type = model.TransactionTypeTransfer
	b.Amount = amount
	b.Price = 0
	return b
}

// WithFee sets the transaction fee.
func (b *TransactionBuilder) WithFee(fee float64) *TransactionBuilder {
	b.Fee = fee
	return b
}

// WithDate sets the transaction date (YYYY-MM-DD).
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithNote sets a free-form note.
func (b *TransactionBuilder) WithNote(note string) *TransactionBuilder {
	b.Note = note
	return b
}

// Build creates the transaction in the database and returns it.
// seq is assigned by the database, so insertion order is replay order.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, asset_id, type, amount, price, total, fee, date, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()
	total := b.Amount * b.Price
	_, err := db.Exec(query,
		b.ID, b.AssetID, b.Type, b.Amount, b.Price, total, b.Fee, b.Date, b.Note,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test transaction date: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		AssetID:   b.AssetID,
		Type:      b.Type,
		Amount:    b.Amount,
		Price:     b.Price,
		Total:     total,
		Fee:       b.Fee,
		Date:      date,
		Note:      b.Note,
		CreatedAt: createdAt,
	}
}

// CreateBuy records a buy transaction for the asset.
//
// Example usage:
//
//	transaction := testutil.CreateBuy(t, db, asset.ID, 2, 100)
func CreateBuy(t *testing.T, db *sql.DB, assetID string, amount, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(assetID).Buy(amount, price).Build(t, db)
}

// CreateSell records a sell transaction for the asset.
func CreateSell(t *testing.T, db *sql.DB, assetID string, amount, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(assetID).Sell(amount, price).Build(t, db)
}
