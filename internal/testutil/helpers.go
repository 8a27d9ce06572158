package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/coingecko"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)

	return service.NewAssetService(db, assetRepo)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	return service.NewTransactionService(db, transactionRepo, assetRepo)
}

// NewTestPriceService creates a PriceService backed by the given price
// client, usually a MockPriceClient.
func NewTestPriceService(t *testing.T, db *sql.DB, client coingecko.Client) *service.PriceService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)

	return service.NewPriceService(client, assetRepo)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	priceService := service.NewPriceService(NewMockPriceClient(), assetRepo)

	return service.NewPortfolioService(assetRepo, priceService)
}

// NewTestParserService creates a ParserService with the given configuration.
// Pass an empty ParserConfig for rules-only parsing.
func NewTestParserService(t *testing.T, db *sql.DB, cfg config.ParserConfig) *service.ParserService {
	t.Helper()

	settingRepo := repository.NewSettingRepository(db)

	return service.NewParserService(cfg, settingRepo)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	transactionService := service.NewTransactionService(db, transactionRepo, assetRepo)

	return service.NewSnapshotService(db, assetRepo, transactionRepo, transactionService)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("BTC")
//	// Returns: "BTC1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TST"
	}
	return base + randomAlphanumeric(4)
}

// MakeAssetName generates a unique asset name for testing.
//
// Example usage:
//
//	name := testutil.MakeAssetName("Test Coin")
//	// Returns: "Test Coin ABC123"
func MakeAssetName(base string) string {
	if base == "" {
		base = "Coin"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
