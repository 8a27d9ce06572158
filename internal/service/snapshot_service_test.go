package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// TestSnapshotService_Export tests the snapshot export format.
//
// WHY: Exports are the only backup mechanism. They must carry the format
// version and every asset and transaction, oldest-first, so a re-import
// replays identically.
func TestSnapshotService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("exports versioned snapshot with all data", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		asset := testutil.NewAsset().WithSymbol("BTC").Build(t, db)
		testutil.CreateBuy(t, db, asset.ID, 1, 100)
		testutil.CreateSell(t, db, asset.ID, 0.5, 200)

		// Execute
		snapshot, err := svc.Export(ctx)

		// Assert
		if err != nil {
			t.Fatalf("Export() returned unexpected error: %v", err)
		}
		if snapshot.Version != model.SnapshotVersion {
			t.Errorf("Expected version %d, got %d", model.SnapshotVersion, snapshot.Version)
		}
		if snapshot.ExportedAt.IsZero() {
			t.Error("Expected exportedAt to be set")
		}
		if len(snapshot.Assets) != 1 {
			t.Errorf("Expected 1 asset, got %d", len(snapshot.Assets))
		}
		if len(snapshot.Transactions) != 2 {
			t.Errorf("Expected 2 transactions, got %d", len(snapshot.Transactions))
		}
		if snapshot.Transactions[0].Type != "buy" {
			t.Errorf("Expected oldest transaction first, got %s", snapshot.Transactions[0].Type)
		}
	})

	t.Run("exports empty snapshot for empty database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		snapshot, err := svc.Export(ctx)
		if err != nil {
			t.Fatalf("Export() returned unexpected error: %v", err)
		}

		if len(snapshot.Assets) != 0 || len(snapshot.Transactions) != 0 {
			t.Errorf("Expected empty snapshot, got %d assets and %d transactions",
				len(snapshot.Assets), len(snapshot.Transactions))
		}
	})
}

// TestSnapshotService_Import tests restore semantics.
//
// WHY: Imports replace everything, so a malformed snapshot must be rejected
// wholesale before any row changes, and holdings must come from replaying the
// imported log rather than trusting the snapshot's cached values.
func TestSnapshotService_Import(t *testing.T) {
	ctx := context.Background()

	validSnapshot := func() model.Snapshot {
		assetID := testutil.MakeID()
		return model.Snapshot{
			Version:    model.SnapshotVersion,
			ExportedAt: time.Now().UTC(),
			Assets: []model.Asset{
				{
					ID:          assetID,
					Name:        "Bitcoin",
					Symbol:      "BTC",
					CoingeckoID: "bitcoin",
					Color:       "#F7931A",
					// Tampered cache values, replay should fix them.
					Amount: 99,
					AvgBuy: 1,
				},
			},
			Transactions: []model.Transaction{
				{
					ID:      testutil.MakeID(),
					AssetID: assetID,
					Type:    "buy",
					Amount:  2,
					Price:   100,
					Total:   200,
					Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				},
			},
		}
	}

	t.Run("round-trip restores holdings from replay", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		snapshot := validSnapshot()

		result, err := svc.Import(ctx, snapshot)
		if err != nil {
			t.Fatalf("Import() returned unexpected error: %v", err)
		}

		if result.Assets != 1 || result.Transactions != 1 {
			t.Errorf("Expected 1 asset and 1 transaction, got %d and %d", result.Assets, result.Transactions)
		}

		assetRepo := repository.NewAssetRepository(db)
		got, err := assetRepo.GetAsset(ctx, snapshot.Assets[0].ID)
		if err != nil {
			t.Fatalf("GetAsset() returned unexpected error: %v", err)
		}
		if !almostEqual(got.Amount, 2) {
			t.Errorf("Expected replayed amount 2, got %f", got.Amount)
		}
		if !almostEqual(got.AvgBuy, 100) {
			t.Errorf("Expected replayed avgBuy 100, got %f", got.AvgBuy)
		}
	})

	t.Run("import replaces existing data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		old := testutil.NewAsset().WithSymbol("ETH").Build(t, db)
		testutil.CreateBuy(t, db, old.ID, 1, 100)

		_, err := svc.Import(ctx, validSnapshot())
		if err != nil {
			t.Fatalf("Import() returned unexpected error: %v", err)
		}

		assetRepo := repository.NewAssetRepository(db)
		assets, err := assetRepo.GetAssets(ctx)
		if err != nil {
			t.Fatalf("GetAssets() returned unexpected error: %v", err)
		}
		if len(assets) != 1 {
			t.Fatalf("Expected 1 asset after import, got %d", len(assets))
		}
		if assets[0].Symbol != "BTC" {
			t.Errorf("Expected imported asset BTC, got %s", assets[0].Symbol)
		}
	})

	t.Run("rejects wrong version without touching data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		existing := testutil.NewAsset().WithSymbol("ETH").Build(t, db)

		snapshot := validSnapshot()
		snapshot.Version = 99

		_, err := svc.Import(ctx, snapshot)

		var validationErr *validation.Error
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}
		if !errors.As(err, &validationErr) {
			t.Fatalf("Expected validation.Error, got %T: %v", err, err)
		}

		assetRepo := repository.NewAssetRepository(db)
		if _, err := assetRepo.GetAsset(ctx, existing.ID); err != nil {
			t.Errorf("Expected existing asset to survive rejected import: %v", err)
		}
	})

	t.Run("rejects transaction referencing unknown asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		snapshot := validSnapshot()
		snapshot.Transactions[0].AssetID = testutil.MakeID()

		if _, err := svc.Import(ctx, snapshot); err == nil {
			t.Error("Expected error for dangling asset reference, got nil")
		}
	})

	t.Run("rejects invalid transaction type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		snapshot := validSnapshot()
		snapshot.Transactions[0].Type = "airdrop"

		if _, err := svc.Import(ctx, snapshot); err == nil {
			t.Error("Expected error for invalid type, got nil")
		}
	})
}

// TestSnapshotService_ClearAll tests the portfolio reset.
//
// WHY: Clear is destructive and must remove both tables, not just assets.
func TestSnapshotService_ClearAll(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSnapshotService(t, db)
	asset := testutil.NewAsset().Build(t, db)
	testutil.CreateBuy(t, db, asset.ID, 1, 100)

	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() returned unexpected error: %v", err)
	}

	assetRepo := repository.NewAssetRepository(db)
	assets, err := assetRepo.GetAssets(ctx)
	if err != nil {
		t.Fatalf("GetAssets() returned unexpected error: %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("Expected no assets after clear, got %d", len(assets))
	}

	transactionRepo := repository.NewTransactionRepository(db)
	transactions, err := transactionRepo.GetTransactions(ctx)
	if err != nil {
		t.Fatalf("GetTransactions() returned unexpected error: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("Expected no transactions after clear, got %d", len(transactions))
	}
}
