package service_test

import (
	"context"
	"testing"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

// TestPortfolioService_GetSummary tests portfolio aggregate computation.
//
// WHY: Totals are derived on every read and never stored. The summary is the
// main dashboard payload, so the arithmetic across assets has to be right,
// including the degenerate empty-portfolio case.
func TestPortfolioService_GetSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("returns zero totals for empty portfolio", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		// Execute
		summary, err := svc.GetSummary(ctx)

		// Assert
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}
		if summary.TotalValue != 0 || summary.TotalCost != 0 || summary.TotalProfitLoss != 0 {
			t.Errorf("Expected zero totals, got value %f cost %f pnl %f",
				summary.TotalValue, summary.TotalCost, summary.TotalProfitLoss)
		}
		if len(summary.Assets) != 0 {
			t.Errorf("Expected no assets, got %d", len(summary.Assets))
		}
	})

	t.Run("sums valuations across assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		// 2 BTC at 30000 bought at 25000, 10 ETH at 1800 bought at 2000
		testutil.NewAsset().WithSymbol("BTC").WithPrice(30000).WithHoldings(2, 25000).Build(t, db)
		testutil.NewAsset().WithSymbol("ETH").WithPrice(1800).WithHoldings(10, 2000).Build(t, db)

		summary, err := svc.GetSummary(ctx)
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}

		if !almostEqual(summary.TotalValue, 78000) {
			t.Errorf("Expected total value 78000, got %f", summary.TotalValue)
		}
		if !almostEqual(summary.TotalCost, 70000) {
			t.Errorf("Expected total cost 70000, got %f", summary.TotalCost)
		}
		if !almostEqual(summary.TotalProfitLoss, 8000) {
			t.Errorf("Expected total profit 8000, got %f", summary.TotalProfitLoss)
		}
	})

	t.Run("computes per-asset value and profit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		testutil.NewAsset().WithSymbol("BTC").WithPrice(30000).WithHoldings(0.5, 20000).Build(t, db)

		summary, err := svc.GetSummary(ctx)
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}

		if len(summary.Assets) != 1 {
			t.Fatalf("Expected 1 asset, got %d", len(summary.Assets))
		}
		asset := summary.Assets[0]
		if !almostEqual(asset.Value, 15000) {
			t.Errorf("Expected value 15000, got %f", asset.Value)
		}
		if !almostEqual(asset.ProfitLoss, 5000) {
			t.Errorf("Expected profit 5000, got %f", asset.ProfitLoss)
		}
	})

	t.Run("includes price refresh status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		summary, err := svc.GetSummary(ctx)
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}

		if summary.Prices.Error != "" {
			t.Errorf("Expected no price error, got %q", summary.Prices.Error)
		}
	})
}
