package holdings

import (
	"math"
	"testing"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func asset(id string) model.Asset {
	return model.Asset{ID: id, Name: "Test Asset " + id, Symbol: "TST" + id}
}

func buy(assetID string, amount, price float64) model.Transaction {
	return model.Transaction{
		AssetID: assetID,
		Type:    model.TransactionTypeBuy,
		Amount:  amount,
		Price:   price,
		Total:   amount * price,
	}
}

func sell(assetID string, amount, price float64) model.Transaction {
	return model.Transaction{
		AssetID: assetID,
		Type:    model.TransactionTypeSell,
		Amount:  amount,
		Price:   price,
		Total:   amount * price,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestReplay_AveragesBuysByVolume(t *testing.T) {
	assets := []model.Asset{asset("btc")}

	t.Run("single buy sets amount and avgBuy", func(t *testing.T) {
		positions := Replay(assets, []model.Transaction{buy("btc", 2, 100)})

		pos := positions["btc"]
		if !almostEqual(pos.Amount, 2) {
			t.Errorf("Expected amount 2, got %f", pos.Amount)
		}
		if !almostEqual(pos.AvgBuy, 100) {
			t.Errorf("Expected avgBuy 100, got %f", pos.AvgBuy)
		}
	})

	t.Run("two buys produce volume-weighted average", func(t *testing.T) {
		positions := Replay(assets, []model.Transaction{
			buy("btc", 1, 100),
			buy("btc", 1, 200),
		})

		pos := positions["btc"]
		if !almostEqual(pos.Amount, 2) {
			t.Errorf("Expected amount 2, got %f", pos.Amount)
		}
		if !almostEqual(pos.AvgBuy, 150) {
			t.Errorf("Expected avgBuy 150, got %f", pos.AvgBuy)
		}
	})

	t.Run("avgBuy equals sum(amount*price)/sum(amount) for all-buy sequences", func(t *testing.T) {
		txs := []model.Transaction{
			buy("btc", 0.5, 40000),
			buy("btc", 1.5, 30000),
			buy("btc", 0.25, 60000),
		}

		var totalCost, totalAmount float64
		for _, tx := range txs {
			totalCost += tx.Total
			totalAmount += tx.Amount
		}

		pos := Replay(assets, txs)["btc"]
		if !almostEqual(pos.AvgBuy, totalCost/totalAmount) {
			t.Errorf("Expected avgBuy %f, got %f", totalCost/totalAmount, pos.AvgBuy)
		}
	})
}

func TestReplay_SellKeepsCostBasis(t *testing.T) {
	assets := []model.Asset{asset("btc")}

	t.Run("sell reduces amount without touching avgBuy", func(t *testing.T) {
		positions := Replay(assets, []model.Transaction{
			buy("btc", 2, 100),
			sell("btc", 1, 180),
		})

		pos := positions["btc"]
		if !almostEqual(pos.Amount, 1) {
			t.Errorf("Expected amount 1, got %f", pos.Amount)
		}
		if !almostEqual(pos.AvgBuy, 100) {
			t.Errorf("Expected avgBuy unchanged at 100, got %f", pos.AvgBuy)
		}
	})

	t.Run("selling more than held floors amount at zero", func(t *testing.T) {
		positions := Replay(assets, []model.Transaction{
			buy("btc", 1, 100),
			sell("btc", 5, 100),
		})

		pos := positions["btc"]
		if pos.Amount != 0 {
			t.Errorf("Expected amount floored at 0, got %f", pos.Amount)
		}
		if pos.Amount < 0 || pos.AvgBuy < 0 {
			t.Error("Expected amount and avgBuy to never be negative")
		}
	})

	t.Run("amount reaching zero keeps the asset in the result", func(t *testing.T) {
		positions := Replay(assets, []model.Transaction{
			buy("btc", 1, 100),
			sell("btc", 1, 100),
		})

		if _, ok := positions["btc"]; !ok {
			t.Error("Expected asset to remain in result with zero amount")
		}
	})
}

func TestReplay_TransfersHaveNoNumericEffect(t *testing.T) {
	assets := []model.Asset{asset("eth")}

	withTransfer := Replay(assets, []model.Transaction{
		buy("eth", 10, 2000),
		{AssetID: "eth", Type: model.TransactionTypeTransfer, Amount: 5, Price: 0},
	})
	withoutTransfer := Replay(assets, []model.Transaction{
		buy("eth", 10, 2000),
	})

	if withTransfer["eth"] != withoutTransfer["eth"] {
		t.Errorf("Expected transfer to have no effect: got %+v, want %+v",
			withTransfer["eth"], withoutTransfer["eth"])
	}
}

func TestReplay_SkipsUnknownAssets(t *testing.T) {
	assets := []model.Asset{asset("btc")}

	positions := Replay(assets, []model.Transaction{
		buy("btc", 1, 100),
		buy("deleted-asset", 50, 10),
	})

	if len(positions) != 1 {
		t.Errorf("Expected 1 position, got %d", len(positions))
	}

	pos := positions["btc"]
	if !almostEqual(pos.Amount, 1) || !almostEqual(pos.AvgBuy, 100) {
		t.Errorf("Expected orphaned transaction to be excluded, got %+v", pos)
	}
}

func TestReplay_Idempotent(t *testing.T) {
	assets := []model.Asset{asset("btc"), asset("eth")}
	txs := []model.Transaction{
		buy("btc", 1, 100),
		buy("eth", 2, 50),
		sell("btc", 0.5, 120),
		buy("btc", 1, 200),
		{AssetID: "eth", Type: model.TransactionTypeTransfer, Amount: 1},
	}

	first := Replay(assets, txs)
	second := Replay(assets, txs)

	for id, pos := range first {
		if second[id] != pos {
			t.Errorf("Expected identical result on replay for %s: %+v vs %+v", id, pos, second[id])
		}
	}
}

func TestReplay_RemovalLeavesNoResidual(t *testing.T) {
	assets := []model.Asset{asset("btc")}
	base := []model.Transaction{
		buy("btc", 1, 100),
		buy("btc", 1, 300),
	}
	extra := sell("btc", 0.5, 400)

	// Replaying with the extra transaction and then without it must match a
	// run that never saw it.
	_ = Replay(assets, append(append([]model.Transaction{}, base...), extra))
	after := Replay(assets, base)
	never := Replay(assets, base)

	if after["btc"] != never["btc"] {
		t.Errorf("Expected removal to leave no residual effect: %+v vs %+v", after["btc"], never["btc"])
	}
}

func TestApply_PassesMetadataThrough(t *testing.T) {
	assets := []model.Asset{
		{ID: "btc", Name: "Bitcoin", Symbol: "BTC", Color: "#F7931A", Price: 50000, Change24h: 2.5},
	}

	out := Apply(assets, []model.Transaction{buy("btc", 2, 30000)})

	if len(out) != 1 {
		t.Fatalf("Expected 1 asset, got %d", len(out))
	}
	if out[0].Name != "Bitcoin" || out[0].Symbol != "BTC" || out[0].Price != 50000 || out[0].Change24h != 2.5 {
		t.Errorf("Expected metadata to pass through unchanged, got %+v", out[0])
	}
	if !almostEqual(out[0].Amount, 2) || !almostEqual(out[0].AvgBuy, 30000) {
		t.Errorf("Expected derived amount 2 and avgBuy 30000, got %+v", out[0])
	}

	// Input slice must not be mutated
	if assets[0].Amount != 0 {
		t.Error("Expected input assets to be left untouched")
	}
}
