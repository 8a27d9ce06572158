// Package holdings derives per-asset holdings from the transaction log.
//
// The package is a leaf: it has no side effects and no dependencies beyond
// the domain models. Replaying the same input twice yields identical output,
// which the store relies on when recomputing the cached amount and average
// buy price on every transaction mutation.
package holdings

import "github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"

// Position is the derived state for a single asset: the currently held
// amount and the volume-weighted average buy price.
type Position struct {
	Amount float64
	AvgBuy float64
}

// Replay processes the transaction list oldest-first and returns the derived
// position for every asset ID present in assets.
//
// Rules:
//   - buy: adds amount and total to the running sums; avgBuy becomes
//     totalCost/totalAmount while totalAmount > 0
//   - sell: reduces the amount, floored at zero; avgBuy is left unchanged
//     (the cost basis of the remaining units does not move on a sale)
//   - transfer: recorded for history only, no numeric effect
//   - transactions referencing an asset ID not present in assets are skipped
//
// Transactions must already be in canonical order (oldest-first by
// insertion). Fees are informational and never netted into the cost basis.
func Replay(assets []model.Asset, transactions []model.Transaction) map[string]Position {
	totalCost := make(map[string]float64, len(assets))
	positions := make(map[string]Position, len(assets))

	for _, asset := range assets {
		positions[asset.ID] = Position{}
	}

	for _, tx := range transactions {
		pos, known := positions[tx.AssetID]
		if !known {
			continue
		}

		switch tx.Type {
		case model.TransactionTypeBuy:
			totalCost[tx.AssetID] += tx.Total
			pos.Amount += tx.Amount
			if pos.Amount > 0 {
				pos.AvgBuy = totalCost[tx.AssetID] / pos.Amount
			}
		case model.TransactionTypeSell:
			pos.Amount -= tx.Amount
			if pos.Amount < 0 {
				pos.Amount = 0
			}
		case model.TransactionTypeTransfer:
			// history only
		}

		positions[tx.AssetID] = pos
	}

	return positions
}

// Apply returns a copy of assets with Amount and AvgBuy replaced by the
// replayed positions. All other fields pass through unchanged.
func Apply(assets []model.Asset, transactions []model.Transaction) []model.Asset {
	positions := Replay(assets, transactions)

	out := make([]model.Asset, len(assets))
	for i, asset := range assets {
		out[i] = asset
		pos := positions[asset.ID]
		out[i].Amount = pos.Amount
		out[i].AvgBuy = pos.AvgBuy
	}
	return out
}
