package validation

import (
	"fmt"
	"strings"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ValidateSnapshot structurally validates an imported snapshot. Any failure
// rejects the whole document; snapshots are applied all-or-nothing.
//
// Checks:
//   - version matches the supported format version
//   - every asset has a UUID id, name and symbol; symbols are unique
//   - every transaction has a UUID id, a known type, positive amount and
//     non-negative price
//   - every transaction references an asset present in the snapshot
func ValidateSnapshot(snapshot *model.Snapshot) error {
	errors := make(map[string]string)

	if snapshot.Version != model.SnapshotVersion {
		errors["version"] = fmt.Sprintf("unsupported snapshot version: %d", snapshot.Version)
	}

	assetIDs := make(map[string]bool, len(snapshot.Assets))
	symbols := make(map[string]bool, len(snapshot.Assets))
	for i, asset := range snapshot.Assets {
		field := fmt.Sprintf("assets[%d]", i)
		if err := ValidateUUID(asset.ID); err != nil {
			errors[field] = err.Error()
			continue
		}
		if assetIDs[asset.ID] {
			errors[field] = fmt.Sprintf("duplicate asset id: %s", asset.ID)
			continue
		}
		assetIDs[asset.ID] = true

		if strings.TrimSpace(asset.Name) == "" {
			errors[field] = "name is required"
		}
		symbol := strings.ToUpper(strings.TrimSpace(asset.Symbol))
		if symbol == "" {
			errors[field] = "symbol is required"
		} else if symbols[symbol] {
			errors[field] = fmt.Sprintf("duplicate symbol: %s", symbol)
		}
		symbols[symbol] = true
	}

	transactionIDs := make(map[string]bool, len(snapshot.Transactions))
	for i, transaction := range snapshot.Transactions {
		field := fmt.Sprintf("transactions[%d]", i)
		if err := ValidateUUID(transaction.ID); err != nil {
			errors[field] = err.Error()
			continue
		}
		if transactionIDs[transaction.ID] {
			errors[field] = fmt.Sprintf("duplicate transaction id: %s", transaction.ID)
			continue
		}
		transactionIDs[transaction.ID] = true

		if !ValidTransactionType[transaction.Type] {
			errors[field] = fmt.Sprintf("invalid type: %s", transaction.Type)
			continue
		}
		if transaction.Amount <= 0 {
			errors[field] = "amount must be positive"
			continue
		}
		if transaction.Price < 0 {
			errors[field] = "price must be non-negative"
			continue
		}
		if !assetIDs[transaction.AssetID] {
			errors[field] = fmt.Sprintf("unknown asset id: %s", transaction.AssetID)
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
