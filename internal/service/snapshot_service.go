package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// SnapshotService exports and imports the full portfolio state as a single
// versioned document.
type SnapshotService struct {
	db                 *sql.DB
	assetRepo          *repository.AssetRepository
	transactionRepo    *repository.TransactionRepository
	transactionService *TransactionService
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	db *sql.DB,
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	transactionService *TransactionService,
) *SnapshotService {
	return &SnapshotService{
		db:                 db,
		assetRepo:          assetRepo,
		transactionRepo:    transactionRepo,
		transactionService: transactionService,
	}
}

// Export returns the current assets and transactions as a snapshot document.
// Transactions are exported oldest-first so re-importing replays them in the
// original order.
func (s *SnapshotService) Export(ctx context.Context) (model.Snapshot, error) {
	assets, err := s.assetRepo.GetAssets(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}

	transactions, err := s.transactionRepo.GetTransactions(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}

	return model.Snapshot{
		Version:      model.SnapshotVersion,
		ExportedAt:   time.Now().UTC(),
		Assets:       assets,
		Transactions: transactions,
	}, nil
}

// Import validates a snapshot and replaces the entire portfolio with its
// contents in one SQL transaction. Validation failures reject the whole
// snapshot; existing data is untouched. Holdings are recalculated from the
// imported transaction list, so tampered amount/avgBuy values in the
// snapshot do not survive the import.
func (s *SnapshotService) Import(ctx context.Context, snapshot model.Snapshot) (model.ImportResult, error) {
	if err := validation.ValidateSnapshot(&snapshot); err != nil {
		return model.ImportResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.ImportResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after commit is a no-op
	defer tx.Rollback()

	if err := s.assetRepo.ReplaceAll(ctx, tx, snapshot.Assets); err != nil {
		return model.ImportResult{}, err
	}
	if err := s.transactionRepo.ReplaceAll(ctx, tx, snapshot.Transactions); err != nil {
		return model.ImportResult{}, err
	}
	if err := s.transactionService.RecalculateHoldings(ctx, tx); err != nil {
		return model.ImportResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.ImportResult{}, fmt.Errorf("failed to import snapshot: %w", err)
	}

	return model.ImportResult{
		Assets:       len(snapshot.Assets),
		Transactions: len(snapshot.Transactions),
	}, nil
}

// ClearAll removes every asset and transaction. Used by the destructive
// "reset portfolio" action; there is no undo beyond a prior export.
func (s *SnapshotService) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after commit is a no-op
	defer tx.Rollback()

	if err := s.transactionRepo.ReplaceAll(ctx, tx, nil); err != nil {
		return err
	}
	if err := s.assetRepo.ReplaceAll(ctx, tx, nil); err != nil {
		return err
	}

	return tx.Commit()
}
