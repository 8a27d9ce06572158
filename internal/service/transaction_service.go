package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/holdings"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
//
// Every mutation replays the full transaction list through the holdings
// recalculator and persists the derived amount/avgBuy cache on the asset
// rows. Mutation and recalculation run in a single SQL transaction, so the
// asset cache can never be observed out of sync with the transaction log.
type TransactionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	assetRepo       *repository.AssetRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	assetRepo *repository.AssetRepository,
) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
	}
}

// GetTransactions retrieves all transactions enriched with asset data,
// oldest-first.
func (s *TransactionService) GetTransactions(ctx context.Context) ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetTransactionResponses(ctx, "")
}

// GetTransactionsPerAsset retrieves all transactions for a single asset, oldest-first.
func (s *TransactionService) GetTransactionsPerAsset(ctx context.Context, assetID string) ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetTransactionResponses(ctx, assetID)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID string) (model.TransactionResponse, error) {
	return s.transactionRepo.GetTransaction(ctx, transactionID)
}

// CreateTransaction validates the referenced asset, stores the transaction
// and recalculates holdings.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	if _, err := s.assetRepo.GetAsset(ctx, req.AssetID); err != nil {
		return nil, err
	}

	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		AssetID:   req.AssetID,
		Type:      req.Type,
		Amount:    req.Amount,
		Price:     req.Price,
		Total:     req.Amount * req.Price,
		Fee:       req.Fee,
		Date:      transactionDate,
		Note:      req.Note,
		CreatedAt: time.Now(),
	}

	err = s.withRecalculation(ctx, func(tx *sql.Tx) error {
		return s.transactionRepo.InsertTransaction(ctx, tx, transaction)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// UpdateTransaction replaces a transaction record in place (identity is
// immutable once created) and recalculates holdings.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	existing, err := s.transactionRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:      existing.ID,
		AssetID: existing.AssetID,
		Type:    existing.Type,
		Amount:  existing.Amount,
		Price:   existing.Price,
		Fee:     existing.Fee,
		Date:    existing.Date,
		Note:    existing.Note,
	}

	if req.AssetID != nil {
		if _, err := s.assetRepo.GetAsset(ctx, *req.AssetID); err != nil {
			return nil, err
		}
		transaction.AssetID = *req.AssetID
	}
	if req.Type != nil {
		transaction.Type = *req.Type
	}
	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.Price != nil {
		transaction.Price = *req.Price
	}
	if req.Fee != nil {
		transaction.Fee = *req.Fee
	}
	if req.Date != nil {
		transaction.Date, err = time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
	}
	if req.Note != nil {
		transaction.Note = *req.Note
	}
	transaction.Total = transaction.Amount * transaction.Price

	err = s.withRecalculation(ctx, func(tx *sql.Tx) error {
		return s.transactionRepo.UpdateTransaction(ctx, tx, transaction)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction and recalculates holdings, leaving
// the same state as if the transaction had never been added.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return s.withRecalculation(ctx, func(tx *sql.Tx) error {
		return s.transactionRepo.DeleteTransaction(ctx, tx, transactionID)
	})
}

// withRecalculation runs the mutation and the holdings recalculation in one
// SQL transaction.
func (s *TransactionService) withRecalculation(ctx context.Context, mutate func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after commit is a no-op
	defer tx.Rollback()

	if err := mutate(tx); err != nil {
		return err
	}

	if err := s.RecalculateHoldings(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}

// RecalculateHoldings replays the full transaction list and persists the
// derived amount and average buy price for every asset. The replay itself is
// a pure function; this method only feeds it and writes the result back.
func (s *TransactionService) RecalculateHoldings(ctx context.Context, tx repository.DBTX) error {
	assets, err := s.assetRepo.GetAssetsTx(ctx, tx)
	if err != nil {
		return err
	}

	transactions, err := s.transactionRepo.GetTransactionsTx(ctx, tx)
	if err != nil {
		return err
	}

	positions := holdings.Replay(assets, transactions)

	for _, asset := range assets {
		pos := positions[asset.ID]
		if err := s.assetRepo.UpdateDerived(ctx, tx, asset.ID, pos.Amount, pos.AvgBuy); err != nil {
			return err
		}
	}

	return nil
}
