package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves all transactions in canonical replay order
// (oldest-first by insertion).
func (r *TransactionRepository) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	return r.getTransactions(ctx, r.db)
}

// GetTransactionsTx retrieves all transactions using the given transaction handle.
func (r *TransactionRepository) GetTransactionsTx(ctx context.Context, tx DBTX) ([]model.Transaction, error) {
	return r.getTransactions(ctx, tx)
}

func (r *TransactionRepository) getTransactions(ctx context.Context, q DBTX) ([]model.Transaction, error) {
	query := `
		SELECT seq, id, asset_id, type, amount, price, total, fee, date, note, created_at
		FROM "transaction"
		ORDER BY seq ASC
	`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		var dateStr, createdAtStr string
		var note sql.NullString

		err := rows.Scan(
			&t.Seq,
			&t.ID,
			&t.AssetID,
			&t.Type,
			&t.Amount,
			&t.Price,
			&t.Total,
			&t.Fee,
			&dateStr,
			&note,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		if note.Valid {
			t.Note = note.String
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransactionResponses retrieves transactions enriched with asset data,
// optionally filtered to a single asset.
func (r *TransactionRepository) GetTransactionResponses(ctx context.Context, assetID string) ([]model.TransactionResponse, error) {
	query := `
		SELECT
			t.id,
			t.asset_id,
			a.name,
			a.symbol,
			t.type,
			t.amount,
			t.price,
			t.total,
			t.fee,
			t.date,
			t.note
		FROM "transaction" t
		LEFT JOIN asset a ON t.asset_id = a.id
	`

	var args []any
	if assetID != "" {
		query += `
		WHERE t.asset_id = ?
		`
		args = append(args, assetID)
	}
	query += `
		ORDER BY t.seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	responses := []model.TransactionResponse{}
	for rows.Next() {
		t, err := scanTransactionResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return responses, nil
}

// GetTransaction retrieves a single transaction by ID, enriched with asset data.
// Returns apperrors.ErrTransactionNotFound if no transaction with the given ID exists.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id string) (model.TransactionResponse, error) {
	query := `
		SELECT
			t.id,
			t.asset_id,
			a.name,
			a.symbol,
			t.type,
			t.amount,
			t.price,
			t.total,
			t.fee,
			t.date,
			t.note
		FROM "transaction" t
		LEFT JOIN asset a ON t.asset_id = a.id
		WHERE t.id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTransactionResponse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TransactionResponse{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.TransactionResponse{}, err
	}

	return t, nil
}

// InsertTransaction creates a new transaction row. The database assigns the
// insertion sequence number that fixes the canonical replay order.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, tx DBTX, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, asset_id, type, amount, price, total, fee, date, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		t.ID,
		t.AssetID,
		t.Type,
		t.Amount,
		t.Price,
		t.Total,
		t.Fee,
		t.Date.UTC().Format("2006-01-02"),
		t.Note,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// UpdateTransaction replaces a transaction record in place. Identity and
// insertion order (id, seq) are immutable once created.
// Returns apperrors.ErrTransactionNotFound if no transaction with the given ID exists.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, tx DBTX, t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET asset_id = ?, type = ?, amount = ?, price = ?, total = ?, fee = ?, date = ?, note = ?
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query,
		t.AssetID,
		t.Type,
		t.Amount,
		t.Price,
		t.Total,
		t.Fee,
		t.Date.UTC().Format("2006-01-02"),
		t.Note,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// DeleteTransaction removes a transaction.
// Returns apperrors.ErrTransactionNotFound if no transaction with the given ID exists.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, tx DBTX, id string) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// ReplaceAll deletes every transaction row and inserts the given set in
// order. Used by snapshot import, which replaces the whole table at once.
func (r *TransactionRepository) ReplaceAll(ctx context.Context, tx DBTX, transactions []model.Transaction) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM "transaction"`); err != nil {
		return fmt.Errorf("failed to clear transaction table: %w", err)
	}

	for i := range transactions {
		if err := r.InsertTransaction(ctx, tx, &transactions[i]); err != nil {
			return err
		}
	}

	return nil
}

func scanTransactionResponse(row scanner) (model.TransactionResponse, error) {
	var t model.TransactionResponse
	var assetName, assetSymbol, note sql.NullString
	var dateStr string

	err := row.Scan(
		&t.ID,
		&t.AssetID,
		&assetName,
		&assetSymbol,
		&t.Type,
		&t.Amount,
		&t.Price,
		&t.Total,
		&t.Fee,
		&dateStr,
		&note,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TransactionResponse{}, err
		}
		return model.TransactionResponse{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	if assetName.Valid {
		t.AssetName = assetName.String
	}
	if assetSymbol.Valid {
		t.AssetSymbol = assetSymbol.String
	}
	if note.Valid {
		t.Note = note.String
	}

	return t, nil
}
