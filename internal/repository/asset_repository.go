package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, name, symbol, coingecko_id, color, price, change_24h, amount, avg_buy, price_updated_at, created_at`

// GetAssets retrieves all assets ordered by creation time.
func (r *AssetRepository) GetAssets(ctx context.Context) ([]model.Asset, error) {
	return r.getAssets(ctx, r.db)
}

// GetAssetsTx retrieves all assets using the given transaction handle.
func (r *AssetRepository) GetAssetsTx(ctx context.Context, tx DBTX) ([]model.Asset, error) {
	return r.getAssets(ctx, tx)
}

func (r *AssetRepository) getAssets(ctx context.Context, q DBTX) ([]model.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM asset
		ORDER BY created_at ASC, name ASC
	`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAsset retrieves a single asset by ID.
// Returns apperrors.ErrAssetNotFound if no asset with the given ID exists.
func (r *AssetRepository) GetAsset(ctx context.Context, id string) (model.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM asset
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, err
	}

	return asset, nil
}

// InsertAsset creates a new asset row.
// Returns apperrors.ErrDuplicateSymbol when the symbol is already taken.
func (r *AssetRepository) InsertAsset(ctx context.Context, asset *model.Asset) error {
	query := `
		INSERT INTO asset (id, name, symbol, coingecko_id, color, price, change_24h, amount, avg_buy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.Name,
		asset.Symbol,
		asset.CoingeckoID,
		asset.Color,
		asset.Price,
		asset.Change24h,
		asset.Amount,
		asset.AvgBuy,
		asset.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateSymbol, asset.Symbol)
		}
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// UpdateAsset updates asset metadata and the manually overridable holdings
// fields. Price fields are owned by UpdateQuote and left untouched here.
func (r *AssetRepository) UpdateAsset(ctx context.Context, asset *model.Asset) error {
	query := `
		UPDATE asset
		SET name = ?, symbol = ?, coingecko_id = ?, color = ?, amount = ?, avg_buy = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		asset.Name,
		asset.Symbol,
		asset.CoingeckoID,
		asset.Color,
		asset.Amount,
		asset.AvgBuy,
		asset.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateSymbol, asset.Symbol)
		}
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// UpdateDerived writes the recalculated amount and average buy price for one
// asset. Called inside the same transaction as the triggering mutation.
func (r *AssetRepository) UpdateDerived(ctx context.Context, tx DBTX, id string, amount, avgBuy float64) error {
	query := `UPDATE asset SET amount = ?, avg_buy = ? WHERE id = ?`

	if _, err := tx.ExecContext(ctx, query, amount, avgBuy, id); err != nil {
		return fmt.Errorf("failed to update derived holdings: %w", err)
	}

	return nil
}

// UpdateQuote merges a fetched market quote into the asset row without
// touching amount or avg_buy.
func (r *AssetRepository) UpdateQuote(ctx context.Context, id string, quote model.Quote, fetchedAt time.Time) error {
	query := `UPDATE asset SET price = ?, change_24h = ?, price_updated_at = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		quote.Price,
		quote.Change24h,
		fetchedAt.UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset quote: %w", err)
	}

	return nil
}

// DeleteAsset removes an asset. Transactions referencing it are removed by
// the ON DELETE CASCADE constraint.
// Returns apperrors.ErrAssetNotFound if no asset with the given ID exists.
func (r *AssetRepository) DeleteAsset(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// ReplaceAll deletes every asset row and inserts the given set. Used by
// snapshot import, which replaces the whole table at once.
func (r *AssetRepository) ReplaceAll(ctx context.Context, tx DBTX, assets []model.Asset) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM asset`); err != nil {
		return fmt.Errorf("failed to clear asset table: %w", err)
	}

	query := `
		INSERT INTO asset (id, name, symbol, coingecko_id, color, price, change_24h, amount, avg_buy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, asset := range assets {
		_, err := tx.ExecContext(ctx, query,
			asset.ID,
			asset.Name,
			asset.Symbol,
			asset.CoingeckoID,
			asset.Color,
			asset.Price,
			asset.Change24h,
			asset.Amount,
			asset.AvgBuy,
			asset.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert asset %s: %w", asset.ID, err)
		}
	}

	return nil
}

// scanner is the subset of *sql.Row and *sql.Rows used by scanAsset.
type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(row scanner) (model.Asset, error) {
	var a model.Asset
	var priceUpdatedAt, createdAt sql.NullString

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Symbol,
		&a.CoingeckoID,
		&a.Color,
		&a.Price,
		&a.Change24h,
		&a.Amount,
		&a.AvgBuy,
		&priceUpdatedAt,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Asset{}, err
		}
		return model.Asset{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	if priceUpdatedAt.Valid && priceUpdatedAt.String != "" {
		a.PriceUpdatedAt, err = ParseTime(priceUpdatedAt.String)
		if err != nil {
			return model.Asset{}, err
		}
	}
	if createdAt.Valid && createdAt.String != "" {
		a.CreatedAt, err = ParseTime(createdAt.String)
		if err != nil {
			return model.Asset{}, err
		}
	}

	return a, nil
}
