package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// defaultAssetColor is used when a created asset does not specify one.
const defaultAssetColor = "#627EEA"

// AssetService handles asset-related business logic operations.
type AssetService struct {
	db        *sql.DB
	assetRepo *repository.AssetRepository
}

// NewAssetService creates a new AssetService with the provided repository dependencies.
func NewAssetService(db *sql.DB, assetRepo *repository.AssetRepository) *AssetService {
	return &AssetService{
		db:        db,
		assetRepo: assetRepo,
	}
}

// GetAssets retrieves all assets with computed valuation fields.
func (s *AssetService) GetAssets(ctx context.Context) ([]model.AssetResponse, error) {
	assets, err := s.assetRepo.GetAssets(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.AssetResponse, len(assets))
	for i, asset := range assets {
		responses[i] = toAssetResponse(asset)
	}
	return responses, nil
}

// GetAsset retrieves a single asset by ID with computed valuation fields.
func (s *AssetService) GetAsset(ctx context.Context, assetID string) (model.AssetResponse, error) {
	asset, err := s.assetRepo.GetAsset(ctx, assetID)
	if err != nil {
		return model.AssetResponse{}, err
	}
	return toAssetResponse(asset), nil
}

// CreateAsset creates a new asset. Amount and avgBuy may be seeded for
// holdings entered without a transaction history; they are overwritten by
// the next holdings recalculation.
func (s *AssetService) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (*model.Asset, error) {
	asset := &model.Asset{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Symbol:      strings.ToUpper(req.Symbol),
		CoingeckoID: req.CoingeckoID,
		Color:       req.Color,
		CreatedAt:   time.Now(),
	}

	if asset.CoingeckoID == "" {
		asset.CoingeckoID = slugify(req.Name)
	}
	if asset.Color == "" {
		asset.Color = defaultAssetColor
	}
	if req.Amount != nil {
		asset.Amount = *req.Amount
	}
	if req.AvgBuy != nil {
		asset.AvgBuy = *req.AvgBuy
	}

	if err := s.assetRepo.InsertAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return asset, nil
}

// UpdateAsset updates asset metadata. Amount and avgBuy overrides are
// allowed for manual corrections; the next transaction mutation replaces
// them with recalculated values.
func (s *AssetService) UpdateAsset(ctx context.Context, assetID string, req request.UpdateAssetRequest) (*model.Asset, error) {
	asset, err := s.assetRepo.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Symbol != nil {
		asset.Symbol = strings.ToUpper(*req.Symbol)
	}
	if req.CoingeckoID != nil {
		asset.CoingeckoID = *req.CoingeckoID
	}
	if req.Color != nil {
		asset.Color = *req.Color
	}
	if req.Amount != nil {
		asset.Amount = *req.Amount
	}
	if req.AvgBuy != nil {
		asset.AvgBuy = *req.AvgBuy
	}

	if err := s.assetRepo.UpdateAsset(ctx, &asset); err != nil {
		return nil, err
	}

	return &asset, nil
}

// DeleteAsset removes an asset and all transactions referencing it
// (ON DELETE CASCADE). Other assets' holdings are unaffected.
func (s *AssetService) DeleteAsset(ctx context.Context, assetID string) error {
	return s.assetRepo.DeleteAsset(ctx, assetID)
}

// toAssetResponse computes the read-time valuation fields for an asset.
// Value and profit/loss are never stored.
func toAssetResponse(a model.Asset) model.AssetResponse {
	return model.AssetResponse{
		ID:             a.ID,
		Name:           a.Name,
		Symbol:         a.Symbol,
		CoingeckoID:    a.CoingeckoID,
		Color:          a.Color,
		Price:          a.Price,
		Change24h:      a.Change24h,
		Amount:         a.Amount,
		AvgBuy:         a.AvgBuy,
		Value:          a.Amount * a.Price,
		ProfitLoss:     a.Amount*a.Price - a.Amount*a.AvgBuy,
		PriceUpdatedAt: a.PriceUpdatedAt,
	}
}

// slugify derives a CoinGecko-style coin id from a display name
// ("Bitcoin Cash" -> "bitcoin-cash").
func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
