package service

import (
	"context"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// PortfolioService computes portfolio-wide aggregates.
// Totals are recomputed on every read from the cached per-asset holdings and
// the last known prices; they are never stored.
type PortfolioService struct {
	assetRepo    *repository.AssetRepository
	priceService *PriceService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(assetRepo *repository.AssetRepository, priceService *PriceService) *PortfolioService {
	return &PortfolioService{
		assetRepo:    assetRepo,
		priceService: priceService,
	}
}

// GetSummary returns all assets with computed valuations plus the portfolio
// totals and the current price refresh status.
//
//	totalValue = sum(amount * price)
//	totalPnL   = sum(amount*price - amount*avgBuy)
func (s *PortfolioService) GetSummary(ctx context.Context) (model.PortfolioSummary, error) {
	assets, err := s.assetRepo.GetAssets(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	summary := model.PortfolioSummary{
		Assets: make([]model.AssetResponse, len(assets)),
		Prices: s.priceService.Status(),
	}

	for i, asset := range assets {
		response := toAssetResponse(asset)
		summary.Assets[i] = response
		summary.TotalValue += response.Value
		summary.TotalCost += asset.Amount * asset.AvgBuy
		summary.TotalProfitLoss += response.ProfitLoss
	}

	return summary, nil
}
