package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/coingecko"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// maxIDsPerRequest is the CoinGecko cap on coin ids per /simple/price call.
const maxIDsPerRequest = 250

// maxConcurrentFetches bounds parallel price API calls during one refresh.
const maxConcurrentFetches = 4

// PriceService refreshes market quotes for all tracked assets.
//
// A failed refresh keeps last-known prices and records a dismissible error
// string; the next manual or scheduled refresh retries. Overlapping
// refreshes are not guarded against beyond "last write wins".
type PriceService struct {
	client    coingecko.Client
	assetRepo *repository.AssetRepository

	mu          sync.Mutex
	lastRefresh time.Time
	lastError   string
}

// NewPriceService creates a new PriceService with the provided price API client.
func NewPriceService(client coingecko.Client, assetRepo *repository.AssetRepository) *PriceService {
	return &PriceService{
		client:    client,
		assetRepo: assetRepo,
	}
}

// RefreshPrices fetches current quotes for every tracked asset and merges
// them into the asset rows by id, without touching amount or avgBuy. Assets
// missing from the API response keep their last-known price.
func (s *PriceService) RefreshPrices(ctx context.Context) error {
	assets, err := s.assetRepo.GetAssets(ctx)
	if err != nil {
		s.recordFailure(err)
		return err
	}

	// Multiple assets may map to the same coin id.
	assetsByCoin := make(map[string][]string)
	for _, asset := range assets {
		if asset.CoingeckoID == "" {
			continue
		}
		assetsByCoin[asset.CoingeckoID] = append(assetsByCoin[asset.CoingeckoID], asset.ID)
	}

	if len(assetsByCoin) == 0 {
		s.recordSuccess()
		return nil
	}

	ids := make([]string, 0, len(assetsByCoin))
	for id := range assetsByCoin {
		ids = append(ids, id)
	}

	quotes, err := s.fetchQuotes(ctx, ids)
	if err != nil {
		s.recordFailure(err)
		return fmt.Errorf("failed to refresh prices: %w", err)
	}

	fetchedAt := time.Now()
	for coinID, quote := range quotes {
		for _, assetID := range assetsByCoin[coinID] {
			if err := s.assetRepo.UpdateQuote(ctx, assetID, quote, fetchedAt); err != nil {
				s.recordFailure(err)
				return err
			}
		}
	}

	s.recordSuccess()
	log.Printf("Refreshed prices for %d coins", len(quotes))
	return nil
}

// fetchQuotes queries the price API in id-chunks, concurrently.
func (s *PriceService) fetchQuotes(ctx context.Context, ids []string) (map[string]model.Quote, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	var mu sync.Mutex
	merged := make(map[string]model.Quote, len(ids))

	for start := 0; start < len(ids); start += maxIDsPerRequest {
		end := start + maxIDsPerRequest
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		g.Go(func() error {
			quotes, err := s.client.SimplePrice(ctx, chunk)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			for id, quote := range quotes {
				merged[id] = quote
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return merged, nil
}

// Status reports the outcome of the most recent refresh attempt.
func (s *PriceService) Status() model.PriceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.PriceStatus{
		LastRefresh: s.lastRefresh,
		Error:       s.lastError,
	}
}

func (s *PriceService) recordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRefresh = time.Now()
	s.lastError = ""
}

func (s *PriceService) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
}
