// Package api wires the HTTP router, handlers and middleware together.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/middleware"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System      *service.SystemService
	Asset       *service.AssetService
	Transaction *service.TransactionService
	Portfolio   *service.PortfolioService
	Price       *service.PriceService
	Parser      *service.ParserService
	Snapshot    *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			parserHandler := handlers.NewParserHandler(services.Parser)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Get("/parser-key", parserHandler.ParserKeyStatus)
			r.Post("/parser-key", parserHandler.SetParserKey)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(services.Asset)
			r.Get("/", assetHandler.AllAssets)
			r.Post("/", assetHandler.CreateAsset)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/asset/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.TransactionsPerAsset)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
			r.Get("/summary", portfolioHandler.Summary)
		})

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(services.Price)
			r.Post("/refresh", priceHandler.Refresh)
			r.Get("/status", priceHandler.Status)
		})

		parserHandler := handlers.NewParserHandler(services.Parser)
		r.Post("/parse", parserHandler.Parse)

		r.Route("/snapshot", func(r chi.Router) {
			snapshotHandler := handlers.NewSnapshotHandler(services.Snapshot)
			r.Get("/", snapshotHandler.Export)
			r.Post("/", snapshotHandler.Import)
			r.Delete("/", snapshotHandler.Clear)
		})
	})

	return r
}
