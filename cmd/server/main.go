package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/coingecko"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/database"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/scheduler"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	assetService := service.NewAssetService(db, assetRepo)
	transactionService := service.NewTransactionService(db, transactionRepo, assetRepo)
	priceService := service.NewPriceService(
		coingecko.NewPriceClient(cfg.Prices.BaseURL, cfg.Prices.Timeout),
		assetRepo,
	)
	portfolioService := service.NewPortfolioService(assetRepo, priceService)
	parserService := service.NewParserService(cfg.Parser, settingRepo)
	snapshotService := service.NewSnapshotService(db, assetRepo, transactionRepo, transactionService)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Asset:       assetService,
		Transaction: transactionService,
		Portfolio:   portfolioService,
		Price:       priceService,
		Parser:      parserService,
		Snapshot:    snapshotService,
	}, cfg)

	// Background price refresh
	sched := scheduler.New()
	sched.AddEvery(cfg.Prices.RefreshInterval, "price-refresh", priceService.RefreshPrices)
	sched.Start()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	sched.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
