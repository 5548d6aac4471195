// one shot job: pull marketplace prices and push changed ones to the storefront
package main

import (
	"context"
	"fmt"
	"os"
	"shopify-price-sync/internal/adapters/marketplace"
	"shopify-price-sync/internal/adapters/shopify"
	"shopify-price-sync/internal/app/usecases"
	"shopify-price-sync/internal/config"
	infrahttp "shopify-price-sync/internal/infra/http"
	"shopify-price-sync/internal/infra/queue"
	"shopify-price-sync/internal/logging"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	marketplaceRequestsPerWindow = 40
	marketplaceWindow            = time.Minute
	storefrontWriteConcurrency   = 2
)

func main() {
	_ = godotenv.Load() // loads .env if present

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	logger := logging.NewLogger(cfg.TelegramBot, runID)
	httpClient := infrahttp.NewClient(maxDuration(cfg.Shopify.Timeout, cfg.Marketplace.Timeout))

	logger.Log("price sync job initialized")

	shopifyClient := shopify.NewClient(cfg.Shopify, httpClient, logger)
	marketplaceClient := marketplace.NewClient(cfg.Marketplace, httpClient, logger)

	fetchWindow := queue.NewRateWindow(marketplaceRequestsPerWindow, marketplaceWindow)
	writeQueue := queue.NewWorkers(storefrontWriteConcurrency)

	syncPrices := usecases.NewSyncPrices(shopifyClient, marketplaceClient, shopifyClient, fetchWindow, writeQueue, cfg.Sync, logger)
	err = syncPrices.Run(context.Background())
	if err != nil {
		logger.LogError("syncPrices error", err)
		os.Exit(1)
	}
}

func maxDuration(a, b time.Duration) time.Duration {
	if a >= b {
		return a
	}
	return b
}
