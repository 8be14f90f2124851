package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ecoscorefinder/backend/config"
	httpDelivery "github.com/ecoscorefinder/backend/internal/delivery/http"
	"github.com/ecoscorefinder/backend/internal/domain"
	"github.com/ecoscorefinder/backend/internal/infrastructure/cache"
	"github.com/ecoscorefinder/backend/internal/infrastructure/database"
	"github.com/ecoscorefinder/backend/internal/infrastructure/llm"
	"github.com/ecoscorefinder/backend/internal/infrastructure/openfoodfacts"
	"github.com/ecoscorefinder/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting EcoScoreFinder Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Connect to MySQL
	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Initialize infrastructure dependencies
	var productCache domain.ProductCache
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		productCache = redisCache
	} else {
		productCache = cache.NewMemoryCache()
	}
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	offClient := openfoodfacts.NewClient(cfg.OpenFoodFacts.BaseURL, cfg.OpenFoodFacts.UserAgent, cfg.OpenFoodFacts.Timeout)
	log.Printf("Open Food Facts configured: %s (UA: %s)", cfg.OpenFoodFacts.BaseURL, cfg.OpenFoodFacts.UserAgent)

	llmClient := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)
	if cfg.LLM.APIKey == "" {
		log.Printf("WARNING: LLM API key not configured - recommendation text will degrade to fallbacks")
	}

	// Repositories
	productRepo := database.NewProductRepository(db)
	favoriteRepo := database.NewFavoriteRepository(db)
	comparisonRepo := database.NewComparisonRepository(db)
	shareRepo := database.NewBatchShareRepository(db)
	preferenceRepo := database.NewPreferenceRepository(db)
	notificationRepo := database.NewNotificationRepository(db)

	// Initialize usecase layer
	productService := usecase.NewProductService(productCache, productRepo, offClient, usecase.ProductServiceConfig{
		CacheTTL: cfg.Cache.TTL,
	})
	alternativeService := usecase.NewAlternativeService(offClient, productRepo)
	favoriteService := usecase.NewFavoriteService(favoriteRepo, productRepo)
	comparisonService := usecase.NewComparisonService(comparisonRepo, productRepo)
	shareService := usecase.NewShareService(shareRepo)
	preferenceService := usecase.NewPreferenceService(preferenceRepo)
	notificationService := usecase.NewNotificationService(notificationRepo, preferenceRepo)
	recommendationService := usecase.NewRecommendationService(llmClient, favoriteRepo)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(
		productService,
		alternativeService,
		favoriteService,
		comparisonService,
		shareService,
		preferenceService,
		notificationService,
		recommendationService,
		offClient,
	)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
