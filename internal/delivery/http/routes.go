package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ecoscorefinder/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIPPerSecond, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public product endpoints
		products := v1.Group("/products")
		{
			products.GET("/barcode/:barcode", handler.GetProduct)
			products.GET("/search", handler.SearchProducts)
			products.GET("/barcode/:barcode/alternatives", handler.GetAlternatives)
			products.GET("/barcode/:barcode/analysis", handler.AnalyzeProduct)
			products.POST("/compare", handler.CompareProducts)
			products.POST("/contribute", handler.SubmitContribution)
		}

		// Public shared batch lookup
		v1.GET("/shared/:token", handler.GetSharedBatch)

		// Public shopping tips
		v1.GET("/tips", handler.GetShoppingTips)

		// User-scoped endpoints; identity comes from the upstream gateway
		authed := v1.Group("")
		authed.Use(AuthMiddleware())
		{
			favorites := authed.Group("/favorites")
			{
				favorites.GET("", handler.ListFavorites)
				favorites.POST("", handler.AddFavorite)
				favorites.DELETE("/:productId", handler.RemoveFavorite)
				favorites.GET("/:productId", handler.IsFavorite)
			}

			comparisons := authed.Group("/comparisons")
			{
				comparisons.GET("", handler.ListComparisons)
				comparisons.POST("", handler.CreateComparison)
				comparisons.DELETE("/:id", handler.DeleteComparison)
			}

			shares := authed.Group("/shares")
			{
				shares.GET("", handler.ListShares)
				shares.POST("", handler.CreateShare)
				shares.PUT("/:id", handler.UpdateShare)
				shares.DELETE("/:id", handler.DeleteShare)
			}

			authed.GET("/recommendations", handler.GetRecommendations)
			authed.GET("/preferences", handler.GetPreferences)
			authed.PUT("/preferences", handler.UpdatePreferences)
			authed.GET("/notifications", handler.ListNotifications)
			authed.POST("/notifications/process", handler.ProcessNotifications)
		}
	}

	return router
}
