// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/asterohype/backend/internal/config"
	"github.com/asterohype/backend/internal/handlers"
	"github.com/asterohype/backend/internal/middleware"
	"github.com/asterohype/backend/internal/services"
	"github.com/asterohype/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage service: %w", err)
	}
	authorizationService := services.NewAuthorizationService(db)

	authService := services.NewAuthService(db, cfg)
	shopifyService := services.NewShopifyService(cfg.Shopify)
	overrideService := services.NewOverrideService(db)
	costService := services.NewCostService(db)
	tagService := services.NewTagService(db)
	offerService := services.NewOfferService(db)
	editStatusService := services.NewEditStatusService(db)
	sizeService := services.NewSizeService(db)
	testerService := services.NewTesterService(db)
	stockService := services.NewStockService(db)
	collectionService := services.NewCollectionService(db)
	cjSyncService := services.NewCJSyncService(db, cfg, costService)
	accessRequestService := services.NewAccessRequestService(db, cfg, authorizationService, notificationService)
	catalogService := services.NewCatalogService(shopifyService, overrideService, offerService,
		tagService, costService, editStatusService, sizeService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminProxyHandler := handlers.NewAdminProxyHandler(shopifyService, storageService)
	overlayHandler := handlers.NewOverlayHandler(overrideService, offerService, editStatusService, sizeService)
	costHandler := handlers.NewCostHandler(costService, cjSyncService)
	tagHandler := handlers.NewTagHandler(tagService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	stockHandler := handlers.NewStockHandler(stockService, notificationService)
	testerHandler := handlers.NewTesterHandler(testerService)
	collectionHandler := handlers.NewCollectionHandler(collectionService)
	accessRequestHandler := handlers.NewAccessRequestHandler(accessRequestService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	adminRequired := middleware.AdminRequired(authorizationService)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Profile)
		}

		// Public storefront routes
		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.List)
			products.GET("/:productId", catalogHandler.Get)
			products.GET("/:productId/tags", tagHandler.TagsForProduct)
		}

		v1.GET("/tags", tagHandler.List)

		collections := v1.Group("/collections")
		{
			collections.GET("", collectionHandler.List)
			collections.GET("/:slug", collectionHandler.GetBySlug)
		}

		// Public writes carry an identity in the audit log when the
		// caller happens to be signed in.
		v1.POST("/stock-notifications", middleware.OptionalAuth(), stockHandler.Subscribe)
		v1.POST("/tester-codes/validate", testerHandler.ValidateCode)
		v1.POST("/test-ratings", middleware.OptionalAuth(), testerHandler.SubmitRating)

		// Admin-access flow: submitting needs a signed-in user, the
		// decision link carries its own HMAC authority.
		adminAccess := v1.Group("/admin-access")
		{
			adminAccess.POST("/requests", middleware.AuthRequired(), accessRequestHandler.Submit)
			adminAccess.GET("/status", middleware.AuthRequired(), accessRequestHandler.Status)
			adminAccess.GET("/decide", accessRequestHandler.Decide)
		}

		// Admin console routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), adminRequired)
		{
			admin.POST("/shopify", adminProxyHandler.Dispatch)
			admin.POST("/uploads", adminProxyHandler.UploadImage)

			admin.GET("/products", catalogHandler.ListAdmin)
			admin.GET("/overrides", overlayHandler.ListOverrides)
			admin.GET("/edit-status", overlayHandler.ListEditStatuses)
			admin.GET("/costs", costHandler.List)
			admin.POST("/costs/sync", middleware.SyncRateLimit(), costHandler.Sync)

			product := admin.Group("/products/:productId")
			{
				product.PUT("/override", overlayHandler.UpsertOverride)
				product.GET("/override", overlayHandler.GetOverride)
				product.DELETE("/override", overlayHandler.DeleteOverride)

				product.PUT("/offer", overlayHandler.UpsertOffer)
				product.GET("/offer", overlayHandler.GetOffer)
				product.DELETE("/offer", overlayHandler.DeleteOffer)

				product.PUT("/edit-status", overlayHandler.UpsertEditStatus)
				product.GET("/edit-status", overlayHandler.GetEditStatus)

				product.PUT("/sizes", overlayHandler.UpsertSizeConversion)
				product.GET("/sizes", overlayHandler.ListSizeConversions)
				product.DELETE("/sizes/:asianSize", overlayHandler.DeleteSizeConversion)

				product.PUT("/cost", costHandler.Upsert)
				product.GET("/cost", costHandler.Get)
				product.DELETE("/cost", costHandler.Delete)

				product.POST("/tags", tagHandler.Assign)
				product.DELETE("/tags/:tagId", tagHandler.Unassign)

				product.GET("/test-ratings", testerHandler.Summary)

				product.GET("/stock-notifications", stockHandler.PendingForProduct)
				product.POST("/stock-notifications/flush", stockHandler.Flush)
			}

			admin.POST("/tags", tagHandler.Create)
			admin.DELETE("/tags/:tagId", tagHandler.Delete)

			admin.POST("/collections", collectionHandler.Create)
			admin.PUT("/collections/:collectionId", collectionHandler.Update)
			admin.DELETE("/collections/:collectionId", collectionHandler.Delete)
			admin.POST("/collections/:collectionId/products", collectionHandler.AddProduct)
			admin.DELETE("/collections/:collectionId/products/:productId", collectionHandler.RemoveProduct)

			admin.POST("/tester-codes", testerHandler.CreateCode)
			admin.GET("/tester-codes", testerHandler.ListCodes)
			admin.DELETE("/tester-codes/:code", testerHandler.DeactivateCode)

			admin.GET("/stock-notifications", stockHandler.PendingCounts)
			admin.GET("/admin-access/pending", accessRequestHandler.ListPending)
		}
	}

	return r, nil
}
