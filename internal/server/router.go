package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/marketledger-backend/internal/handlers"
	"github.com/yungbote/marketledger-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	ProductHandler  *handlers.ProductHandler
	PurchaseHandler *handlers.PurchaseHandler
	OrderHandler    *handlers.OrderHandler
	WalletHandler   *handlers.WalletHandler
	MarketHandler   *handlers.MarketHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("marketledger"))
	router.Use(middleware.AttachTraceContext())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.GET("/products/:id", cfg.ProductHandler.Get)
	}

	// Protected
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// Catalog
	protected.POST("/products", cfg.ProductHandler.Create)
	protected.PUT("/products/:id/stock", cfg.ProductHandler.UpdateStock)
	protected.DELETE("/products/:id", cfg.ProductHandler.Delist)
	// Purchases
	protected.POST("/products/:id/purchase", cfg.PurchaseHandler.Purchase)
	protected.GET("/orders", cfg.OrderHandler.History)
	protected.GET("/orders/entries", cfg.OrderHandler.Entries)
	// Wallet
	protected.GET("/wallet", cfg.WalletHandler.Balance)
	protected.POST("/wallet/deposit", cfg.WalletHandler.Deposit)
	protected.POST("/market/transfer", cfg.WalletHandler.InboundTransfer)
	// Market feed
	protected.GET("/market/stream", cfg.MarketHandler.Stream)
	protected.GET("/market/events", cfg.MarketHandler.Events)

	return router
}
