package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/marketledger-backend/internal/bus"
	"github.com/yungbote/marketledger-backend/internal/db"
	"github.com/yungbote/marketledger-backend/internal/handlers"
	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/middleware"
	"github.com/yungbote/marketledger-backend/internal/observability"
	"github.com/yungbote/marketledger-backend/internal/repos"
	"github.com/yungbote/marketledger-backend/internal/server"
	"github.com/yungbote/marketledger-backend/internal/services"
	"github.com/yungbote/marketledger-backend/internal/sse"
	"github.com/yungbote/marketledger-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "marketledger-backend",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	defer func() {
		if shutdownOTel == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownOTel(ctx)
	}()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)
	walletRepo := repos.NewWalletRepo(thePG, log)
	marketEventRepo := repos.NewMarketEventRepo(thePG, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewHub(log)

	// Redis bus (optional; single-instance deployments run without it)
	var eventBus bus.Bus
	if rb, busErr := bus.NewRedisBus(log); busErr != nil {
		log.Warn("Redis bus unavailable; running without cross-instance fanout", "error", busErr)
	} else {
		eventBus = rb
		if fwdErr := eventBus.StartForwarder(context.Background(), sseHub.Broadcast); fwdErr != nil {
			log.Warn("Could not start redis bus forwarder", "error", fwdErr)
		}
		defer eventBus.Close()
	}

	// Services
	log.Info("Setting up Services from main...")
	notifier := services.NewMarketNotifier(log, sseHub, eventBus)
	walletService := services.NewWalletService(thePG, log, walletRepo)
	catalogService := services.NewCatalogService(thePG, log, productRepo, marketEventRepo, notifier)
	purchaseService := services.NewPurchaseService(thePG, log, productRepo, orderRepo, marketEventRepo, walletService, notifier)
	orderService := services.NewOrderService(thePG, log, orderRepo)
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, walletService, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	marketFeedService := services.NewMarketFeedService(thePG, log, marketEventRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	orderHandler := handlers.NewOrderHandler(orderService)
	walletHandler := handlers.NewWalletHandler(walletService)
	marketHandler := handlers.NewMarketHandler(log, sseHub, marketFeedService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		ProductHandler:  productHandler,
		PurchaseHandler: purchaseHandler,
		OrderHandler:    orderHandler,
		WalletHandler:   walletHandler,
		MarketHandler:   marketHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
