package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dropship-catalog-service/internal/clients"
	"dropship-catalog-service/internal/config"
	"dropship-catalog-service/internal/events"
	"dropship-catalog-service/internal/handlers"
	"dropship-catalog-service/internal/middleware"
	"dropship-catalog-service/internal/repository"
)

// @title Dropship Catalog API
// @version 1.0.0
// @description Multi-tenant dropshipping catalog: supplier products, personal inventories, profit estimation, and store push
// @host localhost:8090
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
		redisClient = nil
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db, redisClient)
	inventoryRepo := repository.NewInventoryRepository(db)
	storeRepo := repository.NewStoreRepository(db)

	// Initialize event publisher only if NATS_URL is set; a nil publisher
	// is a no-op everywhere.
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
		} else {
			log.Println("✓ Events publisher initialized (NATS connected)")
		}
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}
	defer publisher.Close()

	// Initialize clients
	shippingClient := clients.NewShippingClient()

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, inventoryRepo, shippingClient)
	inventoryHandler := handlers.NewInventoryHandler(inventoryRepo, catalogRepo, publisher)
	calculatorHandler := handlers.NewCalculatorHandler(catalogRepo, shippingClient)
	pushHandler := handlers.NewPushHandler(storeRepo, inventoryRepo, catalogRepo, publisher, logger)

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("dropship_catalog")
	log.Println("✓ Prometheus metrics initialized")

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)
	router.GET("/metrics", middleware.Handler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected API routes
	api := router.Group("/api/v1")
	if cfg.Environment == "development" {
		api.Use(middleware.DevelopmentAuthMiddleware())
	} else {
		api.Use(middleware.HeaderAuthMiddleware())
	}
	api.Use(middleware.TenantMiddleware())

	v1 := api.Group("")
	{
		cat := v1.Group("/catalog")
		{
			cat.GET("", catalogHandler.GetProducts)
			cat.POST("", catalogHandler.CreateProduct)
			cat.GET("/:id", catalogHandler.GetProductDetail)
			cat.PUT("/:id", catalogHandler.UpdateProduct)
			cat.DELETE("/:id", catalogHandler.DeleteProduct)
		}

		inv := v1.Group("/inventory")
		{
			inv.GET("", inventoryHandler.GetInventory)
			inv.POST("/import", inventoryHandler.ImportProduct)
			inv.GET("/export", inventoryHandler.ExportInventory)
			inv.GET("/:id", inventoryHandler.GetInventoryItem)
			inv.DELETE("/:id", inventoryHandler.DeleteInventoryItem)
			inv.POST("/:id/restore", inventoryHandler.RestoreInventoryItem)
		}

		v1.POST("/calculator/estimate", calculatorHandler.Estimate)

		stores := v1.Group("/stores")
		{
			stores.GET("", pushHandler.ListStores)
			stores.POST("/:storeId/push", pushHandler.PushProduct)
		}
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Dropship catalog service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
