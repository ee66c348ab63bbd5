package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gocart/internal/config"
	"gocart/internal/handlers"
	"gocart/internal/middleware"
	"gocart/internal/repositories/mongodb"
	"gocart/internal/services"
	"gocart/pkg/cache"
	"gocart/pkg/database"
	"gocart/pkg/logger"
	"gocart/pkg/payment"
	"gocart/pkg/push"
	"gocart/pkg/storage"
	"gocart/pkg/wheel"
	"gocart/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    int(cfg.Database.MaxPoolSize),
		MinPoolSize:    int(cfg.Database.MinPoolSize),
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.RequestTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if cfg.Database.EnableMigration {
		if err := database.NewMigrator(db.Database).Up(); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	var storageProvider storage.StorageProvider
	switch cfg.Storage.Provider {
	case "s3":
		storageProvider, err = storage.NewAWSS3Storage(cfg.Storage.Region, cfg.Storage.Bucket, cfg.Storage.BaseURL)
	default:
		storageProvider, err = storage.NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.BaseURL)
	}
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	var pushProvider push.PushProvider
	if cfg.Push.Enabled {
		pushProvider, err = push.NewFCMProvider(cfg.Push.FCMCredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize push provider: %v", err)
		}
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database, redisCache)
	productRepo := mongodb.NewProductRepository(db.Database, redisCache)
	cartRepo := mongodb.NewCartRepository(db.Database)
	orderRepo := mongodb.NewOrderRepository(db.Database)
	couponRepo := mongodb.NewCouponRepository(db.Database)
	entitlementRepo := mongodb.NewEntitlementRepository(db.Database)

	// Services
	locks := services.NewRedisLockService(redisCache)
	payments := payment.NewSimulatedProvider(200 * time.Millisecond)

	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, appLogger)
	productService := services.NewProductService(productRepo, storageProvider, appLogger)
	cartService := services.NewCartService(cartRepo, productRepo)
	couponService := services.NewCouponService(couponRepo, entitlementRepo, userRepo, locks, wheel.New(), pushProvider, appLogger)
	checkoutService := services.NewCheckoutService(cartRepo, orderRepo, productRepo, couponRepo, payments, cfg.App.Currency, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	couponHandler := handlers.NewCouponHandler(couponService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, cfg.Security.JWTSecret)
		routes.SetupProductRoutes(v1, productHandler, cfg.Security.JWTSecret)
		routes.SetupCartRoutes(v1, cartHandler, cfg.Security.JWTSecret)
		routes.SetupCouponRoutes(v1, couponHandler, cfg.Security.JWTSecret)
		routes.SetupCheckoutRoutes(v1, checkoutHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbState := "up"
		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			dbState = "down"
		}
		c.JSON(status, gin.H{
			"status":   dbState,
			"version":  cfg.App.Version,
			"database": dbState,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Infof("Starting %s on port %d", cfg.App.Name, cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Graceful shutdown failed")
	}
}
