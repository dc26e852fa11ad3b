package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-order-service/config"
	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/pkg/broker"
	"github.com/fekuna/omnipos-order-service/pkg/cache"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"github.com/fekuna/omnipos-order-service/pkg/postgres"

	cartH "github.com/fekuna/omnipos-order-service/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-order-service/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-order-service/internal/cart/usecase"

	catH "github.com/fekuna/omnipos-order-service/internal/catalog/handler"
	catRepoPkg "github.com/fekuna/omnipos-order-service/internal/catalog/repository"
	catUCPkg "github.com/fekuna/omnipos-order-service/internal/catalog/usecase"

	invH "github.com/fekuna/omnipos-order-service/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/omnipos-order-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-order-service/internal/inventory/usecase"

	orderH "github.com/fekuna/omnipos-order-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-order-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-order-service/internal/order/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	txManager := postgres.NewTxManager(db)

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	cartRepo := cartRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka Producer
	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()
	appLogger.Info("Connected to Kafka Producer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCatalogUseCase(catRepo, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(cartRepo, catRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, txManager, redisClient, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, cartRepo, invRepo, catRepo, txManager, producer, appLogger)

	// 7. Initialize Handlers and Router
	if cfg.Server.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	v1.Use(auth.Middleware())

	catH.NewCatalogHandler(catUC, appLogger).Register(v1)
	cartH.NewCartHandler(cartUC, appLogger).Register(v1)
	invH.NewInventoryHandler(invUC, appLogger).Register(v1)
	orderH.NewOrderHandler(orderUC, appLogger).Register(v1)

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
