package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-booth-service/config"
	"github.com/fekuna/omnipos-booth-service/pkg/broker"
	"github.com/fekuna/omnipos-booth-service/pkg/cache"
	"github.com/fekuna/omnipos-booth-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/fekuna/omnipos-booth-service/pkg/response"

	"github.com/fekuna/omnipos-booth-service/internal/events"
	"github.com/fekuna/omnipos-booth-service/internal/projection"
	projH "github.com/fekuna/omnipos-booth-service/internal/projection/handler"
	"github.com/fekuna/omnipos-booth-service/internal/session"
	"github.com/fekuna/omnipos-booth-service/internal/state"

	catH "github.com/fekuna/omnipos-booth-service/internal/catalog/handler"
	catRepoPkg "github.com/fekuna/omnipos-booth-service/internal/catalog/repository"
	catUCPkg "github.com/fekuna/omnipos-booth-service/internal/catalog/usecase"

	expH "github.com/fekuna/omnipos-booth-service/internal/expense/handler"
	expRepoPkg "github.com/fekuna/omnipos-booth-service/internal/expense/repository"
	expUCPkg "github.com/fekuna/omnipos-booth-service/internal/expense/usecase"

	invH "github.com/fekuna/omnipos-booth-service/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/omnipos-booth-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-booth-service/internal/inventory/usecase"

	"github.com/fekuna/omnipos-booth-service/internal/sale"
	saleH "github.com/fekuna/omnipos-booth-service/internal/sale/handler"
	saleListenerPkg "github.com/fekuna/omnipos-booth-service/internal/sale/listener"
	saleRepoPkg "github.com/fekuna/omnipos-booth-service/internal/sale/repository"
	saleUCPkg "github.com/fekuna/omnipos-booth-service/internal/sale/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "production" {
		logConfig.Encoding = "json"
		logConfig.Level = "info"
	} else {
		logConfig.IsDevelopment = true
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	loc, _ := cfg.Event.Location() // checked by LoadEnv

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

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	saleRepo := saleRepoPkg.NewPGRepository(db)
	expRepo := expRepoPkg.NewPGRepository(db)
	txManager := postgres.NewTxManager(db)

	// 5. Initialize Redis. The catalog is small enough to read straight
	// from Postgres when the cache is unavailable.
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, catalog cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Initialize Kafka
	publisher := events.NewNoop()
	var kafkaConsumer *broker.KafkaConsumer
	if cfg.Kafka.Enabled {
		kafkaProducer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.EventsTopic,
		})
		defer kafkaProducer.Close()
		publisher = events.NewBrokerPublisher(kafkaProducer, appLogger)

		kafkaConsumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.RequestsTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("events_topic", cfg.Kafka.EventsTopic),
			zap.String("requests_topic", cfg.Kafka.RequestsTopic),
		)
	}

	// 7. State snapshot
	catalogSource := catUCPkg.NewCachedSource(catRepo, redisClient, cfg.Redis.CacheTTL, appLogger)
	store := state.NewStore(state.Sources{
		Catalog:   catalogSource,
		Inventory: invRepo,
		Sales:     saleRepo,
		Expenses:  expRepo,
	}, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := store.Refresh(ctx); err != nil {
		appLogger.Warn("Initial state load failed, serving an empty snapshot until the next poll", zap.Error(err))
	}

	// 8. Initialize UseCases
	policy, err := sale.ParsePolicy(cfg.Sale.CommitPolicy)
	if err != nil {
		appLogger.Fatal("Invalid commit policy", zap.Error(err))
	}

	catUC := catUCPkg.NewCatalogUseCase(store, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, store, publisher, appLogger)
	saleUC := saleUCPkg.NewSaleUseCase(saleRepo, invRepo, txManager, store, session.NewRegistry(), publisher, policy, appLogger)
	expUC := expUCPkg.NewExpenseUseCase(expRepo, invRepo, txManager, store, publisher, appLogger)

	// 9. Background workers
	healthServer := health.NewServer()

	refresher := state.NewRefresher(store, cfg.Event.RefreshInterval, appLogger)
	refresher.OnResult(func(err error) {
		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		healthServer.SetServingStatus("", status)
	})
	go refresher.Start(ctx)

	if kafkaConsumer != nil {
		saleListener := saleListenerPkg.NewSaleListener(kafkaConsumer, saleUC, appLogger)
		saleListener.RetryFailedCommits(policy == sale.PolicyAtomic)
		go saleListener.Start(ctx)
	}

	// 10. Initialize Handlers
	if cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		snap := store.Current()
		response.Success(c, http.StatusOK, gin.H{
			"status":           "ok",
			"snapshot_version": snap.Version,
			"fetched_at":       snap.FetchedAt,
		})
	})

	api := router.Group("/api")
	catH.NewCatalogHandler(catUC, appLogger).RegisterRoutes(api)
	invH.NewInventoryHandler(invUC, appLogger).RegisterRoutes(api)
	saleH.NewSaleHandler(saleUC, appLogger).RegisterRoutes(api)
	expH.NewExpenseHandler(expUC, appLogger).RegisterRoutes(api)
	projH.NewDashboardHandler(store, projection.Settings{
		StartHour:      cfg.Event.StartHour,
		EndHour:        cfg.Event.EndHour,
		PartnerCount:   cfg.Event.PartnerCount,
		GoalPerPartner: decimal.NewFromFloat(cfg.Event.GoalPerPartner),
		Location:       loc,
	}, appLogger).RegisterRoutes(api)

	api.POST("/refresh", func(c *gin.Context) {
		if err := catalogSource.Invalidate(c.Request.Context()); err != nil {
			appLogger.Warn("Could not invalidate catalog cache", zap.Error(err))
		}
		snap, err := store.Refresh(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"snapshot_version": snap.Version})
	})

	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 11. Start gRPC Server (health + reflection only)
	grpcPort := listenAddr(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", grpcPort))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve gRPC", zap.Error(err))
		}
	}()

	appLogger.Info("Starting HTTP server",
		zap.String("addr", httpServer.Addr),
		zap.String("commit_policy", string(policy)),
	)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve HTTP", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}
