package main

// @title Transport Service API
// @version 1.0.0
// @description Валидация и нормализация запросов маршрутизации, изолиний и map matching перед передачей движку Valhalla.
// @description
// @description Основные возможности:
// @description - Маршруты по режимам передвижения (auto, truck, bicycle, transit, ...)
// @description - Изохроны и изодистанты
// @description - Map matching по JSON треку или CSV файлу
// @description - Учёт обращений к движку и статистика использования

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/transport-service/docs"
	"github.com/transport-service/internal/config"
	httpDelivery "github.com/transport-service/internal/delivery/http"
	"github.com/transport-service/internal/delivery/http/handler"
	"github.com/transport-service/internal/domain/repository"
	"github.com/transport-service/internal/infrastructure/valhalla"
	"github.com/transport-service/internal/pkg/logger"
	"github.com/transport-service/internal/repository/cache"
	redisRepo "github.com/transport-service/internal/repository/redis"
	"github.com/transport-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Transport Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("valhalla_url", cfg.Valhalla.URL),
		zap.Bool("accounting", cfg.Accounting.Enabled),
	)

	// 3. Routing engine client
	engine := valhalla.NewValhallaClient(&cfg.Valhalla, log)

	// 4. Connect to Redis. Без Redis сервис работает, но без учёта и статистики.
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, accounting and stats disabled", zap.Error(err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
	}

	// 5. Initialize Repositories
	var (
		publisher repository.AccountingPublisher
		statsUC   *usecase.StatsUseCase
	)
	if redisClient != nil {
		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), redisRepo.DefaultStreamOptions, log)
		usageRepo := redisRepo.NewUsageRepository(redisClient.Client(), log)
		cacheRepo := cache.NewCacheRepository(redisClient)

		if cfg.Accounting.Enabled {
			publisher = redisRepo.NewAccountingPublisher(streamRepo, cfg.Accounting.Stream)
		}
		statsUC = usecase.NewStatsUseCase(usageRepo, cacheRepo, cfg.Cache.StatsCacheTTL, log)
	}

	log.Info("Repositories initialized")

	// 6. Initialize Use Cases
	accountant := usecase.NewAccountant(publisher, log)

	routingUC := usecase.NewRoutingUseCase(engine, accountant, log)
	isolineUC := usecase.NewIsolineUseCase(engine, accountant, log)
	mapMatchUC := usecase.NewMapMatchUseCase(engine, accountant, log)

	healthUC := usecase.NewHealthUseCase(engine, log)
	if redisClient != nil {
		healthUC.AddCheck("redis", redisClient.Health)
	}

	log.Info("Use cases initialized")

	// 7. Initialize HTTP Handlers
	routeHandler := handler.NewRouteHandler(routingUC, log)
	isolineHandler := handler.NewIsolineHandler(isolineUC, log)
	mapMatchHandler := handler.NewMapMatchHandler(mapMatchUC, log)
	healthHandler := handler.NewHealthHandler(healthUC)
	docsHandler := handler.NewDocsHandler(log)

	var statsHandler *handler.StatsHandler
	if statsUC != nil {
		statsHandler = handler.NewStatsHandler(statsUC, log)
	}

	log.Info("HTTP handlers initialized")

	// 8. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		routeHandler,
		isolineHandler,
		mapMatchHandler,
		healthHandler,
		statsHandler,
		docsHandler,
	)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
