package main

// @title Provider Discovery API
// @version 1.0.0
// @description Сервис поиска ближайших исполнителей услуг (эвакуация, грузоперевозки, мобильная зарядка, пассажирские перевозки) по живой геолокации.
// @description
// @description Основные возможности:
// @description - Поиск провайдеров вокруг точки с учётом уровня детализации карты
// @description - Grid-агрегация выдачи на общих планах ("умная карта")
// @description - Сбалансированная ленточная выдача с квотами на категорию
// @description - Оценка стоимости по тарифам категорий
// @description - Отладочная кластеризация маркеров

// @contact.name API Support
// @contact.email support@provider-discovery.com

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

	"github.com/provider-discovery/internal/config"
	httpDelivery "github.com/provider-discovery/internal/delivery/http"
	"github.com/provider-discovery/internal/delivery/http/handler"
	"github.com/provider-discovery/internal/mapview"
	"github.com/provider-discovery/internal/pkg/logger"
	"github.com/provider-discovery/internal/repository/cache"
	"github.com/provider-discovery/internal/repository/postgres"
	"github.com/provider-discovery/internal/usecase"
	"go.uber.org/zap"

	_ "github.com/provider-discovery/docs"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Provider Discovery Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	providerRepo := postgres.NewProviderRepository(db)
	tariffRepo := postgres.NewTariffRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	// 7. Initialize use cases
	discoveryUC := usecase.NewDiscoveryUseCase(
		providerRepo,
		tariffRepo,
		cacheRepo,
		cfg.Discovery,
		log,
		cfg.Cache.SearchCacheTTL,
	)

	// 8. Client render engine for the debug endpoint, fed from the same
	// density table as the server-side planner
	renderEngine := mapview.NewEngine(mapview.Config{
		BaseUnit:       cfg.Discovery.ClusterBaseUnit,
		ExpandedDetail: cfg.Discovery.ExpandedDetail,
		ExpansionStep:  cfg.Discovery.ExpansionStep,
		MaxDetail:      cfg.Discovery.MaxDetail,
	}, mapview.NewIconCache())

	// 9. Initialize handlers
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUC, log)
	renderHandler := handler.NewRenderHandler(renderEngine, log)

	// 10. Create and start HTTP server
	server := httpDelivery.NewServer(cfg, log, discoveryHandler, renderHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// 11. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown HTTP server gracefully", zap.Error(err))
	}

	log.Info("Service stopped")
}
