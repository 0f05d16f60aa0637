package main

// Утилита для ручной публикации события смены координат провайдера
// в Redis Stream. Используется для проверки воркера инвалидации кеша.

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/provider-discovery/internal/config"
	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/pkg/logger"
	"github.com/provider-discovery/internal/repository/cache"
	redisRepo "github.com/provider-discovery/internal/repository/redis"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New("debug")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	oldLat, oldLon := 39.90, 32.85
	event := domain.ProviderLocationEvent{
		ProviderID: uuid.New(),
		MainType:   domain.MainTypeRescue,
		OldLat:     &oldLat,
		OldLon:     &oldLon,
		Lat:        39.95,
		Lon:        32.90,
	}

	if err := streamRepo.PublishToStream(context.Background(), domain.StreamProviderLocation, event); err != nil {
		log.Error("Failed to publish test event", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Test event published",
		zap.String("provider_id", event.ProviderID.String()),
		zap.String("stream", domain.StreamProviderLocation))
}
