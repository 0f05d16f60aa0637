package invalidation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/domain/repository"
	"github.com/provider-discovery/internal/pkg/utils"
	"github.com/provider-discovery/internal/worker"
	"go.uber.org/zap"
)

// CacheInvalidationWorker слушает события смены координат провайдеров
// и сбрасывает кеш выдачи для затронутых ячеек. Сам поиск провайдеров
// не изменяет - это единственное место, где ядро реагирует на записи.
type CacheInvalidationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	cacheRepo    repository.CacheRepository
	consumerName string
	maxRetries   int
}

// NewCacheInvalidationWorker создает новый CacheInvalidationWorker
func NewCacheInvalidationWorker(
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *CacheInvalidationWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &CacheInvalidationWorker{
		BaseWorker:   worker.NewBaseWorker("cache-invalidation", consumerGroup, logger),
		streamRepo:   streamRepo,
		cacheRepo:    cacheRepo,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *CacheInvalidationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting CacheInvalidationWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	// Создаем consumer group
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamProviderLocation, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamProviderLocation, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}

			if err := w.processMessage(ctx, msg); err != nil {
				logger.Error("Failed to process message",
					zap.String("message_id", msg.ID),
					zap.Error(err))
				// Сообщение не подтверждаем - останется в pending и будет
				// перечитано после перезапуска
				continue
			}

			if err := w.streamRepo.AckMessage(ctx, domain.StreamProviderLocation, w.ConsumerGroup(), msg.ID); err != nil {
				logger.Error("Failed to ack message",
					zap.String("message_id", msg.ID),
					zap.Error(err))
			}
		}
	}
}

// processMessage разбирает событие и сбрасывает кеш затронутых ячеек
func (w *CacheInvalidationWorker) processMessage(ctx context.Context, msg domain.StreamMessage) error {
	logger := w.Logger()

	var event domain.ProviderLocationEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		// Битое событие повторять бессмысленно - логируем и подтверждаем
		logger.Warn("Malformed provider location event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return nil
	}

	start := time.Now()
	total := 0
	for _, prefix := range AffectedCachePrefixes(event) {
		deleted, err := w.cacheRepo.DeleteByPrefix(ctx, prefix)
		if err != nil {
			return fmt.Errorf("failed to invalidate prefix %s: %w", prefix, err)
		}
		total += deleted
	}

	logger.Info("Provider location cache invalidated",
		zap.String("provider_id", event.ProviderID.String()),
		zap.Int("keys_deleted", total),
		zap.Duration("took", time.Since(start)))
	return nil
}

// AffectedCachePrefixes возвращает префиксы ключей кеша для старой и новой
// ячейки провайдера. Ячейка кеша совпадает с ячейкой ключа выдачи -
// округление до 1 знака.
func AffectedCachePrefixes(event domain.ProviderLocationEvent) []string {
	type cell struct {
		lat, lon float64
	}

	cells := []cell{{
		lat: utils.RoundCoord(event.Lat, 1),
		lon: utils.RoundCoord(event.Lon, 1),
	}}

	if event.OldLat != nil && event.OldLon != nil {
		old := cell{
			lat: utils.RoundCoord(*event.OldLat, 1),
			lon: utils.RoundCoord(*event.OldLon, 1),
		}
		if old != cells[0] {
			cells = append(cells, old)
		}
	}

	prefixes := make([]string, 0, len(cells))
	for _, c := range cells {
		prefixes = append(prefixes, fmt.Sprintf("discovery:cell:%.1f:%.1f:", c.lat, c.lon))
	}
	return prefixes
}
